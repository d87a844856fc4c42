package resources

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shadorain/gcal/internal/client"
)

// EventActor identifies the creator or organizer of an event.
type EventActor struct {
	ID          string `json:"id,omitempty"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Self        bool   `json:"self,omitempty"`
}

// EventDateTime is either a date (all-day events) or a timestamp.
type EventDateTime struct {
	Date     string `json:"date,omitempty"`
	DateTime string `json:"dateTime,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// EventAttendee is a participant on an event.
type EventAttendee struct {
	ID               string `json:"id,omitempty"`
	Email            string `json:"email,omitempty"`
	DisplayName      string `json:"displayName,omitempty"`
	Organizer        bool   `json:"organizer,omitempty"`
	Self             bool   `json:"self,omitempty"`
	Resource         bool   `json:"resource,omitempty"`
	Optional         bool   `json:"optional,omitempty"`
	ResponseStatus   string `json:"responseStatus,omitempty"`
	Comment          string `json:"comment,omitempty"`
	AdditionalGuests int64  `json:"additionalGuests,omitempty"`
}

// EventReminders carries per-event reminder overrides.
type EventReminders struct {
	UseDefault bool              `json:"useDefault"`
	Overrides  []DefaultReminder `json:"overrides,omitempty"`
}

// EventAttachment is a file attached to an event.
type EventAttachment struct {
	FileURL  string `json:"fileUrl,omitempty"`
	FileID   string `json:"fileId,omitempty"`
	Title    string `json:"title,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	IconLink string `json:"iconLink,omitempty"`
}

// Event is a single calendar event. CalendarID addresses the containing
// calendar and is never part of the wire format.
type Event struct {
	CalendarID string `json:"-"`

	Kind              string            `json:"kind,omitempty"`
	ID                string            `json:"id,omitempty"`
	Etag              string            `json:"etag,omitempty"`
	Status            string            `json:"status,omitempty"`
	HTMLLink          string            `json:"htmlLink,omitempty"`
	Created           string            `json:"created,omitempty"`
	Updated           string            `json:"updated,omitempty"`
	Summary           string            `json:"summary,omitempty"`
	Description       string            `json:"description,omitempty"`
	Location          string            `json:"location,omitempty"`
	ColorID           string            `json:"colorId,omitempty"`
	Creator           *EventActor       `json:"creator,omitempty"`
	Organizer         *EventActor       `json:"organizer,omitempty"`
	Start             *EventDateTime    `json:"start,omitempty"`
	End               *EventDateTime    `json:"end,omitempty"`
	Recurrence        []string          `json:"recurrence,omitempty"`
	RecurringEventID  string            `json:"recurringEventId,omitempty"`
	OriginalStartTime *EventDateTime    `json:"originalStartTime,omitempty"`
	Transparency      string            `json:"transparency,omitempty"`
	Visibility        string            `json:"visibility,omitempty"`
	ICalUID           string            `json:"iCalUID,omitempty"`
	Sequence          int64             `json:"sequence,omitempty"`
	Attendees         []EventAttendee   `json:"attendees,omitempty"`
	HangoutLink       string            `json:"hangoutLink,omitempty"`
	EventType         string            `json:"eventType,omitempty"`
	Reminders         *EventReminders   `json:"reminders,omitempty"`
	Attachments       []EventAttachment `json:"attachments,omitempty"`

	queryParams client.QueryParams
}

// Path addresses the event within its calendar. With an empty ID it addresses
// the collection, which is how inserts are posted.
func (e *Event) Path(action string) string {
	p := "calendars/" + e.CalendarID + "/events"
	if e.ID != "" {
		p += "/" + e.ID
	}
	if action != "" {
		p += "/" + action
	}
	return p
}

func (e *Event) Query() client.QueryParams {
	return e.queryParams.Clone()
}

func (e *Event) BodyBytes() ([]byte, error) {
	return json.Marshal(e)
}

// Events is the collection response for a calendar's events.
type Events struct {
	CalendarID string `json:"-"`

	Kind             string            `json:"kind,omitempty"`
	Etag             string            `json:"etag,omitempty"`
	Summary          string            `json:"summary,omitempty"`
	Description      string            `json:"description,omitempty"`
	Updated          string            `json:"updated,omitempty"`
	TimeZone         string            `json:"timeZone,omitempty"`
	AccessRole       string            `json:"accessRole,omitempty"`
	DefaultReminders []DefaultReminder `json:"defaultReminders,omitempty"`
	NextPageToken    string            `json:"nextPageToken,omitempty"`
	NextSyncToken    string            `json:"nextSyncToken,omitempty"`
	Items            []Event           `json:"items,omitempty"`

	queryParams client.QueryParams
}

// Path addresses the events collection of the calendar.
func (e *Events) Path(action string) string {
	p := "calendars/" + e.CalendarID + "/events"
	if action != "" {
		p += "/" + action
	}
	return p
}

func (e *Events) Query() client.QueryParams {
	return e.queryParams.Clone()
}

func (e *Events) BodyBytes() ([]byte, error) {
	return json.Marshal(e)
}

// EventClient accesses calendar events through a shared dispatch client.
type EventClient struct {
	client *client.Client
}

// NewEventClient derives an event client. The dispatch client, and the token
// store it owns, are shared by reference.
func NewEventClient(c *client.Client) *EventClient {
	return &EventClient{client: c}
}

// List returns the events of a calendar between start and end. Only the first
// page of results is returned; the continuation token in the collection
// response is not followed.
func (c *EventClient) List(ctx context.Context, calendarID string, start, end time.Time) (events []Event, err error) {
	defer func(began time.Time) { recordOp(ctx, c.client, "event_list", began, err) }(time.Now())

	list := Events{
		CalendarID: calendarID,
		queryParams: client.QueryParams{
			"timeMin": start.Format(time.RFC3339),
			"timeMax": end.Format(time.RFC3339),
		},
	}

	resp, err := c.client.Get(ctx, "", &list)
	if err != nil {
		return nil, err
	}

	var decoded Events
	if err := decodeResponse(resp, &decoded); err != nil {
		return nil, err
	}

	for i := range decoded.Items {
		decoded.Items[i].CalendarID = calendarID
	}
	return decoded.Items, nil
}

// Get returns a single event by ID.
func (c *EventClient) Get(ctx context.Context, calendarID, eventID string) (event *Event, err error) {
	defer func(began time.Time) { recordOp(ctx, c.client, "event_get", began, err) }(time.Now())

	resp, err := c.client.Get(ctx, "", &Event{CalendarID: calendarID, ID: eventID})
	if err != nil {
		return nil, err
	}

	var decoded Event
	if err := decodeResponse(resp, &decoded); err != nil {
		return nil, err
	}
	decoded.CalendarID = calendarID
	return &decoded, nil
}

// Insert creates the event on its calendar and returns the stored version.
// The event's ID must be empty; the service assigns one.
func (c *EventClient) Insert(ctx context.Context, event *Event) (created *Event, err error) {
	defer func(began time.Time) { recordOp(ctx, c.client, "event_insert", began, err) }(time.Now())

	resp, err := c.client.Post(ctx, "", event)
	if err != nil {
		return nil, err
	}

	var decoded Event
	if err := decodeResponse(resp, &decoded); err != nil {
		return nil, err
	}
	decoded.CalendarID = event.CalendarID
	return &decoded, nil
}

// Update replaces the stored event with the given one.
func (c *EventClient) Update(ctx context.Context, event *Event) (updated *Event, err error) {
	defer func(began time.Time) { recordOp(ctx, c.client, "event_update", began, err) }(time.Now())

	resp, err := c.client.Put(ctx, "", event)
	if err != nil {
		return nil, err
	}

	var decoded Event
	if err := decodeResponse(resp, &decoded); err != nil {
		return nil, err
	}
	decoded.CalendarID = event.CalendarID
	return &decoded, nil
}

// Delete removes the event from its calendar.
func (c *EventClient) Delete(ctx context.Context, event *Event) (err error) {
	defer func(began time.Time) { recordOp(ctx, c.client, "event_delete", began, err) }(time.Now())

	resp, err := c.client.Delete(ctx, "", event)
	if err != nil {
		return err
	}
	return checkResponse(resp)
}

// Move transfers the event to the calendar identified by destinationID and
// returns the moved event, re-addressed to its new calendar.
func (c *EventClient) Move(ctx context.Context, event *Event, destinationID string) (moved *Event, err error) {
	defer func(began time.Time) { recordOp(ctx, c.client, "event_move", began, err) }(time.Now())

	target := *event
	target.queryParams = client.QueryParams{"destination": destinationID}

	resp, err := c.client.Post(ctx, "move", &target)
	if err != nil {
		return nil, err
	}

	var decoded Event
	if err := decodeResponse(resp, &decoded); err != nil {
		return nil, err
	}
	decoded.CalendarID = destinationID
	return &decoded, nil
}
