package resources

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/shadorain/gcal/internal/client"
)

// CalendarListItem is a single calendar entry from the authenticated user's
// calendar list. Not to be confused with the Calendar resource itself.
type CalendarListItem struct {
	Kind                 string                `json:"kind,omitempty"`
	ID                   string                `json:"id"`
	Etag                 string                `json:"etag"`
	Summary              string                `json:"summary"`
	SummaryOverride      string                `json:"summaryOverride,omitempty"`
	Description          string                `json:"description,omitempty"`
	Location             string                `json:"location,omitempty"`
	TimeZone             string                `json:"timeZone,omitempty"`
	AccessRole           CalendarAccessRole    `json:"accessRole"`
	BackgroundColor      string                `json:"backgroundColor,omitempty"`
	ForegroundColor      string                `json:"foregroundColor,omitempty"`
	ColorID              string                `json:"colorId,omitempty"`
	ConferenceProperties *ConferenceProperties `json:"conferenceProperties,omitempty"`
	Deleted              bool                  `json:"deleted,omitempty"`
	Hidden               bool                  `json:"hidden,omitempty"`
	Primary              bool                  `json:"primary,omitempty"`
	Selected             bool                  `json:"selected,omitempty"`
	NotificationSettings *NotificationSettings `json:"notificationSettings,omitempty"`
	DefaultReminders     []DefaultReminder     `json:"defaultReminders,omitempty"`

	queryParams client.QueryParams
}

// Path addresses a single calendar list entry.
func (c *CalendarListItem) Path(action string) string {
	p := "users/me/calendarList/" + c.ID
	if action != "" {
		p += "/" + action
	}
	return p
}

func (c *CalendarListItem) Query() client.QueryParams {
	return c.queryParams.Clone()
}

func (c *CalendarListItem) BodyBytes() ([]byte, error) {
	return json.Marshal(c)
}

// CalendarList is the collection response for the user's calendar list.
type CalendarList struct {
	Kind          string             `json:"kind,omitempty"`
	Etag          string             `json:"etag"`
	NextPageToken string             `json:"nextPageToken,omitempty"`
	NextSyncToken string             `json:"nextSyncToken,omitempty"`
	Items         []CalendarListItem `json:"items,omitempty"`

	queryParams client.QueryParams
}

// Path addresses the calendar list collection.
func (c *CalendarList) Path(action string) string {
	p := "users/me/calendarList"
	if action != "" {
		p += "/" + action
	}
	return p
}

func (c *CalendarList) Query() client.QueryParams {
	return c.queryParams.Clone()
}

func (c *CalendarList) BodyBytes() ([]byte, error) {
	return json.Marshal(c)
}

// CalendarListClient accesses the authenticated user's calendar list through
// a shared dispatch client.
type CalendarListClient struct {
	client *client.Client
}

// NewCalendarListClient derives a calendar list client. The dispatch client,
// and the token store it owns, are shared by reference.
func NewCalendarListClient(c *client.Client) *CalendarListClient {
	return &CalendarListClient{client: c}
}

// List returns the user's calendars. showHidden includes hidden entries, and
// role restricts results to calendars where the user has at least that access
// level.
//
// Only the first page of results is returned; the continuation token in the
// collection response is not followed.
func (c *CalendarListClient) List(ctx context.Context, showHidden bool, role CalendarAccessRole) (items []CalendarListItem, err error) {
	defer func(began time.Time) { recordOp(ctx, c.client, "calendar_list", began, err) }(time.Now())

	list := CalendarList{
		queryParams: client.QueryParams{
			"minAccessRole": string(role),
			"showHidden":    strconv.FormatBool(showHidden),
		},
	}

	resp, err := c.client.Get(ctx, "", &list)
	if err != nil {
		return nil, err
	}

	var decoded CalendarList
	if err := decodeResponse(resp, &decoded); err != nil {
		return nil, err
	}
	return decoded.Items, nil
}

// Get returns a single calendar list entry by calendar ID.
func (c *CalendarListClient) Get(ctx context.Context, calendarID string) (item *CalendarListItem, err error) {
	defer func(began time.Time) { recordOp(ctx, c.client, "calendar_get", began, err) }(time.Now())

	resp, err := c.client.Get(ctx, "", &CalendarListItem{ID: calendarID})
	if err != nil {
		return nil, err
	}

	var decoded CalendarListItem
	if err := decodeResponse(resp, &decoded); err != nil {
		return nil, err
	}
	return &decoded, nil
}
