package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"google.golang.org/api/googleapi"

	"github.com/shadorain/gcal/internal/client"
	"github.com/shadorain/gcal/internal/instrumentation"
)

// CalendarAccessRole is the effective access level the authenticated user has
// on a calendar.
type CalendarAccessRole string

const (
	FreeBusyReader CalendarAccessRole = "freeBusyReader"
	Reader         CalendarAccessRole = "reader"
	Writer         CalendarAccessRole = "writer"
	Owner          CalendarAccessRole = "owner"
)

// ParseCalendarAccessRole maps a role string from user input to its typed
// value.
func ParseCalendarAccessRole(s string) (CalendarAccessRole, error) {
	switch role := CalendarAccessRole(s); role {
	case FreeBusyReader, Reader, Writer, Owner:
		return role, nil
	default:
		return "", fmt.Errorf("unknown calendar access role %q", s)
	}
}

// DefaultReminder is a reminder applied to all events on a calendar unless an
// event overrides it.
type DefaultReminder struct {
	Method  string `json:"method,omitempty"`
	Minutes int64  `json:"minutes,omitempty"`
}

// ConferenceProperties describes the conference solutions a calendar
// supports.
type ConferenceProperties struct {
	AllowedConferenceSolutionTypes []string `json:"allowedConferenceSolutionTypes,omitempty"`
}

// NotificationSettings holds the notifications the user receives for a
// calendar.
type NotificationSettings struct {
	Notifications []NotificationSetting `json:"notifications,omitempty"`
}

type NotificationSetting struct {
	Method string `json:"method,omitempty"`
	Type   string `json:"type,omitempty"`
}

// recordOp records one typed-client operation against the dispatch client's
// metrics recorder. Call deferred with a named error return.
func recordOp(ctx context.Context, c *client.Client, op string, began time.Time, err error) {
	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	c.Metrics().RecordOperation(ctx, op, status, time.Since(began))
}

// decodeResponse interprets a resource response: non-2xx statuses become
// *googleapi.Error values, anything else is decoded into out. Decode failures
// are surfaced, never swallowed into a zero value.
func decodeResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}

// checkResponse is decodeResponse for operations with no response body.
func checkResponse(resp *http.Response) error {
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
