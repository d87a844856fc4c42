package resources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/shadorain/gcal/internal/auth"
	"github.com/shadorain/gcal/internal/client"
)

func newTestDispatcher(t *testing.T, handler http.Handler) *client.Client {
	t.Helper()

	srv := httptest.NewTLSServer(handler)
	t.Cleanup(srv.Close)

	c, err := client.New(auth.Token{Access: "abc"}, nil,
		client.WithBaseURL(srv.URL+"/calendar/v3/"),
		client.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return c
}

const calendarListBody = `{
	"kind": "calendar#calendarList",
	"etag": "\"etag-1\"",
	"nextPageToken": "page-2",
	"items": [
		{
			"kind": "calendar#calendarListEntry",
			"id": "primary",
			"etag": "\"e1\"",
			"summary": "Personal",
			"accessRole": "owner",
			"primary": true,
			"defaultReminders": [{"method": "popup", "minutes": 10}]
		},
		{
			"kind": "calendar#calendarListEntry",
			"id": "team@example.com",
			"etag": "\"e2\"",
			"summary": "Team",
			"accessRole": "reader",
			"hidden": true
		}
	]
}`

func TestCalendarListQueryParameters(t *testing.T) {
	var requests int
	var gotPath string
	var gotQuery map[string][]string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(calendarListBody))
	})

	lc := NewCalendarListClient(newTestDispatcher(t, handler))

	items, err := lc.List(context.Background(), true, Reader)
	require.NoError(t, err)

	assert.Equal(t, "/calendar/v3/users/me/calendarList", gotPath)
	assert.Equal(t, []string{"true"}, gotQuery["showHidden"])
	assert.Equal(t, []string{"reader"}, gotQuery["minAccessRole"])

	require.Len(t, items, 2)
	assert.Equal(t, "primary", items[0].ID)
	assert.Equal(t, Owner, items[0].AccessRole)
	assert.True(t, items[0].Primary)
	require.Len(t, items[0].DefaultReminders, 1)
	assert.Equal(t, int64(10), items[0].DefaultReminders[0].Minutes)
	assert.Equal(t, "team@example.com", items[1].ID)
	assert.True(t, items[1].Hidden)

	// The continuation token in the response is not followed.
	assert.Equal(t, 1, requests)
}

func TestCalendarListGet(t *testing.T) {
	var gotPath string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"kind": "calendar#calendarListEntry", "id": "primary", "etag": "\"e1\"", "summary": "Personal", "accessRole": "owner"}`))
	})

	lc := NewCalendarListClient(newTestDispatcher(t, handler))

	item, err := lc.Get(context.Background(), "primary")
	require.NoError(t, err)

	assert.Equal(t, "/calendar/v3/users/me/calendarList/primary", gotPath)
	assert.Equal(t, "Personal", item.Summary)
}

func TestCalendarListAPIError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"code": 403, "message": "Rate Limit Exceeded"}}`))
	})

	lc := NewCalendarListClient(newTestDispatcher(t, handler))

	_, err := lc.List(context.Background(), false, Owner)
	require.Error(t, err)

	var apiErr *googleapi.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Code)
}

func TestCalendarListDecodeFailure(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"items": "not-a-list"`))
	})

	lc := NewCalendarListClient(newTestDispatcher(t, handler))

	_, err := lc.List(context.Background(), false, Owner)
	require.Error(t, err)
	assert.ErrorContains(t, err, "decoding response body")
}

func TestParseCalendarAccessRole(t *testing.T) {
	role, err := ParseCalendarAccessRole("freeBusyReader")
	require.NoError(t, err)
	assert.Equal(t, FreeBusyReader, role)

	_, err = ParseCalendarAccessRole("admin")
	require.Error(t, err)
}
