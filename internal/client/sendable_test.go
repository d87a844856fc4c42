package client

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDescriptor struct {
	path    string
	query   QueryParams
	body    []byte
	bodyErr error
}

func (d *testDescriptor) Path(action string) string {
	if action != "" {
		return d.path + "/" + action
	}
	return d.path
}

func (d *testDescriptor) Query() QueryParams {
	return d.query
}

func (d *testDescriptor) BodyBytes() ([]byte, error) {
	return d.body, d.bodyErr
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestResolveURLIsPure(t *testing.T) {
	base := mustParse(t, DefaultBaseURL)
	d := &testDescriptor{
		path:  "users/me/calendarList",
		query: QueryParams{"showHidden": "true", "minAccessRole": "reader"},
	}

	first, err := resolveURL(base, d, "")
	require.NoError(t, err)
	second, err := resolveURL(base, d, "")
	require.NoError(t, err)

	assert.Equal(t, first.String(), second.String())
}

func TestResolveURLPathAndQuery(t *testing.T) {
	base := mustParse(t, DefaultBaseURL)
	d := &testDescriptor{
		path:  "users/me/calendarList",
		query: QueryParams{"showHidden": "true", "minAccessRole": "reader"},
	}

	u, err := resolveURL(base, d, "")
	require.NoError(t, err)

	assert.Equal(t, "/calendar/v3/users/me/calendarList", u.Path, "path unaffected by query contents")

	q := u.Query()
	assert.Len(t, q, 2)
	assert.Equal(t, []string{"true"}, q["showHidden"], "each pair appears exactly once")
	assert.Equal(t, []string{"reader"}, q["minAccessRole"])
}

func TestResolveURLEmptyQuery(t *testing.T) {
	base := mustParse(t, DefaultBaseURL)
	d := &testDescriptor{path: "users/me/calendarList"}

	u, err := resolveURL(base, d, "")
	require.NoError(t, err)
	assert.Empty(t, u.RawQuery)
}

func TestResolveURLActionAppended(t *testing.T) {
	base := mustParse(t, DefaultBaseURL)
	d := &testDescriptor{path: "calendars/primary/events/abc123"}

	u, err := resolveURL(base, d, "move")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(u.Path, "/events/abc123/move"))
}

func TestResolveURLRejectsPlainHTTP(t *testing.T) {
	base := mustParse(t, "http://insecure.example.com/calendar/v3/")
	d := &testDescriptor{path: "users/me/calendarList"}

	_, err := resolveURL(base, d, "")
	require.Error(t, err)
	assert.ErrorContains(t, err, "not https")
}

func TestQueryParamsClone(t *testing.T) {
	orig := QueryParams{"a": "1"}
	clone := orig.Clone()
	clone["a"] = "2"

	assert.Equal(t, "1", orig["a"])
	assert.Nil(t, QueryParams(nil).Clone())
}
