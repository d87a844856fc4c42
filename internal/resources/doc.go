// Package resources provides typed Google Calendar resource clients built on
// top of the dispatch client.
//
// Each resource type carries its own request addressing (path, query, body)
// and is decoded from the wire format documented at
// https://developers.google.com/calendar/api/v3/reference. Typed clients
// share the dispatch client, and through it the token store, by reference.
package resources
