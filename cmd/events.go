package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shadorain/gcal/internal/resources"
)

func newEventsCmd() *cobra.Command {
	var days int
	var hidden bool
	var accessRole string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List upcoming events across visible calendars",
		Long: `List the events of every visible calendar within the coming days,
one event per line with its start time, calendar and summary.

Only the first page of each calendar's events is shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := resources.ParseCalendarAccessRole(accessRole)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			sess, err := newSession(ctx)
			if err != nil {
				return err
			}
			defer sess.close(ctx)

			calendars, err := resources.NewCalendarListClient(sess.client).List(ctx, hidden, role)
			if err != nil {
				return fmt.Errorf("failed to list calendars: %w", err)
			}

			events := resources.NewEventClient(sess.client)
			start := time.Now()
			end := start.AddDate(0, 0, days)

			for _, calendar := range calendars {
				list, err := events.List(ctx, calendar.ID, start, end)
				if err != nil {
					return fmt.Errorf("failed to list events for %s: %w", calendar.ID, err)
				}

				for _, event := range list {
					fmt.Printf("%-25s %-30s %s\n", eventStart(event), calendar.Summary, event.Summary)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of days to look ahead")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "Include hidden calendars")
	cmd.Flags().StringVar(&accessRole, "access-role", string(resources.Reader), "Minimum access role (freeBusyReader, reader, writer, owner)")
	return cmd
}

// eventStart renders the start of an event, which is either a timestamp or,
// for all-day events, a bare date.
func eventStart(event resources.Event) string {
	if event.Start == nil {
		return "(no start)"
	}
	if event.Start.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, event.Start.DateTime); err == nil {
			return t.Local().Format("2006-01-02 15:04")
		}
		return event.Start.DateTime
	}
	return event.Start.Date
}
