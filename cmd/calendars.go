package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shadorain/gcal/internal/resources"
)

func newCalendarsCmd() *cobra.Command {
	var hidden bool
	var accessRole string

	cmd := &cobra.Command{
		Use:   "calendars",
		Short: "List the calendars on the authenticated account",
		Long: `List the calendars visible to the authenticated account, one per line
with the calendar ID, access role and summary.

Only the first page of the calendar list is shown.`,
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

			items, err := resources.NewCalendarListClient(sess.client).List(ctx, hidden, role)
			if err != nil {
				return fmt.Errorf("failed to list calendars: %w", err)
			}

			for _, item := range items {
				marker := " "
				if item.Primary {
					marker = "*"
				}
				fmt.Printf("%s %-40s %-14s %s\n", marker, item.ID, item.AccessRole, item.Summary)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&hidden, "hidden", false, "Include hidden calendars")
	cmd.Flags().StringVar(&accessRole, "access-role", string(resources.Reader), "Minimum access role (freeBusyReader, reader, writer, owner)")
	return cmd
}
