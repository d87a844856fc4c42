package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the gcal application
var rootCmd = &cobra.Command{
	Use:   "gcal",
	Short: "Google Calendar from the command line",
	Long: `gcal is a small Google Calendar client. It authenticates against the
Calendar API with OAuth and can list calendars and upcoming events.

Set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET to the OAuth client
credentials of your Google Cloud project before running any command.`,
	SilenceUsage: true,
}

var debugMode bool

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "gcal version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gcal version %s\n", version)
		},
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Log one diagnostic line per API request to stderr")

	rootCmd.AddCommand(newCalendarsCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newVersionCmd())
}
