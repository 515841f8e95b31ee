package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ifysglbiydgfifs/java-lab-8-1/events"
	"github.com/ifysglbiydgfifs/java-lab-8-1/loggers"
)

var logCmd = &cobra.Command{
	Use:   "log <message>...",
	Short: "Log each message as a new event, then print the summary",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sink := loggers.NewCombinedLogger(loggers.NewConsoleLogger(cmd.OutOrStdout()), dbLogger)

		failed := 0
		for _, msg := range args {
			event := events.NewEvent(seq, msg)
			if err := sink.LogEvent(event); err != nil {
				logger.Error("Failed to log event", "id", event.Id, "error", err)
				failed++
			}
		}

		// The summary is diagnostic only and never changes the exit status.
		dbLogger.Shutdown()

		if failed > 0 {
			return fmt.Errorf("%d of %d events failed to log", failed, len(args))
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every stored event",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := store.AllEvents()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, event := range all {
			fmt.Fprintln(out, event.String())
		}
		fmt.Fprintf(out, "%d events, next ID %d\n", len(all), seq.Peek())
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the event count and all stored IDs",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		dbLogger.Shutdown()
	},
}
