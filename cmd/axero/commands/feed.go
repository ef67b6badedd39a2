package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dyluth/axero/internal/dashboard"
	"github.com/dyluth/axero/internal/printer"
	"github.com/dyluth/axero/internal/timespec"
	"github.com/dyluth/axero/internal/watch"
	"github.com/spf13/cobra"
)

var (
	feedOutputFormat string
	feedSince        string
	feedUntil        string
	feedTitle        string
	feedUnread       bool
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Inspect the notification feed published by the simulator",
	Long: `Inspect the notification feed that axero-simulator mirrors to Redis.

Output Formats:
  default - Human-readable table, newest first
  jsonl   - Line-delimited JSON, one entry per line

Time Filters (list only):
  --since  - Show entries created after this time
  --until  - Show entries created before this time

Examples:
  # Everything still in the feed
  axero feed list

  # Unread build notifications from the last hour, for jq
  axero feed list --unread --title "Build*" --since 1h -o jsonl

  # Mark everything read on every attached terminal
  axero feed read

  # Follow new entries as they arrive
  axero feed watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var feedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List feed entries",
	Args:  cobra.NoArgs,
	RunE:  runFeedList,
}

var feedReadCmd = &cobra.Command{
	Use:   "read",
	Short: "Mark every feed entry read",
	Args:  cobra.NoArgs,
	RunE:  runFeedRead,
}

var feedWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream new entries and read events",
	Args:  cobra.NoArgs,
	RunE:  runFeedWatch,
}

func init() {
	feedListCmd.Flags().StringVarP(&feedOutputFormat, "output", "o", "default", "Output format: default or jsonl")
	feedListCmd.Flags().StringVar(&feedSince, "since", "", "Show entries after time (duration, RFC3339 or 'today')")
	feedListCmd.Flags().StringVar(&feedUntil, "until", "", "Show entries before time (duration, RFC3339 or 'today')")
	feedListCmd.Flags().StringVar(&feedTitle, "title", "", "Filter by title (glob pattern)")
	feedListCmd.Flags().BoolVar(&feedUnread, "unread", false, "Only show unread entries")

	feedWatchCmd.Flags().StringVarP(&feedOutputFormat, "output", "o", "default", "Output format: default or jsonl")

	feedCmd.AddCommand(feedListCmd, feedReadCmd, feedWatchCmd)
	rootCmd.AddCommand(feedCmd)
}

func runFeedList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	format, err := dashboard.ParseOutputFormat(feedOutputFormat)
	if err != nil {
		return printer.Error("invalid output format", err.Error(), []string{"Valid formats: default, jsonl"})
	}

	now := time.Now()
	since, until, err := timespec.ParseRange(feedSince, feedUntil, now)
	if err != nil {
		return printer.Error(
			"invalid time range",
			err.Error(),
			[]string{"Use a duration like 1h30m, an RFC3339 time like 2025-10-29T13:00:00Z, or 'today'"},
		)
	}

	client, err := connectRedis(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	filter := &dashboard.FeedFilter{
		SinceTimestampMs: since,
		UntilTimestampMs: until,
		TitleGlob:        feedTitle,
		UnreadOnly:       feedUnread,
	}
	if err := dashboard.ListFeed(ctx, client, format, filter, now, printer.Stdout); err != nil {
		return fmt.Errorf("failed to list feed: %w", err)
	}
	return nil
}

func runFeedRead(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := connectRedis(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	changed, err := client.MarkFeedRead(ctx)
	if err != nil {
		return printer.Error(
			"failed to mark feed read",
			err.Error(),
			[]string{"Retry; a concurrent write aborts the update without changing anything"},
		)
	}

	if changed == 0 {
		printer.Info("Nothing unread\n")
		return nil
	}
	printer.Success("Marked %d notifications read\n", changed)
	return nil
}

func runFeedWatch(cmd *cobra.Command, args []string) error {
	format, err := dashboard.ParseOutputFormat(feedOutputFormat)
	if err != nil {
		return printer.Error("invalid output format", err.Error(), []string{"Valid formats: default, jsonl"})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := connectRedis(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if format == dashboard.OutputFormatDefault {
		printer.Faint("Watching feed for instance '%s' (Ctrl+C to stop)\n", instanceName)
	}
	return watch.StreamFeed(ctx, client, format, printer.Stdout)
}
