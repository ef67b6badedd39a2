// Package watch follows live workspace activity published by the simulator.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dyluth/axero/internal/dashboard"
	"github.com/dyluth/axero/pkg/workspace"
)

// PollForRoster polls until a simulator has stored a roster snapshot.
// Returns the snapshot or an error if timeout occurs.
// Polls every 200ms for the specified timeout duration.
func PollForRoster(ctx context.Context, client *workspace.Client, timeout time.Duration) (*workspace.RosterSnapshot, error) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	timeoutCh := time.After(timeout)

	for {
		snapshot, err := client.GetRoster(ctx)
		if err == nil {
			return snapshot, nil
		}
		if !workspace.IsNotFound(err) {
			return nil, fmt.Errorf("failed to query roster: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case <-timeoutCh:
			return nil, fmt.Errorf("timeout waiting for roster after %v (is the simulator running?)", timeout)

		case <-ticker.C:
		}
	}
}

// FormatFeedEvent renders a new feed entry as one line.
func FormatFeedEvent(e *workspace.FeedEntry) string {
	if e.Description == "" {
		return fmt.Sprintf("🔔 %s", e.Title)
	}
	return fmt.Sprintf("🔔 %s: %s", e.Title, e.Description)
}

// FormatReadEvent renders a mark-all-read event as one line.
func FormatReadEvent(e *workspace.FeedReadEvent) string {
	noun := "notification"
	if e.Changed != 1 {
		noun = "notifications"
	}
	return fmt.Sprintf("✓ Marked %d %s read", e.Changed, noun)
}

type readEventLine struct {
	Event string `json:"event"`
	*workspace.FeedReadEvent
}

type entryEventLine struct {
	Event string `json:"event"`
	*workspace.FeedEntry
}

// StreamFeed writes feed activity to w until ctx is cancelled. New entries
// and mark-all-read events are interleaved in arrival order. Malformed events
// are reported inline and skipped.
func StreamFeed(ctx context.Context, client *workspace.Client, format dashboard.OutputFormat, w io.Writer) error {
	entries, err := client.SubscribeFeedEvents(ctx)
	if err != nil {
		return err
	}
	defer entries.Close()

	reads, err := client.SubscribeFeedReadEvents(ctx)
	if err != nil {
		return err
	}
	defer reads.Close()

	write := func(text string, record any) error {
		if format == dashboard.OutputFormatJSONL {
			data, err := json.Marshal(record)
			if err != nil {
				return fmt.Errorf("failed to marshal event: %w", err)
			}
			text = string(data)
		}
		_, err := fmt.Fprintln(w, text)
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case e, ok := <-entries.Events():
			if !ok {
				return nil
			}
			if err := write(FormatFeedEvent(e), entryEventLine{Event: "feed_entry", FeedEntry: e}); err != nil {
				return err
			}

		case e, ok := <-reads.Events():
			if !ok {
				return nil
			}
			if err := write(FormatReadEvent(e), readEventLine{Event: "feed_read", FeedReadEvent: e}); err != nil {
				return err
			}

		case err := <-entries.Errors():
			if err != nil {
				fmt.Fprintf(w, "⚠️  %v\n", err)
			}

		case err := <-reads.Errors():
			if err != nil {
				fmt.Fprintf(w, "⚠️  %v\n", err)
			}
		}
	}
}
