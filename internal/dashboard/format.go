// Package dashboard renders widgets, feed entries and roster snapshots for
// terminal output.
package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dyluth/axero/internal/widgets"
	"github.com/dyluth/axero/pkg/workspace"
)

// OutputFormat specifies how list output is rendered.
type OutputFormat string

const (
	// OutputFormatDefault uses a table format with truncated text
	OutputFormatDefault OutputFormat = "default"

	// OutputFormatJSONL outputs complete records as line-delimited JSON
	OutputFormatJSONL OutputFormat = "jsonl"
)

// ParseOutputFormat validates a --output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case "", OutputFormatDefault:
		return OutputFormatDefault, nil
	case OutputFormatJSONL:
		return OutputFormatJSONL, nil
	default:
		return "", fmt.Errorf("unknown output format: %s (expected 'default' or 'jsonl')", s)
	}
}

// FormatWidgets writes the board in display order.
func FormatWidgets(w io.Writer, board []widgets.Widget) {
	fmt.Fprintf(w, "%-4s %-3s %-9s %-20s %s\n", "POS", "ID", "KIND", "TITLE", "SUMMARY")
	fmt.Fprintf(w, "%-4s %-3s %-9s %-20s %s\n", "----", "---", "---------", "--------------------", "----------------------------------------")

	for i, wd := range board {
		summary := "-"
		if len(wd.Body) > 0 {
			summary = truncate(wd.Body[0], 40)
		}
		fmt.Fprintf(w, "%-4d %-3s %-9s %-20s %s\n", i, wd.ID, wd.Kind, wd.Title, summary)
	}
}

// FormatFeed writes feed entries as a table, newest first.
// Returns the number of entries formatted.
func FormatFeed(w io.Writer, entries []workspace.FeedEntry, instanceName string, now time.Time) int {
	if len(entries) == 0 {
		fmt.Fprintf(w, "No notifications for instance '%s'\n", instanceName)
		return 0
	}

	fmt.Fprintf(w, "Notifications for instance '%s':\n\n", instanceName)

	fmt.Fprintf(w, "%-10s %-2s %-8s %-24s %s\n", "ID", "", "AGE", "TITLE", "DETAIL")
	fmt.Fprintf(w, "%-10s %-2s %-8s %-24s %s\n", "----------", "--", "--------", "------------------------", "----------------------------------------")

	unread := 0
	for _, e := range entries {
		state := "✓"
		if !e.Read {
			state = "●"
			unread++
		}
		fmt.Fprintf(w, "%-10s %-2s %-8s %-24s %s\n",
			formatID(e.ID),
			state,
			formatAge(e.CreatedAtMs, now),
			truncate(e.Title, 24),
			formatDetail(e.Description),
		)
	}

	noun := "notification"
	if len(entries) != 1 {
		noun = "notifications"
	}
	fmt.Fprintf(w, "\n%d %s, %d unread\n", len(entries), noun, unread)

	return len(entries)
}

// FormatRoster writes one row per employee with an activity bar.
func FormatRoster(w io.Writer, snapshot workspace.RosterSnapshot, now time.Time) {
	fmt.Fprintf(w, "%-3s %-16s %-12s %-4s %s\n", "ID", "NAME", "DEPARTMENT", "MOOD", "ACTIVITY")
	fmt.Fprintf(w, "%-3s %-16s %-12s %-4s %s\n", "---", "----------------", "------------", "----", "----------------")

	for _, e := range snapshot.Employees {
		fmt.Fprintf(w, "%-3s %-16s %-12s %-4s %s %3.0f%%\n",
			e.ID, e.Name, e.Department, e.Mood.Emoji(), ActivityBar(e.ActivityLevel, 10), e.ActivityLevel*100)
	}

	if snapshot.Tick == 0 {
		fmt.Fprintf(w, "\nroster has not ticked yet\n")
		return
	}
	fmt.Fprintf(w, "\ntick %d, updated %s\n", snapshot.Tick, formatAge(snapshot.TickedAtMs, now))
}

// ActivityBar renders level in [0,1] as a bar of width cells.
func ActivityBar(level float64, width int) string {
	filled := int(level*float64(width) + 0.5)
	filled = min(max(filled, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// FormatJSONL writes each record as a single JSON object on its own line.
// This format is ideal for streaming and processing with tools like jq.
func FormatJSONL[T any](w io.Writer, records []T) error {
	for i := range records {
		data, err := json.Marshal(&records[i])
		if err != nil {
			return fmt.Errorf("failed to marshal record to JSON: %w", err)
		}

		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}

	return nil
}

// formatID truncates an ID to its first 8 characters for compact display.
func formatID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatDetail shows the first non-empty line, truncated to 40 characters.
// Empty text returns "-".
func formatDetail(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return truncate(trimmed, 40)
		}
	}
	return "-"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return s
}

// formatAge formats a millisecond timestamp relative to now, like "2m ago".
func formatAge(timestampMs int64, now time.Time) string {
	if timestampMs == 0 {
		return "-"
	}

	diff := now.Sub(time.UnixMilli(timestampMs))
	if diff < 0 {
		diff = 0
	}

	switch {
	case diff < time.Minute:
		return fmt.Sprintf("%ds ago", int(diff.Seconds()))
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
}
