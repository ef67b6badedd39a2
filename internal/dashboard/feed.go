package dashboard

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/dyluth/axero/pkg/workspace"
)

// FeedFilter selects feed entries. All filters are ANDed together.
type FeedFilter struct {
	SinceTimestampMs int64  // 0 = no lower bound
	UntilTimestampMs int64  // 0 = no upper bound
	TitleGlob        string // Glob pattern on the title, empty = no filter
	UnreadOnly       bool
}

// matches returns true if the entry satisfies every criterion.
func (f *FeedFilter) matches(e *workspace.FeedEntry) bool {
	if f.SinceTimestampMs > 0 && e.CreatedAtMs < f.SinceTimestampMs {
		return false
	}
	if f.UntilTimestampMs > 0 && e.CreatedAtMs > f.UntilTimestampMs {
		return false
	}
	if f.TitleGlob != "" {
		matched, err := filepath.Match(f.TitleGlob, e.Title)
		if err != nil || !matched {
			return false
		}
	}
	if f.UnreadOnly && e.Read {
		return false
	}
	return true
}

// FilterFeed returns the entries matching filter, keeping their order.
// A nil filter matches everything.
func FilterFeed(entries []*workspace.FeedEntry, filter *FeedFilter) []workspace.FeedEntry {
	out := make([]workspace.FeedEntry, 0, len(entries))
	for _, e := range entries {
		if filter != nil && !filter.matches(e) {
			continue
		}
		out = append(out, *e)
	}
	return out
}

// ListFeed reads the mirrored feed for the client's instance and writes it
// to w in the requested format.
func ListFeed(ctx context.Context, client *workspace.Client, format OutputFormat, filter *FeedFilter, now time.Time, w io.Writer) error {
	raw, err := client.ListFeed(ctx)
	if err != nil {
		return err
	}
	entries := FilterFeed(raw, filter)

	switch format {
	case OutputFormatDefault:
		FormatFeed(w, entries, client.InstanceName(), now)
	case OutputFormatJSONL:
		if err := FormatJSONL(w, entries); err != nil {
			return fmt.Errorf("failed to format JSONL output: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}

	return nil
}
