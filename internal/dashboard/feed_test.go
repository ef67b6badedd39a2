package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dyluth/axero/pkg/workspace"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedEntries() []*workspace.FeedEntry {
	return []*workspace.FeedEntry{
		{ID: uuid.NewString(), Title: "Meeting reminder", CreatedAtMs: 3000},
		{ID: uuid.NewString(), Title: "Build succeeded", CreatedAtMs: 2000, Read: true},
		{ID: uuid.NewString(), Title: "Build failed", CreatedAtMs: 1000},
	}
}

func TestFilterFeed(t *testing.T) {
	entries := feedEntries()

	tests := []struct {
		name   string
		filter *FeedFilter
		want   []string
	}{
		{"nil filter", nil, []string{"Meeting reminder", "Build succeeded", "Build failed"}},
		{"since", &FeedFilter{SinceTimestampMs: 2000}, []string{"Meeting reminder", "Build succeeded"}},
		{"until", &FeedFilter{UntilTimestampMs: 2000}, []string{"Build succeeded", "Build failed"}},
		{"glob", &FeedFilter{TitleGlob: "Build*"}, []string{"Build succeeded", "Build failed"}},
		{"unread", &FeedFilter{UnreadOnly: true}, []string{"Meeting reminder", "Build failed"}},
		{"combined", &FeedFilter{TitleGlob: "Build*", UnreadOnly: true}, []string{"Build failed"}},
		{"bad glob", &FeedFilter{TitleGlob: "["}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterFeed(entries, tt.filter)
			titles := make([]string, 0, len(got))
			for _, e := range got {
				titles = append(titles, e.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestListFeed(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client, err := workspace.NewClient(&redis.Options{Addr: mr.Addr()}, "dev")
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	entries := feedEntries()
	for i := len(entries) - 1; i >= 0; i-- {
		require.NoError(t, client.AppendFeedEntry(ctx, entries[i], 0))
	}

	t.Run("default format", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, ListFeed(ctx, client, OutputFormatDefault, nil, testNow, &buf))
		assert.Contains(t, buf.String(), "Notifications for instance 'dev'")
		assert.Contains(t, buf.String(), "3 notifications, 2 unread")
	})

	t.Run("jsonl format with filter", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, ListFeed(ctx, client, OutputFormatJSONL, &FeedFilter{UnreadOnly: true}, testNow, &buf))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)

		var first workspace.FeedEntry
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
		assert.Equal(t, entries[0].ID, first.ID)
		assert.False(t, first.Read)
	})

	t.Run("unknown format", func(t *testing.T) {
		err := ListFeed(ctx, client, OutputFormat("xml"), nil, testNow, &bytes.Buffer{})
		assert.ErrorContains(t, err, "unknown output format")
	})
}
