package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client provides instance-scoped Redis operations for a workspace.
// All keys and channels are automatically namespaced with the instance name.
// The client is safe for concurrent use.
type Client struct {
	rdb          *redis.Client
	instanceName string
}

// NewClient creates a new workspace client for the specified instance.
// Returns an error if instanceName fails ValidateInstanceName.
func NewClient(redisOpts *redis.Options, instanceName string) (*Client, error) {
	if err := ValidateInstanceName(instanceName); err != nil {
		return nil, err
	}

	return &Client{
		rdb:          redis.NewClient(redisOpts),
		instanceName: instanceName,
	}, nil
}

// InstanceName returns the namespace this client operates in.
func (c *Client) InstanceName() string {
	return c.instanceName
}

// Close closes the Redis connection. Implements io.Closer.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping verifies Redis connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Get reads a key-value entry.
// Returns ("", redis.Nil) if the entry doesn't exist. Use IsNotFound() to check.
func (c *Client) Get(ctx context.Context, name string) (string, error) {
	value, err := c.rdb.Get(ctx, KVKey(c.instanceName, name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", redis.Nil
		}
		return "", fmt.Errorf("failed to read %s from Redis: %w", name, err)
	}
	return value, nil
}

// Set writes a key-value entry, replacing any previous value.
func (c *Client) Set(ctx context.Context, name, value string) error {
	if err := c.rdb.Set(ctx, KVKey(c.instanceName, name), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s to Redis: %w", name, err)
	}
	return nil
}

// AppendFeedEntry mirrors a feed entry to Redis and publishes an event.
// The entry is pushed to the head of the feed list. When maxEntries is positive
// the list is trimmed to that many entries in the same transaction.
// Publishes full entry JSON to axero:{instance}:feed_events after the write.
func (c *Client) AppendFeedEntry(ctx context.Context, entry *FeedEntry, maxEntries int) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("invalid feed entry: %w", err)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal feed entry: %w", err)
	}

	key := FeedKey(c.instanceName)
	_, err = c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, data)
		if maxEntries > 0 {
			pipe.LTrim(ctx, key, 0, int64(maxEntries-1))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write feed entry to Redis: %w", err)
	}

	if err := c.rdb.Publish(ctx, FeedEventsChannel(c.instanceName), data).Err(); err != nil {
		return fmt.Errorf("failed to publish feed event: %w", err)
	}

	return nil
}

// ListFeed returns the mirrored feed, newest entry first.
// Returns an empty slice if the feed is empty (not an error).
func (c *Client) ListFeed(ctx context.Context) ([]*FeedEntry, error) {
	raw, err := c.rdb.LRange(ctx, FeedKey(c.instanceName), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read feed from Redis: %w", err)
	}

	entries := make([]*FeedEntry, 0, len(raw))
	for i, item := range raw {
		var entry FeedEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal feed entry at index %d: %w", i, err)
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}

// MarkFeedRead sets read=true on every mirrored feed entry and publishes a
// FeedReadEvent. The list is rewritten inside a WATCH transaction so an entry
// appended concurrently is never lost; in that case the transaction fails with
// redis.TxFailedErr and nothing is changed.
//
// Returns the number of entries that changed. Calling it twice is idempotent.
func (c *Client) MarkFeedRead(ctx context.Context) (int, error) {
	key := FeedKey(c.instanceName)
	changed := 0
	var throughMs int64

	err := c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.LRange(ctx, key, 0, -1).Result()
		if err != nil {
			return err
		}
		changed, throughMs = 0, 0

		updated := make([]interface{}, 0, len(raw))
		for i, item := range raw {
			var entry FeedEntry
			if err := json.Unmarshal([]byte(item), &entry); err != nil {
				return fmt.Errorf("failed to unmarshal feed entry at index %d: %w", i, err)
			}
			if !entry.Read {
				entry.Read = true
				changed++
			}
			throughMs = max(throughMs, entry.CreatedAtMs)
			data, err := json.Marshal(&entry)
			if err != nil {
				return err
			}
			updated = append(updated, data)
		}

		if changed == 0 {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.RPush(ctx, key, updated...)
			return nil
		})
		return err
	}, key)
	if err != nil {
		return 0, fmt.Errorf("failed to mark feed read: %w", err)
	}

	event, err := json.Marshal(&FeedReadEvent{ReadAtMs: time.Now().UnixMilli(), ThroughMs: throughMs, Changed: changed})
	if err != nil {
		return changed, fmt.Errorf("failed to marshal feed read event: %w", err)
	}
	if err := c.rdb.Publish(ctx, FeedReadEventsChannel(c.instanceName), event).Err(); err != nil {
		return changed, fmt.Errorf("failed to publish feed read event: %w", err)
	}

	return changed, nil
}

// PutRoster replaces the stored roster snapshot and publishes it.
// Validates the snapshot before writing.
func (c *Client) PutRoster(ctx context.Context, snapshot *RosterSnapshot) error {
	if err := snapshot.Validate(); err != nil {
		return fmt.Errorf("invalid roster snapshot: %w", err)
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal roster snapshot: %w", err)
	}

	if err := c.rdb.Set(ctx, RosterKey(c.instanceName), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write roster to Redis: %w", err)
	}

	if err := c.rdb.Publish(ctx, RosterEventsChannel(c.instanceName), data).Err(); err != nil {
		return fmt.Errorf("failed to publish roster event: %w", err)
	}

	return nil
}

// GetRoster retrieves the latest roster snapshot.
// Returns (nil, redis.Nil) if no simulator has written one yet.
func (c *Client) GetRoster(ctx context.Context) (*RosterSnapshot, error) {
	data, err := c.rdb.Get(ctx, RosterKey(c.instanceName)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, redis.Nil
		}
		return nil, fmt.Errorf("failed to read roster from Redis: %w", err)
	}

	var snapshot RosterSnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to deserialize roster: %w", err)
	}

	return &snapshot, nil
}

// Subscription represents an active Pub/Sub subscription delivering decoded
// events of type T. Caller must call Close() when done to clean up resources.
type Subscription[T any] struct {
	events <-chan *T
	errors <-chan error
	cancel func()
	once   sync.Once
}

// Events returns the channel of decoded events.
// The channel is closed when the subscription is closed or the context is cancelled.
func (s *Subscription[T]) Events() <-chan *T {
	return s.events
}

// Errors returns the channel of subscription errors.
// Errors are non-fatal: the offending message is skipped and delivery continues.
func (s *Subscription[T]) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription. Implements io.Closer.
// Safe to call multiple times - subsequent calls are no-ops.
func (s *Subscription[T]) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// SubscribeFeedEvents subscribes to new feed entries for this instance.
func (c *Client) SubscribeFeedEvents(ctx context.Context) (*Subscription[FeedEntry], error) {
	return subscribe[FeedEntry](ctx, c.rdb, FeedEventsChannel(c.instanceName), "feed entry")
}

// SubscribeFeedReadEvents subscribes to "mark all read" events for this instance.
func (c *Client) SubscribeFeedReadEvents(ctx context.Context) (*Subscription[FeedReadEvent], error) {
	return subscribe[FeedReadEvent](ctx, c.rdb, FeedReadEventsChannel(c.instanceName), "feed read")
}

// SubscribeRosterEvents subscribes to roster snapshots for this instance.
func (c *Client) SubscribeRosterEvents(ctx context.Context) (*Subscription[RosterSnapshot], error) {
	return subscribe[RosterSnapshot](ctx, c.rdb, RosterEventsChannel(c.instanceName), "roster")
}

// subscribe waits for Redis to confirm the subscription before returning, so
// an event published after subscribe returns is always delivered.
//
// Events are delivered on a buffered channel (size 10). Redis Pub/Sub is
// at-most-once: a subscriber that falls too far behind loses messages.
func subscribe[T any](ctx context.Context, rdb *redis.Client, channel, label string) (*Subscription[T], error) {
	pubsub := rdb.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	eventsChan := make(chan *T, 10)
	errorsChan := make(chan error, 10)

	subCtx, cancelFunc := context.WithCancel(ctx)

	go func() {
		defer close(eventsChan)
		defer close(errorsChan)
		defer pubsub.Close()

		ch := pubsub.Channel()

		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var event T
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					select {
					case errorsChan <- fmt.Errorf("failed to unmarshal %s event: %w", label, err):
					case <-subCtx.Done():
						return
					}
					continue
				}

				select {
				case eventsChan <- &event:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &Subscription[T]{
		events: eventsChan,
		errors: errorsChan,
		cancel: cancelFunc,
	}, nil
}

// IsNotFound returns true if the error is a Redis "key not found" error (redis.Nil).
func IsNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}
