package workspace

import "fmt"

// Redis key pattern helpers
//
// Key pattern: axero:{instance_name}:{entity}
// Channel pattern: axero:{instance_name}:{event_type}_events

// KVKey returns the Redis key for a named key-value entry.
// Pattern: axero:{instance_name}:kv:{name}
func KVKey(instanceName, name string) string {
	return fmt.Sprintf("axero:%s:kv:%s", instanceName, name)
}

// FeedKey returns the Redis key for the feed list (newest entry at index 0).
// Pattern: axero:{instance_name}:feed
func FeedKey(instanceName string) string {
	return fmt.Sprintf("axero:%s:feed", instanceName)
}

// RosterKey returns the Redis key for the latest roster snapshot.
// Pattern: axero:{instance_name}:roster
func RosterKey(instanceName string) string {
	return fmt.Sprintf("axero:%s:roster", instanceName)
}

// FeedEventsChannel returns the Pub/Sub channel for new feed entries.
// Pattern: axero:{instance_name}:feed_events
func FeedEventsChannel(instanceName string) string {
	return fmt.Sprintf("axero:%s:feed_events", instanceName)
}

// FeedReadEventsChannel returns the Pub/Sub channel for "mark all read" events.
// Pattern: axero:{instance_name}:feed_read_events
func FeedReadEventsChannel(instanceName string) string {
	return fmt.Sprintf("axero:%s:feed_read_events", instanceName)
}

// RosterEventsChannel returns the Pub/Sub channel for roster snapshots.
// Pattern: axero:{instance_name}:roster_events
func RosterEventsChannel(instanceName string) string {
	return fmt.Sprintf("axero:%s:roster_events", instanceName)
}
