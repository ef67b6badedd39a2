// Package workspace provides the shared Go definitions and Redis schema patterns
// for an Axero workspace.
//
// # Overview
//
// A workspace is the state behind one dashboard: the user's settings, the
// widget display order, the notification feed and the simulated office roster.
// The CLI, the interactive dashboard and the simulator daemon all exchange this
// state through the types in this package. When several processes share a
// workspace they do so through Redis, using the Client defined here.
//
// # Core Concepts
//
// Feed entries are timestamped notifications. They are created by the simulator,
// mirrored newest-first into a Redis list and announced on a Pub/Sub channel.
// The only mutation after creation is the bulk "mark all read".
//
// Roster snapshots are complete, immutable copies of the simulated employees.
// Every tick replaces the stored snapshot wholesale, so a reader never sees a
// partially updated roster.
//
// Key-value entries hold the small serialized records the dashboard persists:
// the settings record and the widget order.
//
// # Multi-Instance Support
//
// All Redis keys and Pub/Sub channels are namespaced by instance name so that
// several workspaces can share one Redis server without interfering.
//
// # Redis Schema
//
// Key-value entries: axero:{instance_name}:kv:{name}
// Feed list:         axero:{instance_name}:feed
// Roster snapshot:   axero:{instance_name}:roster
//
// Pub/Sub channels: axero:{instance_name}:{event_type}_events
//
// Feed events:      axero:{instance_name}:feed_events
// Feed read events: axero:{instance_name}:feed_read_events
// Roster events:    axero:{instance_name}:roster_events
//
// # Usage Example
//
//	client, err := workspace.NewClient(&redis.Options{Addr: "localhost:6379"}, "default")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	entries, err := client.ListFeed(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
package workspace
