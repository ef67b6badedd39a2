// Package simulator runs the headless workspace simulation: a notification
// feed and an office roster, mirrored to Redis for every CLI and dashboard
// attached to the same instance.
package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/dyluth/axero/internal/clock"
	"github.com/dyluth/axero/internal/config"
	"github.com/dyluth/axero/internal/feed"
	"github.com/dyluth/axero/internal/roster"
	"github.com/dyluth/axero/pkg/workspace"
	"github.com/prometheus/client_golang/prometheus"
)

// writeTimeout bounds each Redis write made from a timer callback.
const writeTimeout = 2 * time.Second

// Options configures an Engine. Zero values are production defaults.
type Options struct {
	Clock clock.Clock
	Rand  *rand.Rand

	// HealthAddr is the listen address for /healthz and /metrics.
	// Empty disables the HTTP server.
	HealthAddr string

	// Registry receives the simulator metrics. Nil creates a private one.
	Registry *prometheus.Registry
}

// Engine owns the simulated feed and roster for one instance.
type Engine struct {
	client       *workspace.Client
	instanceName string
	clock        clock.Clock
	maxEntries   int

	feed      *feed.Feed
	scheduler *feed.Scheduler
	roster    *roster.Roster
	ticker    *roster.Ticker

	metrics      *Metrics
	healthServer *HealthServer
}

// NewEngine builds a stopped engine from a validated configuration.
func NewEngine(client *workspace.Client, cfg *config.AxeroConfig, opts Options) (*Engine, error) {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	e := &Engine{
		client:       client,
		instanceName: client.InstanceName(),
		clock:        opts.Clock,
		maxEntries:   *cfg.Feed.MaxEntries,
		metrics:      NewMetrics(opts.Registry),
	}

	e.feed = feed.New(opts.Clock, e.maxEntries)
	e.scheduler = feed.NewScheduler(e.feed, opts.Clock, feed.SchedulerConfig{
		MinInterval: cfg.Feed.MinInterval,
		MaxInterval: cfg.Feed.MaxInterval,
		Templates:   cfg.Feed.Templates,
		Rand:        opts.Rand,
		OnEmit:      e.onEmit,
	})

	r, err := roster.New(opts.Clock, cfg.Roster.RosterEmployees(), opts.Rand)
	if err != nil {
		return nil, err
	}
	e.roster = r
	e.ticker = roster.NewTicker(r, opts.Clock, cfg.Roster.TickInterval, e.onTick)

	if opts.HealthAddr != "" {
		e.healthServer = NewHealthServer(client, opts.HealthAddr, opts.Registry)
	}

	return e, nil
}

// Run starts the simulation and blocks until ctx is cancelled.
// Returns an error only if startup fails.
func (e *Engine) Run(ctx context.Context) error {
	if e.healthServer != nil {
		if err := e.healthServer.Start(); err != nil {
			return fmt.Errorf("failed to start health server: %w", err)
		}
		defer e.healthServer.Shutdown(context.Background())
	}

	log.Printf("[Simulator] Starting for instance '%s'", e.instanceName)

	subscription, err := e.client.SubscribeFeedReadEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to feed read events: %w", err)
	}
	defer subscription.Close()

	log.Printf("[Simulator] Subscribed to feed_read_events")

	// Publish the starting roster so readers never wait a full tick.
	e.onTick(e.roster.Snapshot())

	e.scheduler.Start()
	defer e.scheduler.Stop()

	tickCtx, stopTicker := context.WithCancel(ctx)
	tickerDone := make(chan struct{})
	go func() {
		defer close(tickerDone)
		e.ticker.Run(tickCtx)
	}()
	defer func() {
		stopTicker()
		<-tickerDone
	}()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[Simulator] Shutting down...")
			return nil

		case event, ok := <-subscription.Events():
			if !ok {
				log.Printf("[Simulator] Subscription closed")
				return nil
			}

			e.markFeedRead(event)

		case err, ok := <-subscription.Errors():
			if !ok {
				log.Printf("[Simulator] Error channel closed")
				return nil
			}
			log.Printf("[Simulator] Subscription error: %v", err)
		}
	}
}

// onEmit mirrors a freshly pushed entry to Redis.
func (e *Engine) onEmit(entry workspace.FeedEntry) {
	e.metrics.FeedEmitted.Inc()
	e.metrics.FeedUnread.Set(float64(e.feed.UnreadCount()))

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := e.client.AppendFeedEntry(ctx, &entry, e.maxEntries); err != nil {
		e.metrics.RedisErrors.WithLabelValues("append_feed").Inc()
		log.Printf("[Simulator] Error mirroring feed entry %s: %v", entry.ID, err)
		return
	}

	e.logEvent("feed_entry_emitted", map[string]interface{}{
		"entry_id": entry.ID,
		"title":    entry.Title,
	})
}

// markFeedRead applies a read event to the local feed. Only entries the
// reader saw are marked, so anything emitted since stays unread and the
// unread gauge keeps matching Redis.
func (e *Engine) markFeedRead(event *workspace.FeedReadEvent) {
	changed := e.feed.MarkReadThrough(event.ThroughMs)
	e.metrics.FeedUnread.Set(float64(e.feed.UnreadCount()))
	e.logEvent("feed_marked_read", map[string]interface{}{
		"through_ms":     event.ThroughMs,
		"changed_remote": event.Changed,
		"changed_local":  changed,
	})
}

// onTick mirrors a roster snapshot to Redis.
func (e *Engine) onTick(snapshot workspace.RosterSnapshot) {
	if snapshot.Tick > 0 {
		e.metrics.RosterTicks.Inc()
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := e.client.PutRoster(ctx, &snapshot); err != nil {
		e.metrics.RedisErrors.WithLabelValues("put_roster").Inc()
		log.Printf("[Simulator] Error mirroring roster tick %d: %v", snapshot.Tick, err)
	}
}

// logEvent logs a structured event in JSON format.
func (e *Engine) logEvent(eventType string, data map[string]interface{}) {
	data["timestamp"] = e.clock.Now().UTC().Format(time.RFC3339)
	data["level"] = "info"
	data["component"] = "simulator"
	data["event_type"] = eventType
	data["instance"] = e.instanceName

	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("[Simulator] Failed to marshal log event: %v", err)
		return
	}

	log.Println(string(jsonData))
}
