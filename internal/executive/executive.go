// Package executive implements "CEO mode": a live profit counter and a
// delayed promotion banner over a set of static metric cards.
package executive

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dyluth/axero/internal/clock"
	"github.com/dyluth/axero/internal/random"
)

const (
	StartingProfit  int64 = 1_245_000
	ProfitInterval        = 100 * time.Millisecond
	MaxProfitStep   int64 = 1000
	PromotionDelay        = 2 * time.Second
	PromotionBanner       = "Congratulations! You've been promoted to CEO!"
)

// Metric is one static headline card.
type Metric struct {
	Label  string
	Value  string
	Change string
}

// Metrics are the headline cards shown in CEO mode.
var Metrics = []Metric{
	{Label: "Revenue", Value: "$2.4M", Change: "+12%"},
	{Label: "Employees", Value: "247", Change: "+8%"},
	{Label: "Growth", Value: "34%", Change: "+5%"},
	{Label: "Targets", Value: "89%", Change: "+15%"},
}

// Mode holds CEO mode state. Profit keeps its value across activations.
type Mode struct {
	clock clock.Clock
	chain *clock.Rescheduler

	rngMu sync.Mutex
	rng   *rand.Rand

	mu        sync.Mutex
	active    bool
	profit    int64
	promotion bool
	banner    *clock.Timer
}

// New creates an inactive mode. rng may be nil.
func New(c clock.Clock, rng *rand.Rand) *Mode {
	if rng == nil {
		rng = random.New()
	}
	m := &Mode{clock: c, rng: rng, profit: StartingProfit}
	m.chain = clock.NewRescheduler(c, func() time.Duration { return ProfitInterval }, m.grow)
	return m
}

// Activate starts the profit counter and arms the promotion banner.
// Returns false if already active.
func (m *Mode) Activate() bool {
	m.mu.Lock()
	if m.active {
		m.mu.Unlock()
		return false
	}
	m.active = true
	m.banner = m.clock.AfterFunc(PromotionDelay, m.showPromotion)
	m.mu.Unlock()

	m.chain.Start()
	return true
}

// Deactivate cancels both timers and hides the banner.
// Returns false if not active.
func (m *Mode) Deactivate() bool {
	m.chain.Stop()

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active {
		return false
	}
	m.active = false
	m.promotion = false
	if m.banner != nil {
		m.banner.Stop()
		m.banner = nil
	}
	return true
}

// AcceptPromotion dismisses the banner.
func (m *Mode) AcceptPromotion() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.promotion = false
}

// Active reports whether CEO mode is on.
func (m *Mode) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// PromotionVisible reports whether the banner is showing.
func (m *Mode) PromotionVisible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.promotion
}

// Profit is the current profit in whole dollars.
func (m *Mode) Profit() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profit
}

// FormatProfit renders dollars with thousands separators, e.g. $1,245,000.
func FormatProfit(dollars int64) string {
	return "$" + humanize.Comma(dollars)
}

func (m *Mode) grow() {
	m.rngMu.Lock()
	step := m.rng.Int64N(MaxProfitStep)
	m.rngMu.Unlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active {
		m.profit += step
	}
}

func (m *Mode) showPromotion() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active {
		m.promotion = true
	}
	m.banner = nil
}
