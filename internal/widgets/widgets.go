// Package widgets holds the fixed dashboard widget catalog and the persisted
// widget order.
package widgets

import (
	"context"
	"strings"
	"time"

	"github.com/dyluth/axero/internal/kv"
	"github.com/dyluth/axero/internal/ordering"
)

// OrderKey is the storage key holding the widget order as a JSON id list.
const OrderKey = "widget-order"

// EasterEggWord unlocks the easter egg banner.
const EasterEggWord = "axero"

// EasterEggDuration is how long the easter egg banner stays up.
const EasterEggDuration = 3 * time.Second

// Kind selects a widget's icon and color family.
type Kind string

const (
	KindDocument Kind = "document"
	KindWellness Kind = "wellness"
	KindGame     Kind = "game"
	KindCalendar Kind = "calendar"
	KindChat     Kind = "chat"
	KindMetrics  Kind = "metrics"
)

// Widget is a fixed display panel.
type Widget struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Kind  Kind     `json:"kind"`
	Body  []string `json:"body"`
}

// Catalog returns the widgets in declaration order.
func Catalog() []Widget {
	return []Widget{
		{
			ID: "1", Title: "Live Collaboration", Kind: KindDocument,
			Body: []string{`Alex is editing "Q4 Report"`, "Last updated: 2 minutes ago", "3 collaborators active"},
		},
		{
			ID: "2", Title: "Team Wellness", Kind: KindWellness,
			Body: []string{"Daily Steps: 8,247", "Water Intake: 6/8 glasses"},
		},
		{
			ID: "3", Title: "Easter Egg Hunt", Kind: KindGame,
			Body: []string{`Type "axero" to unlock`, "Hidden mini-game"},
		},
		{
			ID: "4", Title: "Meeting Rooms", Kind: KindCalendar,
			Body: []string{"Conference A: available", "Conference B: occupied", "Huddle Room: available"},
		},
		{
			ID: "5", Title: "Team Chat", Kind: KindChat,
			Body: []string{"Sarah: Great presentation!", "Mike: Thanks team 🎉", "3 new messages"},
		},
		{
			ID: "6", Title: "Performance", Kind: KindMetrics,
			Body: []string{"Productivity: +15%", "Efficiency: 94%"},
		},
	}
}

// Board is the widget catalog with its persisted order.
type Board = ordering.Collection[string, Widget]

// NewBoard builds the board and restores the order saved in store.
// store may be nil for an unpersisted board.
func NewBoard(ctx context.Context, store kv.Store) (*Board, error) {
	catalog := Catalog()
	items := make([]ordering.Item[string, Widget], 0, len(catalog))
	for _, w := range catalog {
		items = append(items, ordering.Item[string, Widget]{Key: w.ID, Value: w})
	}

	board, err := ordering.New(items, store, OrderKey)
	if err != nil {
		return nil, err
	}
	board.Load(ctx)
	return board, nil
}

// IsEasterEgg reports whether input is the secret word, ignoring case and
// surrounding whitespace.
func IsEasterEgg(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), EasterEggWord)
}
