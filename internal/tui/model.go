// Package tui is the interactive terminal dashboard: the widget board with
// the notification feed, the focus timer, the office pulse and the
// assistant prompt, styled from the saved preferences.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dyluth/axero/internal/assistant"
	"github.com/dyluth/axero/internal/clock"
	"github.com/dyluth/axero/internal/executive"
	"github.com/dyluth/axero/internal/focus"
	"github.com/dyluth/axero/internal/preferences"
	"github.com/dyluth/axero/internal/pulse"
	"github.com/dyluth/axero/internal/widgets"
	"github.com/dyluth/axero/pkg/workspace"
)

// refreshInterval is how often the view is redrawn to pick up changes made
// by timers and remote events.
const refreshInterval = 100 * time.Millisecond

// Page is one of the top-level screens.
type Page int

const (
	PageDashboard Page = iota
	PageFocus
	PagePulse
	PageAssistant
)

var pageNames = []string{"Dashboard", "Focus", "Pulse", "Assistant"}

func (p Page) String() string {
	if p < 0 || int(p) >= len(pageNames) {
		return "Unknown"
	}
	return pageNames[p]
}

// PageFor maps a landing page preference to a Page.
func PageFor(l preferences.LandingPage) Page {
	switch l {
	case preferences.LandingFocus:
		return PageFocus
	case preferences.LandingPulse:
		return PagePulse
	case preferences.LandingAssistant:
		return PageAssistant
	default:
		return PageDashboard
	}
}

// FeedSource is the notification feed shown beside the widgets. Both the
// local feed and the Redis mirror satisfy it.
type FeedSource interface {
	Entries() []workspace.FeedEntry
	MarkAllRead() int
}

// Deps are the components the dashboard drives. All are required.
type Deps struct {
	Clock     clock.Clock
	Board     *widgets.Board
	Feed      FeedSource
	Focus     *focus.Timer
	Executive *executive.Mode
	Prefs     *preferences.Store
	Pulse     *pulse.View

	// Assistant must be built over Input so the prompt can reach it.
	Assistant *assistant.Assistant
	Input     *assistant.Typed
}

// refreshMsg triggers a redraw.
type refreshMsg struct{}

// replyMsg carries the outcome of one assistant Listen.
type replyMsg struct {
	reply assistant.Reply
	err   error
}

// Model is the top-level bubbletea model for the dashboard.
type Model struct {
	ctx  context.Context
	deps Deps
	keys KeyMap

	width  int
	height int

	page Page

	// Dashboard widget cursor; grabbed means j/k move the widget itself.
	cursor  int
	grabbed bool

	// Pulse page selection cursor into the roster.
	employee int

	// Assistant prompt.
	prompting bool
	input     []rune

	easterEggUntil time.Time
}

// NewModel creates the dashboard, opening on the landing page preference.
func NewModel(ctx context.Context, deps Deps) Model {
	return Model{
		ctx:  ctx,
		deps: deps,
		keys: DefaultKeyMap,
		page: PageFor(deps.Prefs.Current().LandingPage),
	}
}

// Init starts the redraw loop.
func (model Model) Init() tea.Cmd {
	return refresh()
}

func refresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

// Update handles a message and returns the new model.
func (model Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		model.width = msg.Width
		model.height = msg.Height
		return model, nil

	case refreshMsg:
		return model, refresh()

	case replyMsg:
		if msg.err == nil && msg.reply.Intent == assistant.IntentFocus {
			model.setPage(PageFocus)
			model.deps.Focus.Start()
		}
		return model, nil

	case tea.KeyMsg:
		if model.prompting {
			return model.updatePrompt(msg)
		}
		return model.updateKey(msg)
	}
	return model, nil
}

func (model Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := model.keys

	switch {
	case key.Matches(msg, keys.Quit):
		return model, tea.Quit

	case key.Matches(msg, keys.PageDashboard):
		model.setPage(PageDashboard)
	case key.Matches(msg, keys.PageFocus):
		model.setPage(PageFocus)
	case key.Matches(msg, keys.PagePulse):
		model.setPage(PagePulse)
	case key.Matches(msg, keys.PageAssistant):
		model.setPage(PageAssistant)
	case key.Matches(msg, keys.NextPage):
		model.setPage((model.page + 1) % Page(len(pageNames)))

	case key.Matches(msg, keys.Prompt):
		model.prompting = true
		model.input = nil

	case key.Matches(msg, keys.MarkRead):
		model.deps.Feed.MarkAllRead()

	case key.Matches(msg, keys.CEO):
		if !model.deps.Executive.Deactivate() {
			model.deps.Executive.Activate()
		}

	case key.Matches(msg, keys.Accept) && model.deps.Executive.PromotionVisible():
		model.deps.Executive.AcceptPromotion()

	case key.Matches(msg, keys.DarkMode):
		model.deps.Prefs.Update(model.ctx, func(p preferences.Preferences) preferences.Preferences {
			p.DarkMode = !p.DarkMode
			return p
		})

	case key.Matches(msg, keys.Accent):
		model.deps.Prefs.Update(model.ctx, func(p preferences.Preferences) preferences.Preferences {
			p.AccentColor = nextAccent(p.AccentColor)
			return p
		})

	default:
		switch model.page {
		case PageDashboard:
			model.updateDashboard(msg)
		case PageFocus:
			model.updateFocus(msg)
		case PagePulse:
			model.updatePulse(msg)
		}
	}
	return model, nil
}

func (model *Model) setPage(p Page) {
	model.page = p
	model.grabbed = false
}

func (model *Model) updateDashboard(msg tea.KeyMsg) {
	board := model.deps.Board
	keys := model.keys

	switch {
	case key.Matches(msg, keys.Up):
		model.step(-1)
	case key.Matches(msg, keys.Down):
		model.step(1)
	case key.Matches(msg, keys.Toggle):
		model.grabbed = !model.grabbed
	case key.Matches(msg, keys.Cancel):
		model.grabbed = false
	case key.Matches(msg, keys.Reset):
		board.Reset(model.ctx)
		model.grabbed = false
	}

	model.cursor = min(max(model.cursor, 0), board.Len()-1)
}

// step moves the cursor, carrying the widget along while grabbed.
func (model *Model) step(delta int) {
	to := model.cursor + delta
	if to < 0 || to >= model.deps.Board.Len() {
		return
	}
	if model.grabbed {
		model.deps.Board.Move(model.ctx, model.cursor, to)
	}
	model.cursor = to
}

func (model *Model) updateFocus(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, model.keys.Toggle):
		model.deps.Focus.Toggle()
	case key.Matches(msg, model.keys.Reset):
		model.deps.Focus.Reset()
	}
}

func (model *Model) updatePulse(msg tea.KeyMsg) {
	employees := model.deps.Pulse.Frame().Entities
	if len(employees) == 0 {
		return
	}

	switch {
	case key.Matches(msg, model.keys.Up):
		model.employee = (model.employee - 1 + len(employees)) % len(employees)
	case key.Matches(msg, model.keys.Down):
		model.employee = (model.employee + 1) % len(employees)
	case key.Matches(msg, model.keys.Cancel):
		model.deps.Pulse.Deselect()
		return
	default:
		return
	}

	model.employee = min(model.employee, len(employees)-1)
	model.deps.Pulse.Select(employees[model.employee].ID)
}

func (model Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, model.keys.Cancel):
		model.prompting = false
		model.input = nil

	case key.Matches(msg, model.keys.Submit):
		model.prompting = false
		cmd := model.submit(string(model.input))
		model.input = nil
		return model, cmd

	case key.Matches(msg, model.keys.Backspace):
		if len(model.input) > 0 {
			model.input = model.input[:len(model.input)-1]
		}

	case msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace:
		model.input = append(model.input, msg.Runes...)
		if msg.Type == tea.KeySpace && len(msg.Runes) == 0 {
			model.input = append(model.input, ' ')
		}
	}
	return model, nil
}

// submit hands a typed query to the assistant. The secret word shows the
// easter egg instead.
func (model *Model) submit(query string) tea.Cmd {
	if widgets.IsEasterEgg(query) {
		model.easterEggUntil = model.deps.Clock.Now().Add(widgets.EasterEggDuration)
		return nil
	}
	if !model.deps.Input.Submit(query) {
		return nil
	}

	a, ctx := model.deps.Assistant, model.ctx
	return func() tea.Msg {
		// A shown answer keeps the assistant listening until dismissed.
		a.Stop()
		reply, err := a.Listen(ctx)
		return replyMsg{reply: reply, err: err}
	}
}

func nextAccent(current preferences.AccentColor) preferences.AccentColor {
	for i, c := range preferences.AccentColors {
		if c == current {
			return preferences.AccentColors[(i+1)%len(preferences.AccentColors)]
		}
	}
	return preferences.AccentColors[0]
}

// Page returns the active page.
func (model Model) Page() Page {
	return model.page
}

// Cursor returns the dashboard cursor position and whether the widget under
// it is grabbed.
func (model Model) Cursor() (int, bool) {
	return model.cursor, model.grabbed
}

// EasterEggVisible reports whether the easter egg banner is up.
func (model Model) EasterEggVisible() bool {
	return model.deps.Clock.Now().Before(model.easterEggUntil)
}
