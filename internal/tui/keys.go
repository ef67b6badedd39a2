package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the dashboard TUI.
type KeyMap struct {
	// Navigation (page-sensitive: widget cursor on the dashboard,
	// employee selection on the pulse page).
	Up   key.Binding
	Down key.Binding

	// Page switching.
	PageDashboard key.Binding
	PageFocus     key.Binding
	PagePulse     key.Binding
	PageAssistant key.Binding
	NextPage      key.Binding

	// Toggle grabs or drops a widget on the dashboard and starts or
	// pauses the countdown on the focus page.
	Toggle key.Binding
	// Reset restores the declared widget order or the full countdown.
	Reset key.Binding

	MarkRead  key.Binding
	CEO       key.Binding
	Accept    key.Binding // Accept the promotion banner.
	DarkMode  key.Binding
	Accent    key.Binding // Cycle the accent color.
	Prompt    key.Binding // Open the assistant prompt.
	Cancel    key.Binding // Close the prompt, drop a grab, clear a selection.
	Submit    key.Binding
	Backspace key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside the arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageDashboard: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "dashboard"),
	),
	PageFocus: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "focus"),
	),
	PagePulse: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "pulse"),
	),
	PageAssistant: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "assistant"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next page"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "grab/start"),
	),
	Reset: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "reset"),
	),
	MarkRead: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "mark all read"),
	),
	CEO: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "CEO mode"),
	),
	Accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "accept"),
	),
	DarkMode: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "dark mode"),
	),
	Accent: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "accent"),
	),
	Prompt: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "ask"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Backspace: key.NewBinding(
		key.WithKeys("backspace"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
