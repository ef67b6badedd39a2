package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dyluth/axero/internal/assistant"
	"github.com/dyluth/axero/internal/dashboard"
	"github.com/dyluth/axero/internal/executive"
	"github.com/dyluth/axero/internal/focus"
	"github.com/dyluth/axero/internal/preferences"
)

// feedPanelSize is how many feed entries the dashboard page lists.
const feedPanelSize = 5

// theme is the set of styles derived from the current preferences.
type theme struct {
	accent   lipgloss.Style
	normal   lipgloss.Style
	faint    lipgloss.Style
	selected lipgloss.Style
	banner   lipgloss.Style
	panel    lipgloss.Style
}

func newTheme(p preferences.Preferences) theme {
	accent := lipgloss.Color(p.AccentColor.Hex())

	text, faint := lipgloss.Color("252"), lipgloss.Color("243")
	if !p.DarkMode {
		text, faint = lipgloss.Color("235"), lipgloss.Color("245")
	}

	return theme{
		accent:   lipgloss.NewStyle().Foreground(accent).Bold(true),
		normal:   lipgloss.NewStyle().Foreground(text),
		faint:    lipgloss.NewStyle().Foreground(faint),
		selected: lipgloss.NewStyle().Foreground(accent).Reverse(true),
		banner:   lipgloss.NewStyle().Foreground(accent).Bold(true).Padding(0, 1),
		panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1),
	}
}

// View renders the active page with the header and help line.
func (model Model) View() string {
	th := newTheme(model.deps.Prefs.Current())

	var b strings.Builder
	b.WriteString(model.header(th))
	b.WriteString("\n\n")

	if model.EasterEggVisible() {
		b.WriteString(th.banner.Render("🎉 You found the easter egg! 🎉"))
		b.WriteString("\n\n")
	}
	if model.deps.Executive.PromotionVisible() {
		b.WriteString(th.banner.Render("👑 " + executive.PromotionBanner + " (enter to accept)"))
		b.WriteString("\n\n")
	}

	switch model.page {
	case PageDashboard:
		b.WriteString(model.viewDashboard(th))
	case PageFocus:
		b.WriteString(model.viewFocus(th))
	case PagePulse:
		b.WriteString(model.viewPulse(th))
	case PageAssistant:
		b.WriteString(model.viewAssistant(th))
	}

	b.WriteString("\n")
	if model.prompting {
		b.WriteString(th.accent.Render("ask> ") + string(model.input) + "█")
	} else {
		b.WriteString(th.faint.Render("1-4 pages • / ask • r read • c CEO • d dark • a accent • q quit"))
	}
	b.WriteString("\n")
	return b.String()
}

func (model Model) header(th theme) string {
	var tabs []string
	for i, name := range pageNames {
		label := fmt.Sprintf(" %d %s ", i+1, name)
		if Page(i) == model.page {
			tabs = append(tabs, th.selected.Render(label))
		} else {
			tabs = append(tabs, th.faint.Render(label))
		}
	}

	unread := 0
	for _, e := range model.deps.Feed.Entries() {
		if !e.Read {
			unread++
		}
	}

	user := model.deps.Prefs.Current().Profile.DisplayName
	return th.accent.Render("Axero") + "  " + strings.Join(tabs, "") +
		th.faint.Render(fmt.Sprintf("  🔔 %d  %s", unread, user))
}

func (model Model) viewDashboard(th theme) string {
	var b strings.Builder

	if model.deps.Executive.Active() {
		b.WriteString(th.accent.Render("CEO mode") + "  profit " +
			th.normal.Render(executive.FormatProfit(model.deps.Executive.Profit())) + "\n")
		var cards []string
		for _, m := range executive.Metrics {
			cards = append(cards, th.panel.Render(fmt.Sprintf("%s\n%s %s", m.Label, m.Value, m.Change)))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
		b.WriteString("\n\n")
	}

	for i, w := range model.deps.Board.Items() {
		marker := "  "
		if i == model.cursor {
			marker = "> "
			if model.grabbed {
				marker = "≡ "
			}
		}

		title := th.normal.Render(w.Title)
		if i == model.cursor {
			title = th.selected.Render(w.Title)
		}
		b.WriteString(marker + title + "\n")
		for _, line := range w.Body {
			b.WriteString("    " + th.faint.Render(line) + "\n")
		}
	}

	b.WriteString("\n" + th.accent.Render("Notifications") + "\n")
	entries := model.deps.Feed.Entries()
	if len(entries) == 0 {
		b.WriteString(th.faint.Render("  nothing yet") + "\n")
	}
	for i, e := range entries {
		if i == feedPanelSize {
			b.WriteString(th.faint.Render(fmt.Sprintf("  … %d more", len(entries)-feedPanelSize)) + "\n")
			break
		}
		state := "✓"
		if !e.Read {
			state = "●"
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n", state, th.normal.Render(e.Title), th.faint.Render(e.Description)))
	}

	return b.String()
}

func (model Model) viewFocus(th theme) string {
	t := model.deps.Focus

	var b strings.Builder
	b.WriteString(th.accent.Render("Focus Mode") + "\n\n")
	b.WriteString("  " + th.normal.Render(focus.Format(t.Remaining())) + "  " +
		dashboard.ActivityBar(t.Progress(), 20) + "\n\n")

	switch {
	case t.Remaining() == 0:
		b.WriteString("  " + th.accent.Render(focus.CompleteTitle) + " " + focus.CompleteBody + "\n")
	case t.Running():
		b.WriteString(th.faint.Render("  space pause • R reset") + "\n")
	default:
		b.WriteString(th.faint.Render("  space start • R reset") + "\n")
	}
	return b.String()
}

func (model Model) viewPulse(th theme) string {
	var b strings.Builder
	b.WriteString(th.accent.Render("Office Pulse") + "\n\n")

	var floor strings.Builder
	if err := model.deps.Pulse.Render(&floor); err != nil {
		b.WriteString(th.faint.Render("render failed: "+err.Error()) + "\n")
	} else {
		b.WriteString(floor.String())
	}

	if e, ok := model.deps.Pulse.Selected(); ok {
		b.WriteString("\n" + th.panel.Render(fmt.Sprintf("%s %s\n%s • %s\nactivity %s",
			e.Mood.Emoji(), e.Name, e.Department, e.Mood, dashboard.ActivityBar(e.ActivityLevel, 10))))
		b.WriteString("\n")
	} else {
		b.WriteString("\n" + th.faint.Render("j/k select an employee") + "\n")
	}
	return b.String()
}

func (model Model) viewAssistant(th theme) string {
	var b strings.Builder
	b.WriteString(th.accent.Render("Assistant") + "\n\n")

	a := model.deps.Assistant
	message := a.Message()
	if message == "" {
		b.WriteString(th.faint.Render("  press / and ask about the time, the weather or your schedule") + "\n")
		b.WriteString(th.faint.Render("  "+assistant.Fallback) + "\n")
		return b.String()
	}

	if transcript := a.Transcript(); transcript != "" {
		b.WriteString("  you: " + th.normal.Render(transcript) + "\n")
	}
	b.WriteString("  axero: " + th.accent.Render(message) + "\n")
	return b.String()
}
