package commands

import (
	"context"
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dyluth/axero/internal/assistant"
	"github.com/dyluth/axero/internal/clock"
	"github.com/dyluth/axero/internal/config"
	"github.com/dyluth/axero/internal/executive"
	"github.com/dyluth/axero/internal/feed"
	"github.com/dyluth/axero/internal/focus"
	"github.com/dyluth/axero/internal/preferences"
	"github.com/dyluth/axero/internal/pulse"
	"github.com/dyluth/axero/internal/roster"
	"github.com/dyluth/axero/internal/tui"
	"github.com/dyluth/axero/internal/watch"
	"github.com/dyluth/axero/internal/widgets"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive dashboard",
	Long: `Open the interactive dashboard.

With --store=local the feed and roster are simulated in this process.
With --store=redis they follow axero-simulator for --name, and settings,
widget order and "mark all read" are shared with every other terminal.

Keys:
  1-4 / tab  switch page          j/k    move (grabbed widgets move too)
  space      grab widget / start  R      reset order / timer
  r          mark all read        c      CEO mode
  d          dark mode            a      cycle accent color
  /          ask the assistant    q      quit`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	deps, err := buildDashboard(ctx, s, cfg, clock.Real())
	if err != nil {
		return err
	}
	defer deps.Focus.Close()
	defer deps.Executive.Deactivate()
	defer deps.Assistant.Close()

	// Timer and mirror logging would tear the alternate screen.
	log.SetOutput(io.Discard)

	program := tea.NewProgram(tui.NewModel(ctx, deps), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}

// buildDashboard wires the dashboard components. Background work stops when
// ctx is cancelled.
func buildDashboard(ctx context.Context, s *session, cfg *config.AxeroConfig, clk clock.Clock) (tui.Deps, error) {
	board, err := widgets.NewBoard(ctx, s.store)
	if err != nil {
		return tui.Deps{}, fmt.Errorf("failed to build widget board: %w", err)
	}

	prefs := preferences.NewStore(s.store)
	prefs.Load(ctx)

	input := assistant.NewTyped()
	deps := tui.Deps{
		Clock:     clk,
		Board:     board,
		Focus:     focus.NewTimer(clk, cfg.Focus.Duration, nil),
		Executive: executive.New(clk, nil),
		Prefs:     prefs,
		Assistant: assistant.New(clk, input, assistant.Options{}),
		Input:     input,
	}

	var source pulse.Source
	if s.client != nil {
		feedMirror := watch.NewFeedMirror(s.client, *cfg.Feed.MaxEntries)
		rosterMirror := watch.NewRosterMirror(s.client)
		go feedMirror.Run(ctx)
		go rosterMirror.Run(ctx)

		deps.Feed = feedMirror
		source = rosterMirror
	} else {
		local := feed.New(clk, *cfg.Feed.MaxEntries)
		scheduler := feed.NewScheduler(local, clk, feed.SchedulerConfig{
			MinInterval: cfg.Feed.MinInterval,
			MaxInterval: cfg.Feed.MaxInterval,
			Templates:   cfg.Feed.Templates,
		})
		scheduler.Start()
		context.AfterFunc(ctx, func() { scheduler.Stop() })

		r, err := roster.New(clk, cfg.Roster.RosterEmployees(), nil)
		if err != nil {
			return tui.Deps{}, err
		}
		go roster.NewTicker(r, clk, cfg.Roster.TickInterval, nil).Run(ctx)

		deps.Feed = local
		source = r
	}

	floor := pulse.NewFloorRenderer()
	deps.Pulse = pulse.NewView(source, floor, floor, clk.Now)
	return deps, nil
}
