package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dyluth/axero/internal/clock"
	"github.com/dyluth/axero/internal/dashboard"
	"github.com/dyluth/axero/internal/focus"
	"github.com/dyluth/axero/internal/printer"
	"github.com/spf13/cobra"
)

var focusDuration time.Duration

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Run a pomodoro countdown",
	Long: `Run a focus-mode countdown in the terminal. Ctrl+C abandons the session.

The default length comes from focus.duration in axero.yml (25m if unset).

Examples:
  axero focus
  axero focus --duration 50m`,
	Args: cobra.NoArgs,
	RunE: runFocus,
}

func init() {
	focusCmd.Flags().DurationVarP(&focusDuration, "duration", "d", 0, "Session length (overrides axero.yml)")
	rootCmd.AddCommand(focusCmd)
}

func runFocus(cmd *cobra.Command, args []string) error {
	d := focusDuration
	if d == 0 {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		d = cfg.Focus.Duration
	}
	if d < focus.Resolution {
		return printer.Error("invalid --duration", "A session must last at least one second.", nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runCountdown(ctx, clock.Real(), d)
}

// runCountdown redraws the timer once per resolution step until it
// completes or ctx is cancelled.
func runCountdown(ctx context.Context, clk clock.Clock, d time.Duration) error {
	done := make(chan struct{})
	timer := focus.NewTimer(clk, d, func() { close(done) })
	defer timer.Close()

	redraw := clk.NewTicker(focus.Resolution)
	defer redraw.Stop()

	draw := func() {
		printer.Printf("\r⏳ %s %s", focus.Format(timer.Remaining()), dashboard.ActivityBar(timer.Progress(), 20))
	}

	timer.Start()
	draw()

	for {
		select {
		case <-ctx.Done():
			printer.Println()
			printer.Warning("Focus session abandoned with %s left\n", focus.Format(timer.Remaining()))
			return nil
		case <-done:
			draw()
			printer.Println()
			printer.Success("%s %s\n", focus.CompleteTitle, focus.CompleteBody)
			return nil
		case <-redraw.C:
			draw()
		}
	}
}
