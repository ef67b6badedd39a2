package commands

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/dyluth/axero/internal/dashboard"
	"github.com/dyluth/axero/internal/printer"
	"github.com/dyluth/axero/internal/pulse"
	"github.com/dyluth/axero/internal/watch"
	"github.com/dyluth/axero/pkg/workspace"
	"github.com/spf13/cobra"
)

var (
	rosterWait time.Duration
	rosterMap  bool
	rosterPick string
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Show the simulated office roster",
	Long: `Show the latest roster snapshot published by axero-simulator.

With --map the office floor is drawn as a grid, one marker per employee.
--pick selects the employee nearest a floor point (x,z in [-4,4]).

Examples:
  axero roster
  axero roster --map
  axero roster --map --pick 2,1`,
	Args: cobra.NoArgs,
	RunE: runRoster,
}

func init() {
	rosterCmd.Flags().DurationVar(&rosterWait, "wait", 5*time.Second, "How long to wait for the simulator to publish a roster")
	rosterCmd.Flags().BoolVar(&rosterMap, "map", false, "Draw the office floor")
	rosterCmd.Flags().StringVar(&rosterPick, "pick", "", "Select the employee at floor point x,z")
	rootCmd.AddCommand(rosterCmd)
}

// snapshotSource adapts a fixed snapshot to pulse.Source.
type snapshotSource struct {
	snapshot workspace.RosterSnapshot
}

func (s snapshotSource) Snapshot() workspace.RosterSnapshot { return s.snapshot }

func runRoster(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := connectRedis(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	snapshot, err := watch.PollForRoster(ctx, client, rosterWait)
	if err != nil {
		return printer.Error(
			"no roster available",
			err.Error(),
			[]string{"Start the simulator for this instance:\n  AXERO_INSTANCE_NAME=" + instanceName + " axero-simulator"},
		)
	}

	now := time.Now()
	if !rosterMap {
		dashboard.FormatRoster(printer.Stdout, *snapshot, now)
		return nil
	}

	floor := pulse.NewFloorRenderer()
	view := pulse.NewView(snapshotSource{snapshot: *snapshot}, floor, floor, func() time.Time { return now })
	if err := view.Render(printer.Stdout); err != nil {
		return err
	}

	if rosterPick == "" {
		return nil
	}

	x, z, ok := parsePoint(rosterPick)
	if !ok {
		return printer.Error("invalid --pick", "Expected x,z such as 2,1 or -1.5,0", nil)
	}
	e, ok := view.Click(x, z)
	if !ok {
		printer.Faint("\nNobody at %s\n", rosterPick)
		return nil
	}
	printer.Printf("\n%s %s, %s, %s, activity %s\n",
		e.Mood.Emoji(), e.Name, e.Department, e.Mood, dashboard.ActivityBar(e.ActivityLevel, 10))
	return nil
}

func parsePoint(s string) (float64, float64, bool) {
	xs, zs, found := strings.Cut(s, ",")
	if !found {
		return 0, 0, false
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	z, errZ := strconv.ParseFloat(strings.TrimSpace(zs), 64)
	return x, z, errX == nil && errZ == nil
}
