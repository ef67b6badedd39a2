package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dyluth/axero/internal/dashboard"
	"github.com/dyluth/axero/internal/printer"
	"github.com/dyluth/axero/internal/widgets"
	"github.com/spf13/cobra"
)

var widgetsOutputFormat string

var widgetsCmd = &cobra.Command{
	Use:   "widgets",
	Short: "List and reorder dashboard widgets",
	Long: `List and reorder the dashboard widgets.

The order is saved in the selected store and restored by every later
command and by the dashboard. Positions are zero-based, as printed in the
POS column.

Examples:
  # Show the board in display order
  axero widgets list

  # Move the widget at position 0 to position 3
  axero widgets move 0 3

  # Restore the built-in order
  axero widgets reset`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var widgetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show widgets in display order",
	Args:  cobra.NoArgs,
	RunE:  runWidgetsList,
}

var widgetsMoveCmd = &cobra.Command{
	Use:   "move FROM TO",
	Short: "Move the widget at position FROM to position TO",
	Args:  cobra.ExactArgs(2),
	RunE:  runWidgetsMove,
}

var widgetsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the built-in widget order",
	Args:  cobra.NoArgs,
	RunE:  runWidgetsReset,
}

func init() {
	widgetsListCmd.Flags().StringVarP(&widgetsOutputFormat, "output", "o", "default", "Output format: default or jsonl")

	widgetsCmd.AddCommand(widgetsListCmd, widgetsMoveCmd, widgetsResetCmd)
	rootCmd.AddCommand(widgetsCmd)
}

func openBoard(ctx context.Context) (*widgets.Board, *session, error) {
	s, err := openSession(ctx)
	if err != nil {
		return nil, nil, err
	}
	board, err := widgets.NewBoard(ctx, s.store)
	if err != nil {
		s.Close()
		return nil, nil, fmt.Errorf("failed to build widget board: %w", err)
	}
	return board, s, nil
}

func runWidgetsList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	format, err := dashboard.ParseOutputFormat(widgetsOutputFormat)
	if err != nil {
		return printer.Error("invalid output format", err.Error(), []string{"Valid formats: default, jsonl"})
	}

	board, s, err := openBoard(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if format == dashboard.OutputFormatJSONL {
		return dashboard.FormatJSONL(printer.Stdout, board.Items())
	}
	dashboard.FormatWidgets(printer.Stdout, board.Items())
	return nil
}

func runWidgetsMove(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	board, s, err := openBoard(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	positions := make([]int, 2)
	for i, arg := range args {
		pos, err := strconv.Atoi(arg)
		if err != nil || pos < 0 || pos >= board.Len() {
			return printer.Error(
				"invalid position",
				fmt.Sprintf("%q is not a widget position", arg),
				[]string{fmt.Sprintf("Positions run from 0 to %d:\n  axero widgets list", board.Len()-1)},
			)
		}
		positions[i] = pos
	}

	moveWidget(ctx, board, positions[0], positions[1])
	return nil
}

// moveWidget moves one widget and reports the outcome. A failed save keeps
// the new order for this invocation only, so it is reported as a warning.
func moveWidget(ctx context.Context, board *widgets.Board, from, to int) {
	moving := board.Items()[from]

	moved, err := board.MoveAndSave(ctx, from, to)
	switch {
	case !moved:
		printer.Info("%s is already at position %d\n", moving.Title, to)
		return
	case err != nil:
		printer.Warning("Moved %s to position %d, but the new order was not saved: %v\n\n", moving.Title, to, err)
	default:
		printer.Success("Moved %s to position %d\n\n", moving.Title, to)
	}
	dashboard.FormatWidgets(printer.Stdout, board.Items())
}

func runWidgetsReset(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	board, s, err := openBoard(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	resetWidgets(ctx, board)
	return nil
}

func resetWidgets(ctx context.Context, board *widgets.Board) {
	if err := board.ResetAndSave(ctx); err != nil {
		printer.Warning("Widget order reset, but it was not saved: %v\n\n", err)
	} else {
		printer.Success("Widget order reset\n\n")
	}
	dashboard.FormatWidgets(printer.Stdout, board.Items())
}
