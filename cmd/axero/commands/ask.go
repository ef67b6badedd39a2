package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/dyluth/axero/internal/assistant"
	"github.com/dyluth/axero/internal/clock"
	"github.com/dyluth/axero/internal/printer"
	"github.com/dyluth/axero/internal/widgets"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask QUESTION...",
	Short: "Ask the assistant a question",
	Long: `Ask the office assistant a question and print its answer.

Examples:
  axero ask what time is it
  axero ask "what's on my schedule"
  axero ask tell me a joke`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	if widgets.IsEasterEgg(query) {
		printer.Success("🎉 You found the easter egg! 🎉\n")
		return nil
	}

	a := assistant.New(clock.Real(), assistant.Text(query), assistant.Options{})
	defer a.Close()

	reply, err := a.Listen(context.Background())
	if err != nil {
		return fmt.Errorf("assistant failed: %w", err)
	}

	printer.Printf("%s\n", a.Message())

	if reply.Intent == assistant.IntentFocus {
		printer.Faint("Start a session with:\n  axero focus\n")
	}
	return nil
}
