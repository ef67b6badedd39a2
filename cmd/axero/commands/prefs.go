package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/dyluth/axero/internal/dashboard"
	"github.com/dyluth/axero/internal/preferences"
	"github.com/dyluth/axero/internal/printer"
	"github.com/spf13/cobra"
)

var prefsOutputFormat string

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show and change preferences",
	Long: `Show and change the saved preferences.

Fields:
  ` + strings.Join(preferences.Fields, "\n  ") + `

Examples:
  axero prefs show
  axero prefs set accent_color purple
  axero prefs set profile.email me@example.com
  axero prefs reset`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current preferences",
	Args:  cobra.NoArgs,
	RunE:  runPrefsShow,
}

var prefsSetCmd = &cobra.Command{
	Use:   "set FIELD VALUE",
	Short: "Change one preference",
	Args:  cobra.ExactArgs(2),
	RunE:  runPrefsSet,
}

var prefsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default preferences",
	Args:  cobra.NoArgs,
	RunE:  runPrefsReset,
}

func init() {
	prefsShowCmd.Flags().StringVarP(&prefsOutputFormat, "output", "o", "default", "Output format: default or jsonl")

	prefsCmd.AddCommand(prefsShowCmd, prefsSetCmd, prefsResetCmd)
	rootCmd.AddCommand(prefsCmd)
}

func openPrefs(ctx context.Context) (*preferences.Store, *session, error) {
	s, err := openSession(ctx)
	if err != nil {
		return nil, nil, err
	}
	store := preferences.NewStore(s.store)
	store.Load(ctx)
	return store, s, nil
}

func runPrefsShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	format, err := dashboard.ParseOutputFormat(prefsOutputFormat)
	if err != nil {
		return printer.Error("invalid output format", err.Error(), []string{"Valid formats: default, jsonl"})
	}

	store, s, err := openPrefs(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	p := store.Current()
	if format == dashboard.OutputFormatJSONL {
		return dashboard.FormatJSONL(printer.Stdout, []preferences.Preferences{p})
	}
	printPreferences(p)
	return nil
}

func runPrefsSet(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, s, err := openPrefs(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := store.Set(ctx, args[0], args[1])
	if err != nil {
		return printer.Error(
			"invalid preference",
			err.Error(),
			[]string{"See the accepted fields:\n  axero prefs --help"},
		)
	}

	printer.Success("Set %s\n\n", args[0])
	printPreferences(p)
	return nil
}

func runPrefsReset(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, s, err := openPrefs(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	p := store.Reset(ctx)
	printer.Success("Preferences reset\n\n")
	printPreferences(p)
	return nil
}

func printPreferences(p preferences.Preferences) {
	email := p.Profile.Email
	if email == "" {
		email = "-"
	}

	rows := [][2]string{
		{"dark_mode", fmt.Sprint(p.DarkMode)},
		{"dyslexic_font", fmt.Sprint(p.DyslexicFont)},
		{"accent_color", string(p.AccentColor)},
		{"profile.display_name", p.Profile.DisplayName},
		{"profile.email", email},
		{"landing_page", string(p.LandingPage)},
		{"notifications.desktop", fmt.Sprint(p.Notifications.Desktop)},
		{"notifications.sound", fmt.Sprint(p.Notifications.Sound)},
	}

	for _, row := range rows {
		if row[0] == "accent_color" {
			printer.Printf("%-22s ", row[0])
			printer.Accent(p.AccentColor.Hex(), "%s\n", row[1])
			continue
		}
		printer.Printf("%-22s %s\n", row[0], row[1])
	}
}
