package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dyluth/axero/internal/feed"
	"github.com/dyluth/axero/internal/focus"
	"github.com/dyluth/axero/internal/roster"
	"github.com/dyluth/axero/pkg/workspace"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI and simulator look for configuration.
const DefaultPath = "axero.yml"

// FeedConfig tunes the notification simulator
type FeedConfig struct {
	MinInterval time.Duration   `yaml:"min_interval,omitempty"` // Shortest gap between entries (default 20s)
	MaxInterval time.Duration   `yaml:"max_interval,omitempty"` // Longest gap between entries (default 60s)
	MaxEntries  *int            `yaml:"max_entries,omitempty"`  // Retention cap (0 = unbounded, default = 50)
	Templates   []feed.Template `yaml:"templates,omitempty"`    // Notification pool (default: built-in pool)
}

// RosterConfig tunes the employee activity simulator
type RosterConfig struct {
	TickInterval time.Duration `yaml:"tick_interval,omitempty"` // Default 4s
	Employees    []Employee    `yaml:"employees,omitempty"`     // Default: built-in office
}

// Employee is the YAML form of a roster member
type Employee struct {
	ID         string             `yaml:"id"`
	Name       string             `yaml:"name"`
	Department string             `yaml:"department"`
	Position   workspace.Position `yaml:"position"`
	Mood       string             `yaml:"mood"`
	Activity   float64            `yaml:"activity"`
}

// FocusConfig tunes the pomodoro timer
type FocusConfig struct {
	Duration time.Duration `yaml:"duration,omitempty"` // Default 25m
}

// AxeroConfig represents the top-level axero.yml configuration
type AxeroConfig struct {
	Version string        `yaml:"version"`
	Feed    *FeedConfig   `yaml:"feed,omitempty"`
	Roster  *RosterConfig `yaml:"roster,omitempty"`
	Focus   *FocusConfig  `yaml:"focus,omitempty"`
}

// Default returns a validated configuration with every default applied.
func Default() *AxeroConfig {
	c := &AxeroConfig{Version: "1.0"}
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("default configuration is invalid: %v", err))
	}
	return c
}

// Validate performs strict validation and fills in defaults for omitted sections
func (c *AxeroConfig) Validate() error {
	// Required: version
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	if c.Feed == nil {
		c.Feed = &FeedConfig{}
	}
	if err := c.Feed.validate(); err != nil {
		return err
	}

	if c.Roster == nil {
		c.Roster = &RosterConfig{}
	}
	if err := c.Roster.validate(); err != nil {
		return err
	}

	if c.Focus == nil {
		c.Focus = &FocusConfig{}
	}
	if c.Focus.Duration == 0 {
		c.Focus.Duration = focus.DefaultDuration
	}
	if c.Focus.Duration < focus.Resolution {
		return fmt.Errorf("focus.duration must be at least %s, got %s", focus.Resolution, c.Focus.Duration)
	}

	return nil
}

func (f *FeedConfig) validate() error {
	if f.MinInterval == 0 {
		f.MinInterval = feed.DefaultMinInterval
	}
	if f.MaxInterval == 0 {
		f.MaxInterval = feed.DefaultMaxInterval
	}
	if f.MinInterval < 0 {
		return fmt.Errorf("feed.min_interval must be positive, got %s", f.MinInterval)
	}
	if f.MaxInterval < f.MinInterval {
		return fmt.Errorf("feed.max_interval (%s) must be >= feed.min_interval (%s)", f.MaxInterval, f.MinInterval)
	}

	if f.MaxEntries == nil {
		defaultMax := feed.DefaultMaxEntries
		f.MaxEntries = &defaultMax
	}
	if *f.MaxEntries < 0 {
		return fmt.Errorf("feed.max_entries must be >= 0 (0 = unbounded), got %d", *f.MaxEntries)
	}

	if len(f.Templates) == 0 {
		f.Templates = append([]feed.Template(nil), feed.DefaultTemplates...)
	}
	for i, t := range f.Templates {
		if t.Title == "" {
			return fmt.Errorf("feed.templates[%d]: title is required", i)
		}
	}

	return nil
}

func (r *RosterConfig) validate() error {
	if r.TickInterval == 0 {
		r.TickInterval = roster.DefaultTickInterval
	}
	if r.TickInterval < 0 {
		return fmt.Errorf("roster.tick_interval must be positive, got %s", r.TickInterval)
	}

	if len(r.Employees) == 0 {
		for _, e := range roster.DefaultEmployees() {
			r.Employees = append(r.Employees, Employee{
				ID:         e.ID,
				Name:       e.Name,
				Department: string(e.Department),
				Position:   e.Position,
				Mood:       string(e.Mood),
				Activity:   e.ActivityLevel,
			})
		}
	}

	snapshot := workspace.RosterSnapshot{Employees: r.RosterEmployees()}
	if err := snapshot.Validate(); err != nil {
		return fmt.Errorf("roster.employees: %w", err)
	}

	return nil
}

// RosterEmployees converts the configured employees to workspace form.
func (r *RosterConfig) RosterEmployees() []workspace.Employee {
	out := make([]workspace.Employee, len(r.Employees))
	for i, e := range r.Employees {
		out[i] = workspace.Employee{
			ID:            e.ID,
			Name:          e.Name,
			Department:    workspace.Department(e.Department),
			Position:      e.Position,
			Mood:          workspace.Mood(e.Mood),
			ActivityLevel: e.Activity,
		}
	}
	return out
}

// Load reads and validates axero.yml from the specified path
func Load(path string) (*AxeroConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config AxeroConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadOrDefault is Load, except that a missing file yields Default().
func LoadOrDefault(path string) (*AxeroConfig, error) {
	config, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return config, err
}
