package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dyluth/axero/internal/feed"
	"github.com/dyluth/axero/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "axero.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `version: "1.0"
feed:
  min_interval: 5s
  max_interval: 10s
  max_entries: 0
  templates:
    - title: "Deploy finished"
      description: "v2.3.1 is live"
roster:
  tick_interval: 1s
  employees:
    - id: "a"
      name: "Ada"
      department: engineering
      position: {x: 1, y: 0, z: -2}
      mood: thinking
      activity: 0.7
focus:
  duration: 50m
`)

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0", config.Version)
	assert.Equal(t, 5*time.Second, config.Feed.MinInterval)
	assert.Equal(t, 10*time.Second, config.Feed.MaxInterval)
	assert.Equal(t, 0, *config.Feed.MaxEntries)
	assert.Equal(t, []feed.Template{{Title: "Deploy finished", Description: "v2.3.1 is live"}}, config.Feed.Templates)
	assert.Equal(t, time.Second, config.Roster.TickInterval)
	require.Len(t, config.Roster.Employees, 1)

	employees := config.Roster.RosterEmployees()
	assert.Equal(t, "Ada", employees[0].Name)
	assert.Equal(t, -2.0, employees[0].Position.Z)
	assert.Equal(t, 0.7, employees[0].ActivityLevel)
	assert.Equal(t, 50*time.Minute, config.Focus.Duration)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	config, err := Load(writeConfig(t, `version: "1.0"`))
	require.NoError(t, err)

	assert.Equal(t, feed.DefaultMinInterval, config.Feed.MinInterval)
	assert.Equal(t, feed.DefaultMaxInterval, config.Feed.MaxInterval)
	assert.Equal(t, feed.DefaultMaxEntries, *config.Feed.MaxEntries)
	assert.Equal(t, feed.DefaultTemplates, config.Feed.Templates)
	assert.Equal(t, roster.DefaultTickInterval, config.Roster.TickInterval)
	assert.Equal(t, roster.DefaultEmployees(), config.Roster.RosterEmployees())
	assert.Equal(t, 25*time.Minute, config.Focus.Duration)
}

func TestLoad_FileNotFound(t *testing.T) {
	config, err := Load("/nonexistent/axero.yml")
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoadOrDefault(t *testing.T) {
	config, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), config)

	_, err = LoadOrDefault(writeConfig(t, `version: "9"`))
	assert.ErrorContains(t, err, "unsupported version")
}

func TestLoad_InvalidYAML(t *testing.T) {
	config, err := Load(writeConfig(t, "version: \"1.0\"\nfeed:\n  - this is invalid\n    yaml syntax\n"))
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidate(t *testing.T) {
	negative := -1

	tests := []struct {
		name    string
		config  AxeroConfig
		wantErr string
	}{
		{"unsupported version", AxeroConfig{Version: "2.0"}, "unsupported version: 2.0"},
		{"missing version", AxeroConfig{}, "unsupported version"},
		{
			"inverted feed interval",
			AxeroConfig{Version: "1.0", Feed: &FeedConfig{MinInterval: time.Minute, MaxInterval: time.Second}},
			"feed.max_interval",
		},
		{
			"negative min interval",
			AxeroConfig{Version: "1.0", Feed: &FeedConfig{MinInterval: -time.Second}},
			"feed.min_interval must be positive",
		},
		{
			"negative max entries",
			AxeroConfig{Version: "1.0", Feed: &FeedConfig{MaxEntries: &negative}},
			"feed.max_entries must be >= 0",
		},
		{
			"template without title",
			AxeroConfig{Version: "1.0", Feed: &FeedConfig{Templates: []feed.Template{{Description: "x"}}}},
			"feed.templates[0]: title is required",
		},
		{
			"negative tick",
			AxeroConfig{Version: "1.0", Roster: &RosterConfig{TickInterval: -time.Second}},
			"roster.tick_interval must be positive",
		},
		{
			"duplicate employee",
			AxeroConfig{Version: "1.0", Roster: &RosterConfig{Employees: []Employee{
				{ID: "1", Name: "A", Department: "sales", Mood: "cool", Activity: 0.5},
				{ID: "1", Name: "B", Department: "sales", Mood: "cool", Activity: 0.5},
			}}},
			"duplicate employee ID",
		},
		{
			"unknown department",
			AxeroConfig{Version: "1.0", Roster: &RosterConfig{Employees: []Employee{
				{ID: "1", Name: "A", Department: "legal", Mood: "cool", Activity: 0.5},
			}}},
			"unknown department",
		},
		{
			"activity out of range",
			AxeroConfig{Version: "1.0", Roster: &RosterConfig{Employees: []Employee{
				{ID: "1", Name: "A", Department: "hr", Mood: "happy", Activity: 1.5},
			}}},
			"activity level",
		},
		{
			"focus too short",
			AxeroConfig{Version: "1.0", Focus: &FocusConfig{Duration: time.Millisecond}},
			"focus.duration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := tt.config
			err := config.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefault(t *testing.T) {
	config := Default()
	require.NoError(t, config.Validate(), "defaults are stable under revalidation")
	assert.Len(t, config.Roster.Employees, 6)
}
