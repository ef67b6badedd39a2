package preferences

import (
	"context"
	"errors"
	"testing"

	"github.com/dyluth/axero/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct{ sets int }

func (b *brokenStore) Get(context.Context, string) (string, error) {
	return "", errors.New("disk on fire")
}

func (b *brokenStore) Set(context.Context, string, string) error {
	b.sets++
	return errors.New("disk on fire")
}

func TestDefault(t *testing.T) {
	p := Default()
	require.NoError(t, p.Validate())
	assert.True(t, p.DarkMode)
	assert.False(t, p.DyslexicFont)
	assert.Equal(t, AccentCyan, p.AccentColor)
	assert.Equal(t, LandingDashboard, p.LandingPage)
	assert.True(t, p.Notifications.Desktop)
	assert.False(t, p.Notifications.Sound)
}

func TestAccentHex(t *testing.T) {
	assert.Equal(t, "#06b6d4", AccentCyan.Hex())
	assert.Equal(t, "#8b5cf6", AccentPurple.Hex())
	assert.Equal(t, "#ec4899", AccentPink.Hex())
	assert.Equal(t, "#10b981", AccentGreen.Hex())
	assert.Equal(t, "#f97316", AccentOrange.Hex())
	assert.Equal(t, "", AccentColor("teal").Hex())
}

func TestDecode(t *testing.T) {
	t.Run("full record", func(t *testing.T) {
		p, ok := Decode(`{"dark_mode":false,"dyslexic_font":true,"accent_color":"pink",
			"profile":{"display_name":"Sam","email":"sam@example.com"},
			"landing_page":"pulse","notifications":{"desktop":false,"sound":true}}`)
		require.True(t, ok)
		assert.False(t, p.DarkMode)
		assert.True(t, p.DyslexicFont)
		assert.Equal(t, AccentPink, p.AccentColor)
		assert.Equal(t, "sam@example.com", p.Profile.Email)
		assert.Equal(t, LandingPulse, p.LandingPage)
		assert.True(t, p.Notifications.Sound)
	})

	t.Run("partial record keeps defaults", func(t *testing.T) {
		p, ok := Decode(`{"accent_color":"green"}`)
		require.True(t, ok)
		assert.Equal(t, AccentGreen, p.AccentColor)
		assert.True(t, p.DarkMode)
		assert.Equal(t, "Axero User", p.Profile.DisplayName)
	})

	for name, raw := range map[string]string{
		"not json":        "{{{",
		"wrong type":      `{"dark_mode":"yes"}`,
		"unknown accent":  `{"accent_color":"teal"}`,
		"unknown landing": `{"landing_page":"inbox"}`,
		"bad email":       `{"profile":{"display_name":"x","email":"nope"}}`,
		"blank name":      `{"profile":{"display_name":"  "}}`,
	} {
		t.Run(name, func(t *testing.T) {
			p, ok := Decode(raw)
			assert.False(t, ok)
			assert.Equal(t, Default(), p)
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		field, value string
		check        func(t *testing.T, p Preferences)
		wantErr      string
	}{
		{"dark_mode", "false", func(t *testing.T, p Preferences) { assert.False(t, p.DarkMode) }, ""},
		{"dyslexic_font", "true", func(t *testing.T, p Preferences) { assert.True(t, p.DyslexicFont) }, ""},
		{"accent_color", "Orange", func(t *testing.T, p Preferences) { assert.Equal(t, AccentOrange, p.AccentColor) }, ""},
		{"profile.display_name", "Jo", func(t *testing.T, p Preferences) { assert.Equal(t, "Jo", p.Profile.DisplayName) }, ""},
		{"profile.email", "jo@example.com", func(t *testing.T, p Preferences) { assert.Equal(t, "jo@example.com", p.Profile.Email) }, ""},
		{"landing_page", "focus", func(t *testing.T, p Preferences) { assert.Equal(t, LandingFocus, p.LandingPage) }, ""},
		{"notifications.desktop", "0", func(t *testing.T, p Preferences) { assert.False(t, p.Notifications.Desktop) }, ""},
		{"notifications.sound", "1", func(t *testing.T, p Preferences) { assert.True(t, p.Notifications.Sound) }, ""},
		{"dark_mode", "maybe", nil, "must be true or false"},
		{"accent_color", "teal", nil, "unknown accent color"},
		{"landing_page", "inbox", nil, "unknown landing page"},
		{"profile.email", "not-an-email", nil, "invalid profile email"},
		{"font_size", "12", nil, "unknown preference"},
	}

	for _, tt := range tests {
		t.Run(tt.field+"="+tt.value, func(t *testing.T) {
			p, err := Apply(Default(), tt.field, tt.value)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("load tolerates absence", func(t *testing.T) {
		s := NewStore(kv.NewMemory())
		assert.Equal(t, Default(), s.Load(ctx))
	})

	t.Run("load tolerates corruption", func(t *testing.T) {
		backend := kv.NewMemory()
		require.NoError(t, backend.Set(ctx, Key, "garbage"))
		s := NewStore(backend)
		assert.Equal(t, Default(), s.Load(ctx))
	})

	t.Run("update replaces wholesale and persists", func(t *testing.T) {
		backend := kv.NewMemory()
		s := NewStore(backend)
		s.Load(ctx)

		before := s.Current()
		after, err := s.Update(ctx, func(p Preferences) Preferences {
			p.DarkMode = false
			p.AccentColor = AccentPurple
			return p
		})
		require.NoError(t, err)
		assert.True(t, before.DarkMode, "earlier snapshot is unchanged")
		assert.Equal(t, after, s.Current())

		reloaded := NewStore(backend)
		assert.Equal(t, after, reloaded.Load(ctx))
	})

	t.Run("invalid update is rejected", func(t *testing.T) {
		backend := kv.NewMemory()
		s := NewStore(backend)
		_, err := s.Update(ctx, func(p Preferences) Preferences {
			p.AccentColor = "teal"
			return p
		})
		assert.Error(t, err)
		assert.Equal(t, Default(), s.Current())

		_, err = backend.Get(ctx, Key)
		assert.ErrorIs(t, err, kv.ErrNotFound)
	})

	t.Run("set and reset", func(t *testing.T) {
		backend := kv.NewMemory()
		s := NewStore(backend)
		p, err := s.Set(ctx, "landing_page", "assistant")
		require.NoError(t, err)
		assert.Equal(t, LandingAssistant, p.LandingPage)

		_, err = s.Set(ctx, "landing_page", "nowhere")
		assert.Error(t, err)
		assert.Equal(t, LandingAssistant, s.Current().LandingPage)

		assert.Equal(t, Default(), s.Reset(ctx))
		raw, err := backend.Get(ctx, Key)
		require.NoError(t, err)
		decoded, ok := Decode(raw)
		require.True(t, ok)
		assert.Equal(t, Default(), decoded)
	})

	t.Run("storage failures are swallowed", func(t *testing.T) {
		backend := &brokenStore{}
		s := NewStore(backend)
		assert.Equal(t, Default(), s.Load(ctx))

		p, err := s.Update(ctx, func(p Preferences) Preferences {
			p.DyslexicFont = true
			return p
		})
		require.NoError(t, err)
		assert.True(t, p.DyslexicFont)
		assert.Equal(t, 1, backend.sets)
	})
}
