package scaffold

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dyluth/axero/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	t.Run("writes a config equal to the defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "axero.yml")
		require.NoError(t, Initialize(path, false))

		cfg, err := config.Load(path)
		require.NoError(t, err)

		def := config.Default()
		assert.Equal(t, def.Feed.MinInterval, cfg.Feed.MinInterval)
		assert.Equal(t, def.Feed.MaxInterval, cfg.Feed.MaxInterval)
		assert.Equal(t, *def.Feed.MaxEntries, *cfg.Feed.MaxEntries)
		assert.Equal(t, def.Roster.TickInterval, cfg.Roster.TickInterval)
		assert.Equal(t, 25*time.Minute, cfg.Focus.Duration)
		assert.Len(t, cfg.Roster.Employees, len(def.Roster.Employees))
	})

	t.Run("creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "axero.yml")
		require.NoError(t, Initialize(path, false))
		assert.FileExists(t, path)
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "axero.yml")
		require.NoError(t, os.WriteFile(path, []byte("version: \"1.0\"\n"), 0644))

		err := Initialize(path, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already initialized")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "version: \"1.0\"\n", string(data))
	})

	t.Run("force overwrites", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "axero.yml")
		require.NoError(t, os.WriteFile(path, []byte("garbage"), 0644))

		require.NoError(t, Initialize(path, true))

		want, err := Template()
		require.NoError(t, err)
		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestCheckExisting(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		setup   func(path string)
		wantErr string
	}{
		{
			name: "no existing file",
			path: filepath.Join(dir, "missing.yml"),
		},
		{
			name: "existing file",
			path: filepath.Join(dir, "existing.yml"),
			setup: func(path string) {
				require.NoError(t, os.WriteFile(path, []byte("version: \"1.0\"\n"), 0644))
			},
			wantErr: "existing.yml",
		},
		{
			name: "directory in the way",
			path: filepath.Join(dir, "adir"),
			setup: func(path string) {
				require.NoError(t, os.Mkdir(path, 0755))
			},
			wantErr: "is a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup(tt.path)
			}
			err := CheckExisting(tt.path)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
