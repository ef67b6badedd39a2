package sqlitekv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dyluth/axero/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "state.db")

	store, err := Open(path)
	require.NoError(t, err)

	_, err = store.Get(ctx, "widget-order")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, store.Set(ctx, "widget-order", `["3","1","2"]`))
	require.NoError(t, store.Set(ctx, "widget-order", `["1","2","3"]`))

	value, err := store.Get(ctx, "widget-order")
	require.NoError(t, err)
	assert.Equal(t, `["1","2","3"]`, value)
	require.NoError(t, store.Close())

	t.Run("survives reopen", func(t *testing.T) {
		reopened, err := Open(path)
		require.NoError(t, err)
		defer reopened.Close()

		value, err := reopened.Get(ctx, "widget-order")
		require.NoError(t, err)
		assert.Equal(t, `["1","2","3"]`, value)
	})
}

func TestStoreImplementsPort(t *testing.T) {
	var _ kv.Store = (*Store)(nil)
}
