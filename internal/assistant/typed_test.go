package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/dyluth/axero/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	got, err := Text("what time is it").Recognize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "what time is it", got)

	_, err = Text("   ").Recognize(context.Background())
	assert.ErrorIs(t, err, ErrNothingHeard)
}

func TestTyped(t *testing.T) {
	t.Run("one line per recognition", func(t *testing.T) {
		typed := NewTyped()
		require.True(t, typed.Submit("hello"))
		assert.False(t, typed.Submit("second"))

		got, err := typed.Recognize(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "hello", got)
	})

	t.Run("waits for input until cancelled", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := NewTyped().Recognize(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("blank line shows the retry message", func(t *testing.T) {
		clk := clock.Fake(time.Unix(0, 0))
		typed := NewTyped()
		a := New(clk, typed, Options{})
		defer a.Close()

		typed.Submit("")
		reply, err := a.Listen(context.Background())
		require.NoError(t, err)
		assert.Empty(t, reply.Answer)
		assert.Equal(t, RetryMessage, a.Message())

		clk.Advance(ErrorDisplay)
		assert.Empty(t, a.Message())
	})
}
