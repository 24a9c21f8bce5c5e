package sigctx

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithParent(t *testing.T) {
	t.Run("ParentCanceled", func(t *testing.T) {
		parent, cancel := context.WithCancel(t.Context())
		ctx, stop := WithParent(parent)
		defer stop()

		cancel()
		<-ctx.Done()
		assert.ErrorIs(t, ctx.Err(), context.Canceled)
	})

	t.Run("Signal", func(t *testing.T) {
		ctx, stop := WithParent(t.Context())
		defer stop()

		require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))

		select {
		case <-ctx.Done():
		case <-time.After(time.Second):
			t.Fatal("context is not canceled by SIGTERM")
		}
	})
}
