package persist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTask(t *testing.T) {
	t.Run("pending task", func(t *testing.T) {
		task := newTask()
		assert.NoError(t, task.Err())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, task.Wait(ctx), context.Canceled)
	})

	t.Run("completed with error", func(t *testing.T) {
		task := Completed(ErrNotReady)
		assert.ErrorIs(t, task.Wait(context.Background()), ErrNotReady)
		assert.ErrorIs(t, task.Err(), ErrNotReady)
		assert.False(t, task.Superseded())
	})

	t.Run("finish unblocks waiters", func(t *testing.T) {
		task := newTask()
		boom := errors.New("boom")
		go task.finish(boom, false)
		assert.ErrorIs(t, task.Wait(context.Background()), boom)
	})
}
