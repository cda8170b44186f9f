package harness

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletion_ResolveThenWait(t *testing.T) {
	c := NewCompletion[string]()
	require.NoError(t, c.Resolve("done"))

	got, err := c.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "done", got)
}

func TestCompletion_SettlesOnce(t *testing.T) {
	c := NewCompletion[int]()
	require.NoError(t, c.Resolve(1))

	assert.ErrorIs(t, c.Resolve(2), ErrAlreadyCompleted)
	assert.ErrorIs(t, c.Reject(errors.New("late")), ErrAlreadyCompleted)

	got, err := c.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestCompletion_Reject(t *testing.T) {
	c := NewCompletion[string]()
	boom := errors.New("emulator unreachable")
	require.NoError(t, c.Reject(boom))

	_, err := c.Wait(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestCompletion_ResolvedFromAnotherGoroutine(t *testing.T) {
	c := NewCompletion[string]()
	go func() {
		time.Sleep(10 * time.Millisecond)
		_ = c.Resolve("async")
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	got, err := c.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "async", got)

	select {
	case <-c.Done():
	default:
		t.Error("expected Done to be closed after settling")
	}
}

func TestCompletion_WaitDeadline(t *testing.T) {
	c := NewCompletion[string]()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
