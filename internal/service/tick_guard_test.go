package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickGuard_DropsOverlappingTick(t *testing.T) {
	g := newTickGuard()

	require.True(t, g.tryEnter())
	assert.False(t, g.tryEnter(), "second tick must be dropped")

	g.leave()
	require.True(t, g.tryEnter())
	g.leave()
}

func TestTickGuard_WaitForRunningTick(t *testing.T) {
	g := newTickGuard()
	require.True(t, g.tryEnter())

	done := make(chan struct{})
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		g.wait(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("wait returned while a tick was running")
	default:
	}
	g.leave()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("wait did not return after the tick ended")
	}
	assert.True(t, g.tryEnter(), "wait must not keep the guard")
}

func TestTickGuard_WaitHonoursContext(t *testing.T) {
	g := newTickGuard()
	require.True(t, g.tryEnter())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	g.wait(ctx)
	assert.Error(t, ctx.Err())
}
