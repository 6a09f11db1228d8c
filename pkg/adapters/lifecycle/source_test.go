package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpad-app/inkpad/pkg/core"
)

func TestSourceBridgesEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan core.Event, 2)
	source := NewSource(in)
	require.NoError(t, source.Start(ctx))

	sent := core.Event{Type: core.EventCreate, ID: "note-1", Timestamp: time.Now().UnixMilli()}
	in <- sent

	select {
	case got := <-source.Events():
		assert.Equal(t, sent.String(), got.String())
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for bridged event")
	}
}

func TestSourceClosesWhenInputCloses(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan core.Event)
	source := NewSource(in)
	require.NoError(t, source.Start(ctx))

	close(in)

	select {
	case _, ok := <-source.Events():
		assert.False(t, ok, "output should close with the input")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for output to close")
	}
}

func TestSourceStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	in := make(chan core.Event)
	source := NewSource(in)
	require.NoError(t, source.Start(ctx))

	cancel()

	select {
	case _, ok := <-source.Events():
		assert.False(t, ok, "output should close on cancellation")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for output to close")
	}
}
