package server

import (
	"testing"
	"time"

	"github.com/rileyhilliard/botstat/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastWithoutClients(t *testing.T) {
	h := NewHub(nil)
	defer h.Stop()

	assert.NoError(t, h.Broadcast(Frame{Type: FrameDisplay, Timestamp: time.Now()}))
	assert.Zero(t, h.Clients())
}

func TestHub_StopIsIdempotent(t *testing.T) {
	h := NewHub(logger.Noop())
	h.Stop()
	assert.NotPanics(t, h.Stop)
	assert.NoError(t, h.Broadcast(Frame{Type: FrameError}))
	assert.False(t, h.attach("late", nil), "stopped hub refuses clients")
}

func TestHub_FullQueueDropsWithWarning(t *testing.T) {
	log := logger.NewBufferLogger()
	h := &Hub{
		clients:   map[string]*client{},
		broadcast: make(chan []byte),
		done:      make(chan struct{}),
		log:       log,
	}

	// No event loop is draining the queue.
	assert.NoError(t, h.Broadcast(Frame{Type: FrameDisplay}))
	require.True(t, log.HasLevel("warn"))
	assert.Contains(t, log.Messages[0].Message, "broadcast queue full")
}
