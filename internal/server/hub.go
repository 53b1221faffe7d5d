package server

import (
	"sync"

	"github.com/ayusman/poseplay/internal/game"
)

// Hub holds the latest rendered frame and game snapshot for spectators.
// The game loop publishes; HTTP handlers only read.
type Hub struct {
	mu      sync.RWMutex
	frame   []byte
	snap    game.Snapshot
	snapVer uint64
	version uint64
	changed chan struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{changed: make(chan struct{})}
}

// PublishFrame stores a copy of a JPEG-encoded frame and wakes waiting streams.
func (h *Hub) PublishFrame(jpeg []byte) {
	frame := make([]byte, len(jpeg))
	copy(frame, jpeg)

	h.mu.Lock()
	h.frame = frame
	h.version++
	close(h.changed)
	h.changed = make(chan struct{})
	h.mu.Unlock()
}

// PublishSnapshot stores the latest game snapshot.
func (h *Hub) PublishSnapshot(s game.Snapshot) {
	h.mu.Lock()
	h.snap = s
	h.snapVer++
	h.mu.Unlock()
}

// Frame returns the latest frame, its version and a channel closed on the
// next publish. The frame is nil until the first publish.
func (h *Hub) Frame() ([]byte, uint64, <-chan struct{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.frame, h.version, h.changed
}

// Snapshot returns the latest game snapshot and its version. Version 0
// means nothing was published yet.
func (h *Hub) Snapshot() (game.Snapshot, uint64) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snap, h.snapVer
}
