package fuzzy

import (
	"context"
	"sync"

	"github.com/chainbridge-labs/xcmq/pkg/xcmq"
)

// openChannel is a ChannelInfo stand-in that reports every peer as an
// always-open channel with a generous size budget, unless overridden
// in closed.
type openChannel struct {
	maxMessage  uint32
	maxSizeNow  uint32
	maxSizeEver uint32

	mu     sync.Mutex
	closed map[xcmq.PeerId]bool
}

func newOpenChannel() *openChannel {
	return &openChannel{
		maxMessage:  4096,
		maxSizeNow:  65536,
		maxSizeEver: 65536,
		closed:      make(map[xcmq.PeerId]bool),
	}
}

func (c *openChannel) close(peer xcmq.PeerId) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed[peer] = true
}

func (c *openChannel) MaxMessageSize(xcmq.PeerId) (uint32, bool) {
	return c.maxMessage, true
}

func (c *openChannel) Status(peer xcmq.PeerId) xcmq.ChannelStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed[peer] {
		return xcmq.ChannelStatus{Kind: xcmq.ChannelClosed}
	}
	return xcmq.ChannelStatus{Kind: xcmq.ChannelReady, MaxSizeNow: c.maxSizeNow, MaxSizeEver: c.maxSizeEver}
}

// recordingExecutor completes every fragment immediately and keeps a
// copy of everything it was handed, keyed by the sending peer.
type recordingExecutor struct {
	mu       sync.Mutex
	received map[xcmq.PeerId][][]byte
}

func newRecordingExecutor() *recordingExecutor {
	return &recordingExecutor{received: make(map[xcmq.PeerId][][]byte)}
}

func (e *recordingExecutor) Execute(_ context.Context, origin xcmq.PeerId, message []byte, _ uint64) xcmq.ExecutionOutcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.received[origin] = append(e.received[origin], append([]byte(nil), message...))
	return xcmq.ExecutionOutcome{Kind: xcmq.OutcomeComplete, WeightUsed: 1}
}

func (e *recordingExecutor) messagesFrom(peer xcmq.PeerId) [][]byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.received[peer]
}
