package core

import (
	"context"

	"github.com/chainbridge-labs/xcmq/pkg/xcmq/definition"
	"github.com/chainbridge-labs/xcmq/pkg/xcmq/types"
)

// fakeChannelInfo is a hand-written fake of types.ChannelInfo: each
// peer's status and max message size are set up directly by the test,
// with an absent peer reporting a closed channel.
type fakeChannelInfo struct {
	maxMessage map[types.PeerId]uint32
	status     map[types.PeerId]types.ChannelStatus
}

func newFakeChannelInfo() *fakeChannelInfo {
	return &fakeChannelInfo{
		maxMessage: make(map[types.PeerId]uint32),
		status:     make(map[types.PeerId]types.ChannelStatus),
	}
}

func (f *fakeChannelInfo) withPeer(peer types.PeerId, maxMessageSize uint32, maxNow, maxEver uint32) *fakeChannelInfo {
	f.maxMessage[peer] = maxMessageSize
	f.status[peer] = types.ChannelStatus{Kind: types.ChannelReady, MaxSizeNow: maxNow, MaxSizeEver: maxEver}
	return f
}

func (f *fakeChannelInfo) MaxMessageSize(peer types.PeerId) (uint32, bool) {
	v, ok := f.maxMessage[peer]
	return v, ok
}

func (f *fakeChannelInfo) Status(peer types.PeerId) types.ChannelStatus {
	if s, ok := f.status[peer]; ok {
		return s
	}
	return types.ChannelStatus{Kind: types.ChannelClosed}
}

// fakeExecutor scripts a fixed sequence of outcomes per call, in call
// order, ignoring the message content. Once the script runs out, it
// keeps repeating the last outcome, standing in for a real executor
// that keeps refusing the same fragment while its weight cap stays
// insufficient, rather than silently starting to accept it.
type fakeExecutor struct {
	outcomes []types.ExecutionOutcome
	calls    [][]byte
}

func (f *fakeExecutor) Execute(_ context.Context, _ types.PeerId, message []byte, weightCap uint64) types.ExecutionOutcome {
	f.calls = append(f.calls, append([]byte(nil), message...))
	if len(f.outcomes) == 0 {
		return types.ExecutionOutcome{Kind: types.OutcomeComplete}
	}
	next := f.outcomes[0]
	if len(f.outcomes) > 1 {
		f.outcomes = f.outcomes[1:]
	}
	return next
}

func newTestLogger() types.Logger {
	return definition.NewDefaultLogger("test")
}
