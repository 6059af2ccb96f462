package types

import "context"

// ChannelStatusKind is the coarse state a peer's outbound channel can
// report, as returned by ChannelInfo.Status.
type ChannelStatusKind byte

const (
	ChannelClosed ChannelStatusKind = iota
	ChannelFull
	ChannelReady
)

// ChannelStatus describes a peer's readiness to accept an outbound
// page right now.
type ChannelStatus struct {
	Kind ChannelStatusKind

	// MaxSizeNow is the largest page the peer will currently accept.
	// Only meaningful when Kind == ChannelReady.
	MaxSizeNow uint32

	// MaxSizeEver is the hard cap the channel has ever advertised;
	// used to detect a page packed under a looser limit that has
	// since shrunk.
	MaxSizeEver uint32
}

// ChannelInfo reports per-peer channel metadata. It is an external
// collaborator: this engine never decides these values itself.
type ChannelInfo interface {
	// MaxMessageSize returns the largest single fragment the peer's
	// channel will accept, or ok=false if the peer is unknown.
	MaxMessageSize(peer PeerId) (size uint32, ok bool)

	// Status reports whether the channel is closed, full, or ready
	// to accept a page right now.
	Status(peer PeerId) ChannelStatus
}

// ExecutionOutcomeKind classifies the result of handing a fragment to
// the Executor.
type ExecutionOutcomeKind byte

const (
	OutcomeComplete ExecutionOutcomeKind = iota
	OutcomeIncomplete
	OutcomeError
)

// ExecutionOutcome is the Executor's verdict on one dispatched
// fragment.
type ExecutionOutcome struct {
	Kind       ExecutionOutcomeKind
	WeightUsed uint64
	Err        error
}

// Executor interprets dispatched messages. It is an external
// collaborator: this engine only decides what to hand it and how much
// weight to offer.
type Executor interface {
	Execute(ctx context.Context, origin PeerId, message []byte, weightCap uint64) ExecutionOutcome
}

// BlobHandler processes Blob-format fragments. The core engine does
// not interpret Blob payloads itself; it offers every fragment to a
// pluggable handler and treats a failure as permanently unprocessable.
type BlobHandler interface {
	HandleBlob(ctx context.Context, origin PeerId, blob []byte) error
}
