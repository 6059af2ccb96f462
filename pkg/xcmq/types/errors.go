package types

import (
	"errors"
	"fmt"
)

var (
	// ErrNoChannel is returned by SendFragment when ChannelInfo does
	// not know the recipient.
	ErrNoChannel = errors.New("xcmq: no channel to recipient")

	// ErrTooBig is returned by SendFragment when a single fragment
	// exceeds the recipient's max page size.
	ErrTooBig = errors.New("xcmq: fragment exceeds max page size")

	// ErrWeightLimitReached signals that the Executor could not
	// attempt a fragment within the offered weight cap. It drives a
	// dispatch rewind, not a failure report.
	ErrWeightLimitReached = errors.New("xcmq: weight limit reached")

	// ErrBlobUnhandled is the default BlobHandler's verdict: the core
	// does not execute Blob fragments itself.
	ErrBlobUnhandled = errors.New("xcmq: blob fragment not handled")

	// ErrBadFormat marks an unrecognized format tag or a payload that
	// failed to decode under its declared format.
	ErrBadFormat = errors.New("xcmq: malformed batch format")

	// ErrInvariantViolation marks state this engine should never
	// observe (a Signals page stored as inbound data, a dispatcher
	// pick whose page queue is empty, a missing inbound page, a
	// rotation that would require wrapping). It is always logged and the offending state
	// discarded rather than propagated.
	ErrInvariantViolation = errors.New("xcmq: invariant violation")
)

// SendError is the façade error kind returned by SendXcm, wrapping the
// underlying Assembler failure with the outer operation's identity.
type SendError struct {
	Dest   PeerId
	Reason error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("xcmq: send to %d failed: %v", e.Dest, e.Reason)
}

func (e *SendError) Unwrap() error { return e.Reason }
