package types

// PeerId identifies a sibling chain on the relay-coordinated network.
// It is opaque to the engine and totally ordered, matching the way the
// relay assigns numeric identities to parachains.
type PeerId uint32

// SentAt is the relay block number a batch arrived in. It only ever
// increases for a given peer, but no two peers are required to agree
// on its pace.
type SentAt uint32

// PageIndex addresses a slot in a peer's outbound page ring. The live
// window is [begin, end); equality means the ring is empty.
type PageIndex uint16

// Format tags the payload carried by a batch or outbound page.
type Format byte

const (
	FormatXcm     Format = 0
	FormatBlob    Format = 1
	FormatSignals Format = 2
)

// Valid reports whether the tag is one this engine recognizes. Any
// other value must cause the caller to drop the batch silently.
func (f Format) Valid() bool {
	switch f {
	case FormatXcm, FormatBlob, FormatSignals:
		return true
	default:
		return false
	}
}

func (f Format) String() string {
	switch f {
	case FormatXcm:
		return "Xcm"
	case FormatBlob:
		return "Blob"
	case FormatSignals:
		return "Signals"
	default:
		return "Unknown"
	}
}

// ChannelState is shared by the inbound and outbound halves of a
// channel; each half tracks its own independently.
type ChannelState byte

const (
	StateOk ChannelState = iota
	StateSuspended
)

func (s ChannelState) String() string {
	if s == StateSuspended {
		return "Suspended"
	}
	return "Ok"
}

// SignalCode is a control code carried inside a Signals-format payload.
type SignalCode byte

const (
	SignalSuspend SignalCode = 0
	SignalResume  SignalCode = 1
)
