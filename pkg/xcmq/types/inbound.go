package types

import "sort"

// InboundPageRef is one entry in a peer's inbound page queue: the key
// needed to load the page body plus the format it was tagged with.
type InboundPageRef struct {
	SentAt SentAt
	Format Format
}

// InboundStatus is the per-peer inbound bookkeeping record. It is
// retained only while Pages is non-empty.
type InboundStatus struct {
	Peer  PeerId
	State ChannelState
	Pages []InboundPageRef
}

// InboundStatusList is kept sorted by Peer, each peer appearing at
// most once.
type InboundStatusList []InboundStatus

func (l InboundStatusList) Len() int           { return len(l) }
func (l InboundStatusList) Less(i, j int) bool { return l[i].Peer < l[j].Peer }
func (l InboundStatusList) Swap(i, j int)      { l[i], l[j] = l[j], l[i] }

// Sort restores the peer-ordering invariant. Call after any mutation
// that might have inserted an out-of-order record.
func (l InboundStatusList) Sort() {
	sort.Sort(l)
}

// IndexOf returns the position of peer's record, or -1 if absent.
func (l InboundStatusList) IndexOf(peer PeerId) int {
	for i := range l {
		if l[i].Peer == peer {
			return i
		}
	}
	return -1
}

// Clone makes a deep copy safe to mutate without affecting the
// original, used by Store implementations to avoid aliasing the
// persisted state through a returned slice.
func (l InboundStatusList) Clone() InboundStatusList {
	if l == nil {
		return nil
	}
	out := make(InboundStatusList, len(l))
	for i, rec := range l {
		out[i] = rec
		out[i].Pages = append([]InboundPageRef(nil), rec.Pages...)
	}
	return out
}
