package types

// OutboundStatus is the per-peer outbound bookkeeping record: the ring
// of data pages plus the single signal slot.
type OutboundStatus struct {
	Peer      PeerId
	State     ChannelState
	HasSignal bool
	Begin     PageIndex
	End       PageIndex
}

// Empty reports whether the record has nothing worth retaining: no
// data pages, no pending signal, and not suspended.
func (s OutboundStatus) Empty() bool {
	return s.End == s.Begin && !s.HasSignal && s.State != StateSuspended
}

// OutboundStatusList is not sorted by peer: new records are appended,
// and the Collector's anti-starvation step rotates the list after each
// poll.
type OutboundStatusList []OutboundStatus

func (l OutboundStatusList) IndexOf(peer PeerId) int {
	for i := range l {
		if l[i].Peer == peer {
			return i
		}
	}
	return -1
}

func (l OutboundStatusList) Clone() OutboundStatusList {
	if l == nil {
		return nil
	}
	out := make(OutboundStatusList, len(l))
	copy(out, l)
	return out
}
