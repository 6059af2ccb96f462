package core

import (
	"sort"

	"github.com/chainbridge-labs/xcmq/pkg/xcmq/types"
)

// OutboundPage is one page ready for handoff to the transport.
type OutboundPage struct {
	Peer types.PeerId
	Data []byte
}

// Collector, when polled, returns up to maxChannels per-recipient
// pages, signal slots first, respecting peer-reported size limits and
// closed-channel semantics.
type Collector struct {
	store   types.Store
	channel types.ChannelInfo
	log     types.Logger
}

func NewCollector(store types.Store, channel types.ChannelInfo, log types.Logger) *Collector {
	return &Collector{store: store, channel: channel, log: log}
}

// TakeOutbound returns at most maxChannels pages, one per recipient,
// sorted by peer ascending.
func (c *Collector) TakeOutbound(maxChannels int) ([]OutboundPage, error) {
	list, err := c.store.GetOutboundStatusList()
	if err != nil {
		return nil, err
	}

	var result []OutboundPage
	pruned := 0

	for idx := 0; idx < len(list); idx++ {
		if len(result) >= maxChannels {
			break
		}

		rec := &list[idx]
		if rec.State == types.StateSuspended {
			continue
		}

		status := c.channel.Status(rec.Peer)
		switch status.Kind {
		case types.ChannelClosed:
			if err := c.purge(*rec); err != nil {
				return nil, err
			}
			*rec = types.OutboundStatus{Peer: rec.Peer, State: types.StateOk}
			continue
		case types.ChannelFull:
			continue
		}

		page, emitted, err := c.takeOne(rec, status)
		if err != nil {
			return nil, err
		}
		if !emitted {
			continue
		}

		if rec.Begin == rec.End {
			rec.Begin, rec.End = 0, 0
		}

		if uint32(len(page.Data)) > status.MaxSizeEver {
			c.log.Warnf("dropping outbound page to %v: %d bytes exceeds hard cap %d", rec.Peer, len(page.Data), status.MaxSizeEver)
			continue
		}

		result = append(result, page)
	}

	kept := list[:0]
	for _, rec := range list {
		if rec.State == types.StateSuspended || rec.HasSignal || rec.End > rec.Begin {
			kept = append(kept, rec)
		} else {
			pruned++
		}
	}

	if len(result) < pruned {
		c.log.Errorf("%v: rotation would need %d pruned slots but only %d channels were offered a slot this poll", types.ErrInvariantViolation, pruned, len(result))
	} else if len(kept) > 0 {
		rotateLeft(kept, len(result)-pruned)
	}

	if err := c.store.PutOutboundStatusList(kept); err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Peer < result[j].Peer })
	return result, nil
}

// takeOne offers the signal page first, then the oldest queued data
// page. A pending signal blocks data from going out this poll even if
// the signal page itself doesn't fit or has gone missing: a recipient
// must never observe a later data page before the signal that
// precedes it.
func (c *Collector) takeOne(rec *types.OutboundStatus, status types.ChannelStatus) (OutboundPage, bool, error) {
	if rec.HasSignal {
		data, ok, err := c.store.GetSignalPage(rec.Peer)
		if err != nil {
			return OutboundPage{}, false, err
		}
		if ok && uint32(len(data)) < status.MaxSizeNow {
			if err := c.store.DeleteSignalPage(rec.Peer); err != nil {
				return OutboundPage{}, false, err
			}
			rec.HasSignal = false
			return OutboundPage{Peer: rec.Peer, Data: data}, true, nil
		}
		return OutboundPage{}, false, nil
	}

	if rec.End > rec.Begin {
		data, ok, err := c.store.GetOutboundPage(rec.Peer, rec.Begin)
		if err != nil {
			return OutboundPage{}, false, err
		}
		if ok && uint32(len(data)) < status.MaxSizeNow {
			if err := c.store.DeleteOutboundPage(rec.Peer, rec.Begin); err != nil {
				return OutboundPage{}, false, err
			}
			rec.Begin++
			return OutboundPage{Peer: rec.Peer, Data: data}, true, nil
		}
	}

	return OutboundPage{}, false, nil
}

// purge drops every data page and the signal page queued for rec.Peer.
func (c *Collector) purge(rec types.OutboundStatus) error {
	for idx := rec.Begin; idx < rec.End; idx++ {
		if err := c.store.DeleteOutboundPage(rec.Peer, idx); err != nil {
			return err
		}
	}
	if rec.HasSignal {
		if err := c.store.DeleteSignalPage(rec.Peer); err != nil {
			return err
		}
	}
	return nil
}

// rotateLeft rotates list left by n positions in place, so peers just
// serviced migrate to the tail and unvisited peers are offered the
// transport slot first next poll. Each pruned record corresponds to a
// channel that was offered a slot this poll, so n is always in
// [0, len(list)]; the caller logs instead of computing a defensive
// modular rotation if that invariant is ever violated.
func rotateLeft(list []types.OutboundStatus, n int) {
	size := len(list)
	if size == 0 {
		return
	}
	n %= size
	if n < 0 {
		n += size
	}
	if n == 0 {
		return
	}
	rotated := make([]types.OutboundStatus, size)
	for i := range list {
		rotated[i] = list[(i+n)%size]
	}
	copy(list, rotated)
}
