// Package core implements the five cooperating components of the
// queueing engine: the inbound Ingestor, the shuffled Dispatcher, the
// outbound Assembler, the Signal Channel, and the Outbound Collector.
package core

import (
	"github.com/chainbridge-labs/xcmq/pkg/xcmq/types"
)

// Assembler packs application fragments into format-homogeneous
// outbound pages and maintains the signal channel.
type Assembler struct {
	store   types.Store
	channel types.ChannelInfo
	log     types.Logger
}

func NewAssembler(store types.Store, channel types.ChannelInfo, log types.Logger) *Assembler {
	return &Assembler{store: store, channel: channel, log: log}
}

// SendFragment packs one fragment toward peer, opening a new page
// when the current one is full, absent, or of a different format.
// It returns the page's depth in the ring (0 for the first open page)
// on success.
func (a *Assembler) SendFragment(peer types.PeerId, format types.Format, fragment []byte) (int, error) {
	maxSize, ok := a.channel.MaxMessageSize(peer)
	if !ok {
		return 0, types.ErrNoChannel
	}
	if uint32(len(fragment)) > maxSize {
		return 0, types.ErrTooBig
	}

	list, err := a.store.GetOutboundStatusList()
	if err != nil {
		return 0, err
	}

	idx := list.IndexOf(peer)
	var rec types.OutboundStatus
	if idx >= 0 {
		rec = list[idx]
	} else {
		rec = types.OutboundStatus{Peer: peer, State: types.StateOk}
	}

	if rec.End > rec.Begin {
		data, ok, err := a.store.GetOutboundPage(peer, rec.End-1)
		if err != nil {
			return 0, err
		}
		if ok && len(data) > 0 && types.Format(data[0]) == format && uint32(len(data)+len(fragment)) <= maxSize {
			data = append(data, fragment...)
			if err := a.store.PutOutboundPage(peer, rec.End-1, data); err != nil {
				return 0, err
			}
			return a.commit(list, idx, rec)
		}
	}

	page := append([]byte{byte(format)}, fragment...)
	if err := a.store.PutOutboundPage(peer, rec.End, page); err != nil {
		return 0, err
	}
	rec.End++
	return a.commit(list, idx, rec)
}

func (a *Assembler) commit(list types.OutboundStatusList, idx int, rec types.OutboundStatus) (int, error) {
	if idx >= 0 {
		list[idx] = rec
	} else {
		list = append(list, rec)
	}
	if err := a.store.PutOutboundStatusList(list); err != nil {
		return 0, err
	}
	return int(rec.End - rec.Begin - 1), nil
}

// SendSignal enqueues a control code toward peer on the dedicated
// signal slot, creating the record and the Signals-tagged page if
// this is the first pending signal.
func (a *Assembler) SendSignal(peer types.PeerId, code types.SignalCode) error {
	list, err := a.store.GetOutboundStatusList()
	if err != nil {
		return err
	}

	idx := list.IndexOf(peer)
	var rec types.OutboundStatus
	if idx >= 0 {
		rec = list[idx]
	} else {
		rec = types.OutboundStatus{Peer: peer, State: types.StateOk}
	}

	data, ok, err := a.store.GetSignalPage(peer)
	if err != nil {
		return err
	}
	if !ok || len(data) == 0 {
		data = []byte{byte(types.FormatSignals)}
	}
	data = append(data, byte(code))
	if err := a.store.PutSignalPage(peer, data); err != nil {
		return err
	}

	rec.HasSignal = true
	if idx >= 0 {
		list[idx] = rec
	} else {
		list = append(list, rec)
	}
	if err := a.store.PutOutboundStatusList(list); err != nil {
		return err
	}
	a.log.Debugf("enqueued signal %v toward peer %v", code, peer)
	return nil
}
