package core

import (
	"context"

	"github.com/chainbridge-labs/xcmq/pkg/xcmq/types"
)

// InboundBatch is one transport-delivered aggregate: a tagged byte
// string addressed to this chain from peer, arriving in sentAt's
// epoch.
type InboundBatch struct {
	Peer   types.PeerId
	SentAt types.SentAt
	Bytes  []byte
}

// Ingestor parses each batch's format tag, appends it to the sender's
// inbound queue, and issues backpressure signals as queues cross their
// thresholds.
type Ingestor struct {
	store     types.Store
	assembler *Assembler
	dispatch  *Dispatcher
	log       types.Logger
	cfg       types.Config
}

func NewIngestor(store types.Store, assembler *Assembler, dispatch *Dispatcher, log types.Logger, cfg types.Config) *Ingestor {
	return &Ingestor{store: store, assembler: assembler, dispatch: dispatch, log: log, cfg: cfg}
}

// Ingest drains batches in transport order, then always hands off to
// the Dispatcher with weightBudget.
func (ig *Ingestor) Ingest(ctx context.Context, batches []InboundBatch, weightBudget uint64, seed [32]byte) (uint64, error) {
	list, err := ig.store.GetInboundStatusList()
	if err != nil {
		return 0, err
	}

	for _, batch := range batches {
		if len(batch.Bytes) == 0 {
			ig.log.Warnf("dropping empty batch from peer %v", batch.Peer)
			continue
		}
		format := types.Format(batch.Bytes[0])
		if !format.Valid() {
			ig.log.Warnf("%v: dropping batch from peer %v with unrecognized format tag %d", types.ErrBadFormat, batch.Peer, batch.Bytes[0])
			continue
		}
		payload := batch.Bytes[1:]

		if format == types.FormatSignals {
			if err := ig.handleSignals(batch.Peer, payload); err != nil {
				ig.log.Errorf("failed applying signals from %v: %v", batch.Peer, err)
			}
			continue
		}

		list, err = ig.handleData(list, batch.Peer, batch.SentAt, format, payload)
		if err != nil {
			return 0, err
		}
	}

	list.Sort()
	if err := ig.store.PutInboundStatusList(list); err != nil {
		return 0, err
	}

	return ig.dispatch.Service(ctx, weightBudget, seed)
}

// handleSignals decodes one Signals payload and applies each control
// code to the peer's OUTBOUND record: Suspend(peer) received means
// "stop sending to us", so it flips our outbound state.
func (ig *Ingestor) handleSignals(peer types.PeerId, payload []byte) error {
	list, err := ig.store.GetOutboundStatusList()
	if err != nil {
		return err
	}

	for _, code := range payload {
		idx := list.IndexOf(peer)
		switch types.SignalCode(code) {
		case types.SignalSuspend:
			if idx >= 0 {
				list[idx].State = types.StateSuspended
			} else {
				list = append(list, types.OutboundStatus{Peer: peer, State: types.StateSuspended})
			}
		case types.SignalResume:
			if idx >= 0 {
				list[idx].State = types.StateOk
				if list[idx].Empty() {
					list = append(list[:idx], list[idx+1:]...)
				}
			}
			// Resume for a peer we have no record of is a no-op: there
			// is nothing suspended to resume.
		default:
			ig.log.Warnf("malformed signal code %d from %v, stopping signal parse", code, peer)
			return ig.store.PutOutboundStatusList(list)
		}
	}

	return ig.store.PutOutboundStatusList(list)
}

// handleData appends one data batch to peer's inbound queue as a page,
// working against an in-memory copy of the inbound status list and
// returning the updated list.
func (ig *Ingestor) handleData(list types.InboundStatusList, peer types.PeerId, sentAt types.SentAt, format types.Format, payload []byte) (types.InboundStatusList, error) {
	idx := list.IndexOf(peer)
	if idx < 0 {
		if err := ig.store.PutInboundPage(peer, sentAt, payload); err != nil {
			return list, err
		}
		return append(list, types.InboundStatus{
			Peer:  peer,
			State: types.StateOk,
			Pages: []types.InboundPageRef{{SentAt: sentAt, Format: format}},
		}), nil
	}

	rec := &list[idx]
	count := len(rec.Pages)

	if count >= ig.cfg.SuspendThreshold && rec.State == types.StateOk {
		rec.State = types.StateSuspended
		if err := ig.assembler.SendSignal(peer, types.SignalSuspend); err != nil {
			ig.log.Errorf("failed enqueuing suspend signal toward %v: %v", peer, err)
		}
	}

	if count >= ig.cfg.HardLimit {
		ig.log.Warnf("dropping batch from %v: inbound queue at hard limit %d", peer, ig.cfg.HardLimit)
		return list, nil
	}

	if err := ig.store.PutInboundPage(peer, sentAt, payload); err != nil {
		return list, err
	}
	rec.Pages = append(rec.Pages, types.InboundPageRef{SentAt: sentAt, Format: format})
	return list, nil
}
