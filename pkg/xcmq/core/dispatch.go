package core

import (
	"context"
	"errors"

	"github.com/chainbridge-labs/xcmq/pkg/xcmq/helper"
	"github.com/chainbridge-labs/xcmq/pkg/xcmq/types"
)

// Dispatcher dispatches queued inbound pages to the Executor under a
// weight budget once per block, shuffling across sender channels so
// that one sender cannot monopolize compute.
type Dispatcher struct {
	store     types.Store
	executor  types.Executor
	blob      types.BlobHandler
	assembler *Assembler
	log       types.Logger
	cfg       types.Config
}

// NewDispatcher wires a Dispatcher. blob must not be nil; callers
// without a real handler should pass definition.UnhandledBlobHandler{}.
func NewDispatcher(store types.Store, executor types.Executor, blob types.BlobHandler, assembler *Assembler, log types.Logger, cfg types.Config) *Dispatcher {
	return &Dispatcher{store: store, executor: executor, blob: blob, assembler: assembler, log: log, cfg: cfg}
}

// Service runs one dispatch pass under weightBudget, returning the
// weight actually consumed. seed is the deterministic block-scoped
// shuffle seed (e.g. the parent block hash, zero-padded to 32 bytes).
// It is safe to call repeatedly across blocks: partial page
// consumption is persisted before returning.
func (d *Dispatcher) Service(ctx context.Context, weightBudget uint64, seed [32]byte) (uint64, error) {
	if weightBudget <= d.cfg.ThresholdWeight {
		return 0, nil
	}

	list, err := d.store.GetInboundStatusList()
	if err != nil {
		return 0, err
	}
	if len(list) == 0 {
		return 0, nil
	}

	tracker := newWeightTracker(weightBudget, d.cfg.WeightRestrictDecay, d.cfg.ThresholdWeight)
	queue := shuffle(len(list), seed)
	var perPageWeights []uint64

	for len(queue) > 0 && tracker.residual() >= d.cfg.ThresholdWeight {
		select {
		case <-ctx.Done():
			return tracker.used, ctx.Err()
		default:
		}

		tracker.unlock()

		i := queue[0]
		queue = queue[1:]
		peer := list[i].Peer

		if len(list[i].Pages) == 0 {
			d.log.Warnf("%v: dispatcher selected peer %v with an empty page queue", types.ErrInvariantViolation, peer)
			continue
		}

		ref := list[i].Pages[0]
		consumed, pageEmpty, perr := d.processPage(ctx, peer, ref, tracker.cap())
		if perr != nil {
			return tracker.used, perr
		}
		if pageEmpty {
			list[i].Pages = list[i].Pages[1:]
		}
		tracker.consume(consumed)
		perPageWeights = append(perPageWeights, consumed)

		if len(list[i].Pages) <= d.cfg.ResumeThreshold && list[i].State == types.StateSuspended {
			list[i].State = types.StateOk
			if err := d.assembler.SendSignal(peer, types.SignalResume); err != nil {
				d.log.Errorf("failed enqueuing resume signal toward %v: %v", peer, err)
			}
		}

		if (len(list[i].Pages) > 0 && consumed > 0) || tracker.available < tracker.budget {
			queue = append(queue, i)
		}
	}

	kept := list[:0]
	for _, rec := range list {
		if len(rec.Pages) > 0 {
			kept = append(kept, rec)
		}
	}
	if err := d.store.PutInboundStatusList(kept); err != nil {
		return tracker.used, err
	}

	d.log.Debugf("dispatch pass consumed %d of %d weight, heaviest single page %d", tracker.used, weightBudget, helper.MaxU64(perPageWeights))
	return tracker.used, nil
}

// processPage loads the page, decodes fragments according to its
// format, and reports whether it emptied out.
func (d *Dispatcher) processPage(ctx context.Context, peer types.PeerId, ref types.InboundPageRef, weightCap uint64) (weightUsed uint64, pageEmpty bool, err error) {
	data, ok, err := d.store.GetInboundPage(peer, ref.SentAt)
	if err != nil {
		return 0, false, err
	}
	if !ok {
		d.log.Warnf("%v: missing inbound page for peer %v at %v", types.ErrInvariantViolation, peer, ref.SentAt)
		return 0, true, nil
	}

	var remaining []byte
	switch ref.Format {
	case types.FormatXcm:
		weightUsed, remaining = d.processXcmPage(ctx, peer, data, weightCap)
	case types.FormatBlob:
		remaining = d.processBlobPage(ctx, peer, data)
	default:
		d.log.Warnf("%v: format %v found in inbound page store for peer %v", types.ErrInvariantViolation, ref.Format, peer)
		remaining = nil
	}

	if len(remaining) == 0 {
		if err := d.store.DeleteInboundPage(peer, ref.SentAt); err != nil {
			return weightUsed, false, err
		}
		return weightUsed, true, nil
	}
	if err := d.store.PutInboundPage(peer, ref.SentAt, remaining); err != nil {
		return weightUsed, false, err
	}
	return weightUsed, false, nil
}

// processXcmPage hands each length-prefixed fragment to the Executor.
// On a weight-limit outcome it rewinds to the start of that fragment
// and stops, leaving it to be retried on a later call.
func (d *Dispatcher) processXcmPage(ctx context.Context, peer types.PeerId, data []byte, weightCap uint64) (uint64, []byte) {
	var used uint64
	for len(data) > 0 {
		beforeFragment := data
		fragment, rest, err := helper.DecodeFragment(data)
		if err != nil {
			d.log.Warnf("discarding remainder of xcm page for peer %v: %v", peer, err)
			return used, nil
		}

		var remainingCap uint64
		if weightCap > used {
			remainingCap = weightCap - used
		}
		outcome := d.executor.Execute(ctx, peer, fragment, remainingCap)
		switch outcome.Kind {
		case types.OutcomeComplete:
			used += outcome.WeightUsed
			data = rest
		case types.OutcomeIncomplete:
			used += outcome.WeightUsed
			d.log.Warnf("xcm fragment from %v completed with error: %v", peer, outcome.Err)
			data = rest
		default: // OutcomeError
			if errors.Is(outcome.Err, types.ErrWeightLimitReached) {
				return used, beforeFragment
			}
			d.log.Warnf("dropping unprocessable xcm fragment from %v: %v", peer, outcome.Err)
			data = rest
		}
	}
	return used, data
}

// processBlobPage offers every fragment to the BlobHandler. Blob
// fragments never rewind: a failure marks the fragment permanently
// unprocessable and processing moves on.
func (d *Dispatcher) processBlobPage(ctx context.Context, peer types.PeerId, data []byte) []byte {
	for len(data) > 0 {
		fragment, rest, err := helper.DecodeFragment(data)
		if err != nil {
			d.log.Warnf("discarding remainder of blob page for peer %v: %v", peer, err)
			return nil
		}
		if err := d.blob.HandleBlob(ctx, peer, fragment); err != nil {
			d.log.Debugf("blob fragment from %v not handled: %v", peer, err)
		}
		data = rest
	}
	return data
}
