package core

import (
	"context"
	"testing"

	"github.com/chainbridge-labs/xcmq/pkg/xcmq/definition"
	"github.com/chainbridge-labs/xcmq/pkg/xcmq/types"
)

func newTestIngestor(t *testing.T, store types.Store, channel types.ChannelInfo, executor types.Executor, cfg types.Config) (*Ingestor, *Assembler, *Dispatcher) {
	t.Helper()
	log := newTestLogger()
	assembler := NewAssembler(store, channel, log)
	dispatch := NewDispatcher(store, executor, definition.UnhandledBlobHandler{}, assembler, log, cfg)
	ingestor := NewIngestor(store, assembler, dispatch, log, cfg)
	return ingestor, assembler, dispatch
}

// TestIngestSuspendAndHardLimit is scenario S2: after the second
// batch a Suspend is enqueued toward the peer; the sixth batch is
// dropped and the queue stays at the hard limit.
func TestIngestSuspendAndHardLimit(t *testing.T) {
	store := definition.NewDefaultStorage()
	channel := newFakeChannelInfo().withPeer(99, 1000, 1000, 1000)
	cfg := types.Config{SuspendThreshold: 2, HardLimit: 5, ResumeThreshold: 1, ThresholdWeight: 100000, WeightRestrictDecay: 2}
	ingestor, _, _ := newTestIngestor(t, store, channel, &fakeExecutor{}, cfg)

	peer := types.PeerId(42)
	for i := 0; i < 6; i++ {
		batch := InboundBatch{Peer: peer, SentAt: types.SentAt(i), Bytes: append([]byte{byte(types.FormatXcm)}, []byte{0}...)}
		// Use a weight budget below the dispatch threshold so Service
		// returns immediately and the inbound queue is observable.
		if _, err := ingestor.Ingest(context.Background(), []InboundBatch{batch}, 0, [32]byte{}); err != nil {
			t.Fatalf("ingest %d: %v", i, err)
		}
	}

	list, err := store.GetInboundStatusList()
	if err != nil {
		t.Fatal(err)
	}
	idx := list.IndexOf(peer)
	if idx < 0 {
		t.Fatal("expected inbound record for peer")
	}
	if len(list[idx].Pages) != 5 {
		t.Fatalf("expected queue capped at hard limit 5, got %d", len(list[idx].Pages))
	}
	if list[idx].State != types.StateSuspended {
		t.Fatal("expected inbound state to be Suspended")
	}

	outbound, err := store.GetOutboundStatusList()
	if err != nil {
		t.Fatal(err)
	}
	oidx := outbound.IndexOf(peer)
	if oidx < 0 || !outbound[oidx].HasSignal {
		t.Fatal("expected a suspend signal enqueued toward the peer")
	}
}

func TestIngestDropsUnrecognizedFormat(t *testing.T) {
	store := definition.NewDefaultStorage()
	channel := newFakeChannelInfo()
	cfg := types.DefaultConfig()
	ingestor, _, _ := newTestIngestor(t, store, channel, &fakeExecutor{}, cfg)

	batch := InboundBatch{Peer: 1, SentAt: 0, Bytes: []byte{0xFF, 1, 2, 3}}
	if _, err := ingestor.Ingest(context.Background(), []InboundBatch{batch}, 0, [32]byte{}); err != nil {
		t.Fatal(err)
	}

	list, _ := store.GetInboundStatusList()
	if list.IndexOf(1) >= 0 {
		t.Fatal("expected no record for a batch with an unrecognized format tag")
	}
}

func TestIngestSignalsFlipOutboundState(t *testing.T) {
	store := definition.NewDefaultStorage()
	channel := newFakeChannelInfo()
	cfg := types.DefaultConfig()
	ingestor, _, _ := newTestIngestor(t, store, channel, &fakeExecutor{}, cfg)

	peer := types.PeerId(7)
	suspend := InboundBatch{Peer: peer, SentAt: 0, Bytes: []byte{byte(types.FormatSignals), byte(types.SignalSuspend)}}
	if _, err := ingestor.Ingest(context.Background(), []InboundBatch{suspend}, 0, [32]byte{}); err != nil {
		t.Fatal(err)
	}

	list, _ := store.GetOutboundStatusList()
	idx := list.IndexOf(peer)
	if idx < 0 || list[idx].State != types.StateSuspended {
		t.Fatal("expected outbound state Suspended after receiving Suspend")
	}

	resume := InboundBatch{Peer: peer, SentAt: 1, Bytes: []byte{byte(types.FormatSignals), byte(types.SignalResume)}}
	if _, err := ingestor.Ingest(context.Background(), []InboundBatch{resume}, 0, [32]byte{}); err != nil {
		t.Fatal(err)
	}

	list, _ = store.GetOutboundStatusList()
	if list.IndexOf(peer) >= 0 {
		t.Fatal("expected the now-empty outbound record to be removed after Resume")
	}
}
