// Command xcmqsim drives an in-memory xcmq.Engine across a sequence of
// simulated blocks, printing a trace of what each component did. It is
// meant for exercising the engine by hand, not for production use.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	promlog "github.com/prometheus/common/log"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/chainbridge-labs/xcmq/pkg/xcmq"
	"github.com/chainbridge-labs/xcmq/pkg/xcmq/definition"
	"github.com/chainbridge-labs/xcmq/pkg/xcmq/helper"
)

var (
	app = kingpin.New("xcmqsim", "Simulate a cross-chain message queue across a run of blocks.")

	peers        = app.Flag("peers", "number of sibling chains to simulate").Default("4").Int()
	blocks       = app.Flag("blocks", "number of blocks to run").Default("6").Int()
	perBlock     = app.Flag("messages-per-block", "xcm fragments enqueued per peer per block").Default("2").Int()
	weightBudget = app.Flag("weight-budget", "dispatcher weight budget per block").Default("1000000").Uint64()
	maxChannels  = app.Flag("max-channels", "channels offered a slot per collector poll").Default("8").Int()
	verbose      = app.Flag("verbose", "enable debug logging").Bool()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))
	promlog.Infof("xcmqsim starting: %d peers, %d blocks", *peers, *blocks)

	log := definition.NewDefaultLogger("xcmqsim")
	definition.ToggleDebug(log, *verbose)

	network := newSimNetwork(*peers)
	executor := &simExecutor{}
	engine := xcmq.NewEngine(network, executor, xcmq.DefaultConfig(), xcmq.WithLogger(log))

	ctx := context.Background()
	var seed [32]byte

	for block := 0; block < *blocks; block++ {
		seed[0] = byte(block)
		batches := network.generateBatches(*perBlock, xcmq.SentAt(block))

		used, err := engine.HandleXcmpMessages(ctx, batches, *weightBudget, seed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "block %d: ingest/dispatch failed: %v\n", block, err)
			os.Exit(1)
		}
		fmt.Printf("block %d: ingested %d batches, dispatcher consumed %d weight\n", block, len(batches), used)

		pages, err := engine.TakeOutboundMessages(*maxChannels)
		if err != nil {
			fmt.Fprintf(os.Stderr, "block %d: collector failed: %v\n", block, err)
			os.Exit(1)
		}
		for _, p := range pages {
			fmt.Printf("block %d: collected %d bytes for peer %d\n", block, len(p.Data), p.Peer)
		}
	}
}

// simNetwork is a stand-in transport/ChannelInfo: every simulated peer
// has a wide-open channel and emits a burst of xcm fragments of random
// size each block.
type simNetwork struct {
	peerIDs []xcmq.PeerId
	rng     *rand.Rand
}

func newSimNetwork(n int) *simNetwork {
	ids := make([]xcmq.PeerId, n)
	for i := range ids {
		ids[i] = xcmq.PeerId(i + 1)
	}
	return &simNetwork{peerIDs: ids, rng: rand.New(rand.NewSource(1))}
}

func (n *simNetwork) MaxMessageSize(xcmq.PeerId) (uint32, bool) { return 4096, true }

func (n *simNetwork) Status(xcmq.PeerId) xcmq.ChannelStatus {
	return xcmq.ChannelStatus{Kind: xcmq.ChannelReady, MaxSizeNow: 65536, MaxSizeEver: 65536}
}

func (n *simNetwork) generateBatches(fragmentsPerPeer int, sentAt xcmq.SentAt) []xcmq.InboundBatch {
	batches := make([]xcmq.InboundBatch, 0, len(n.peerIDs))
	for _, peer := range n.peerIDs {
		payload := []byte{byte(xcmq.FormatXcm)}
		for i := 0; i < fragmentsPerPeer; i++ {
			frag := make([]byte, 8+n.rng.Intn(64))
			n.rng.Read(frag)
			payload = append(payload, helper.EncodeFragment(frag)...)
		}
		batches = append(batches, xcmq.InboundBatch{Peer: peer, SentAt: sentAt, Bytes: payload})
	}
	return batches
}

// simExecutor charges 10 weight per message byte and always succeeds.
type simExecutor struct{}

func (simExecutor) Execute(_ context.Context, _ xcmq.PeerId, message []byte, _ uint64) xcmq.ExecutionOutcome {
	return xcmq.ExecutionOutcome{Kind: xcmq.OutcomeComplete, WeightUsed: uint64(len(message)) * 10}
}
