// Package xcmq is the cross-chain message queue core: it wires the
// Inbound Ingestor, Shuffled Dispatcher, Outbound Assembler, Signal
// Channel, and Outbound Collector into a single per-block facade.
package xcmq

import (
	"context"
	"sync"

	"github.com/chainbridge-labs/xcmq/pkg/xcmq/core"
	"github.com/chainbridge-labs/xcmq/pkg/xcmq/definition"
	"github.com/chainbridge-labs/xcmq/pkg/xcmq/helper"
	"github.com/chainbridge-labs/xcmq/pkg/xcmq/types"
)

// Re-exported so callers only need to import this one package for the
// common case.
type (
	PeerId           = types.PeerId
	SentAt           = types.SentAt
	Format           = types.Format
	Config           = types.Config
	ChannelInfo      = types.ChannelInfo
	ChannelStatus    = types.ChannelStatus
	Executor         = types.Executor
	ExecutionOutcome = types.ExecutionOutcome
	BlobHandler      = types.BlobHandler
	Logger           = types.Logger
	Store            = types.Store
	InboundBatch     = core.InboundBatch
	OutboundPage     = core.OutboundPage
)

const (
	FormatXcm     = types.FormatXcm
	FormatBlob    = types.FormatBlob
	FormatSignals = types.FormatSignals

	ChannelClosed = types.ChannelClosed
	ChannelFull   = types.ChannelFull
	ChannelReady  = types.ChannelReady

	OutcomeComplete   = types.OutcomeComplete
	OutcomeIncomplete = types.OutcomeIncomplete
	OutcomeError      = types.OutcomeError
)

var (
	ErrNoChannel          = types.ErrNoChannel
	ErrTooBig             = types.ErrTooBig
	ErrWeightLimitReached = types.ErrWeightLimitReached
	ErrBlobUnhandled      = types.ErrBlobUnhandled
)

// DefaultConfig returns the reference queue's default tunables.
func DefaultConfig() Config { return types.DefaultConfig() }

// Engine is a single chain's instance of the queue core. It keeps no
// state of its own beyond the mutex below: every durable fact lives in
// the Store. The mutex exists for hosts that call into the engine
// from more than one goroutine; the protocol itself
// is single-threaded and cooperative.
type Engine struct {
	mu sync.Mutex

	store     types.Store
	channel   types.ChannelInfo
	assembler *core.Assembler
	dispatch  *core.Dispatcher
	ingest    *core.Ingestor
	collect   *core.Collector
	log       types.Logger
}

// Option configures optional Engine dependencies; unset ones fall
// back to the package's default implementations.
type Option func(*engineOptions)

type engineOptions struct {
	store types.Store
	blob  types.BlobHandler
	log   types.Logger
}

func WithStore(store types.Store) Option {
	return func(o *engineOptions) { o.store = store }
}

func WithBlobHandler(blob types.BlobHandler) Option {
	return func(o *engineOptions) { o.blob = blob }
}

func WithLogger(log types.Logger) Option {
	return func(o *engineOptions) { o.log = log }
}

// NewEngine wires the five components against channel (peer metadata)
// and executor (message execution), both supplied by the host. Use
// Option values to override the default in-memory store, the default
// "unhandled" blob handler, or the default logger.
func NewEngine(channel types.ChannelInfo, executor types.Executor, cfg types.Config, opts ...Option) *Engine {
	o := &engineOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.store == nil {
		o.store = definition.NewDefaultStorage()
	}
	if o.blob == nil {
		o.blob = definition.UnhandledBlobHandler{}
	}
	if o.log == nil {
		o.log = definition.NewDefaultLogger("xcmq")
	}

	assembler := core.NewAssembler(o.store, channel, o.log)
	dispatch := core.NewDispatcher(o.store, executor, o.blob, assembler, o.log, cfg)
	ingest := core.NewIngestor(o.store, assembler, dispatch, o.log, cfg)
	collect := core.NewCollector(o.store, channel, o.log)

	return &Engine{
		store:     o.store,
		channel:   channel,
		assembler: assembler,
		dispatch:  dispatch,
		ingest:    ingest,
		collect:   collect,
		log:       o.log,
	}
}

// HandleXcmpMessages is the Ingestor's entry point: it
// drains batches in transport order and always finishes by invoking
// the Dispatcher with weightBudget, returning the weight consumed.
func (e *Engine) HandleXcmpMessages(ctx context.Context, batches []InboundBatch, weightBudget uint64, seed [32]byte) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ingest.Ingest(ctx, batches, weightBudget, seed)
}

// TakeOutboundMessages is the Collector's entry point.
func (e *Engine) TakeOutboundMessages(maxChannels int) ([]OutboundPage, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.collect.TakeOutbound(maxChannels)
}

// SendXcm is the high-level façade mapping a sibling-chain destination
// into an Xcm SendFragment call, wrapping Assembler errors into a
// SendError.
func (e *Engine) SendXcm(dest PeerId, message []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.assembler.SendFragment(dest, types.FormatXcm, helper.EncodeFragment(message)); err != nil {
		return &types.SendError{Dest: dest, Reason: err}
	}
	return nil
}

// SendBlob is the Blob-format counterpart to SendXcm.
func (e *Engine) SendBlob(dest PeerId, blob []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.assembler.SendFragment(dest, types.FormatBlob, helper.EncodeFragment(blob)); err != nil {
		return &types.SendError{Dest: dest, Reason: err}
	}
	return nil
}
