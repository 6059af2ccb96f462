package definition

import (
	"context"

	"github.com/chainbridge-labs/xcmq/pkg/xcmq/types"
)

// UnhandledBlobHandler is the default types.BlobHandler: the core
// engine defines Blob parsing and queue-level handling but does not
// execute Blob payloads itself (the open question on Blob
// handling). A host that wants Blob delivery plugs in its own
// types.BlobHandler.
type UnhandledBlobHandler struct{}

func (UnhandledBlobHandler) HandleBlob(_ context.Context, _ types.PeerId, _ []byte) error {
	return types.ErrBlobUnhandled
}

var _ types.BlobHandler = UnhandledBlobHandler{}
