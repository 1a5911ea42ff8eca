package storage

import (
	"context"

	"github.com/ipfs/go-cid"
	"github.com/tcfw/powledger/pkg/block"
)

// Store indexes sealed blocks by content identifier. It is an in-memory
// lookup structure owned by a single chain; it never persists.
type Store interface {
	PutBlock(context.Context, *block.Block) (cid.Cid, error)
	GetBlock(context.Context, cid.Cid) (*block.Block, error)

	// BlockID derives the content identifier of a block hash.
	BlockID(block.Hash) (cid.Cid, error)

	// MayContainPayload reports whether a block with the payload may
	// have been stored. False positives are possible.
	MayContainPayload([]byte) bool

	Len() int
}
