//go:generate go run github.com/vektra/mockery/v2 --name Consensus

package consensus

import (
	"context"

	"github.com/tcfw/powledger/pkg/block"
)

// Consensus is the sealing strategy a chain delegates to.
type Consensus interface {
	// Serialize produces the canonical pre-image hashed when sealing b.
	Serialize(b *block.Block) []byte

	// Mine searches for a seal satisfying the validity predicate. The
	// result must be a pure function of the candidate and the engine
	// configuration. Mine blocks until a seal is found, ctx is done or
	// the nonce space runs out.
	Mine(ctx context.Context, c block.Candidate) (block.Seal, error)

	// Validate recomputes the digest of b and reports whether it equals
	// the stored hash and satisfies the predicate. It never mutates b.
	Validate(b *block.Block) bool

	// HashCode is the multihash code of the digest function.
	HashCode() uint64
}
