package chain

import (
	"github.com/pkg/errors"
)

var (
	ErrBadGenesis  = errors.New("genesis block must reference the zero hash")
	ErrBrokenLink  = errors.New("block does not reference its predecessor")
	ErrInvalidSeal = errors.New("block seal is invalid")
)

// Verify re-checks every block: the genesis back-reference, the link to
// the predecessor hash and the consensus seal.
func (c *Chain) Verify() error {
	for it := c.Iter(); it.Next(); {
		b := it.Block()
		i := it.Index()

		if i == 0 {
			if !b.IsGenesis() {
				return errors.Wrapf(ErrBadGenesis, "block %d", i)
			}
		} else if b.PreviousHash() != c.blocks[i-1].Hash() {
			return errors.Wrapf(ErrBrokenLink, "block %d", i)
		}

		if !c.consensus.Validate(b) {
			return errors.Wrapf(ErrInvalidSeal, "block %d", i)
		}
	}

	return nil
}
