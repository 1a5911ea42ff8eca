package chain

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tcfw/powledger/internal/utils/logging"
	"github.com/tcfw/powledger/pkg/block"
	"github.com/tcfw/powledger/pkg/consensus"
	"github.com/tcfw/powledger/pkg/consensus/pow"
	"github.com/tcfw/powledger/pkg/storage"
)

var (
	ErrOutOfRange = errors.New("block index out of range")
)

// Chain is an append-only sequence of sealed blocks, each linked to the
// hash of its predecessor. A Chain has a single owner and is not safe for
// concurrent use.
type Chain struct {
	consensus consensus.Consensus
	store     storage.Store
	logger    *logrus.Entry

	blocks []*block.Block
}

func New(opts ...Option) (*Chain, error) {
	c := &Chain{
		logger: logging.Component("chain"),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.consensus == nil {
		p, err := pow.New(pow.WithLogger(c.logger.WithField("component", "pow")))
		if err != nil {
			return nil, errors.Wrap(err, "default consensus")
		}
		c.consensus = p
	}

	if c.store == nil {
		s, err := storage.NewMemStore(storage.WithHashCode(c.consensus.HashCode()))
		if err != nil {
			return nil, errors.Wrap(err, "default block store")
		}
		c.store = s
	}

	return c, nil
}

func (c *Chain) Consensus() consensus.Consensus {
	return c.consensus
}

// Add seals payload onto the end of the chain and returns the new block.
// It blocks until mining completes.
func (c *Chain) Add(payload []byte) (*block.Block, error) {
	return c.AddContext(context.Background(), payload)
}

// AddContext is Add with cancellation. On error the chain is unchanged.
func (c *Chain) AddContext(ctx context.Context, payload []byte) (*block.Block, error) {
	prev := block.ZeroHash
	if tip := c.Tip(); tip != nil {
		prev = tip.Hash()
	}

	candidate := block.NewCandidate(prev, payload)

	seal, err := c.consensus.Mine(ctx, candidate)
	if err != nil {
		return nil, errors.Wrapf(err, "sealing block %d", len(c.blocks))
	}

	b := candidate.Seal(seal)

	id, err := c.store.PutBlock(ctx, b)
	if err != nil {
		return nil, errors.Wrap(err, "indexing block")
	}

	c.blocks = append(c.blocks, b)

	c.logger.WithFields(logrus.Fields{
		"height": len(c.blocks) - 1,
		"nonce":  b.Nonce(),
		"id":     id.String(),
	}).Info("appended block")

	return b, nil
}

func (c *Chain) Len() int {
	return len(c.blocks)
}

// Tip returns the newest block or nil for an empty chain.
func (c *Chain) Tip() *block.Block {
	if len(c.blocks) == 0 {
		return nil
	}

	return c.blocks[len(c.blocks)-1]
}

func (c *Chain) At(i int) (*block.Block, error) {
	if i < 0 || i >= len(c.blocks) {
		return nil, errors.Wrapf(ErrOutOfRange, "%d of %d", i, len(c.blocks))
	}

	return c.blocks[i], nil
}

// Blocks returns a copy of the block list in chain order.
func (c *Chain) Blocks() []*block.Block {
	out := make([]*block.Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// Iter returns an independent traversal of the blocks present now.
func (c *Chain) Iter() *Iterator {
	return &Iterator{blocks: c.blocks[:len(c.blocks):len(c.blocks)], i: -1}
}

// Lookup finds a block by hash through the block index.
func (c *Chain) Lookup(ctx context.Context, h block.Hash) (*block.Block, error) {
	id, err := c.store.BlockID(h)
	if err != nil {
		return nil, err
	}

	return c.store.GetBlock(ctx, id)
}

// MayContain reports whether a block with the payload may have been
// appended. It never misses an appended payload but may report false
// positives.
func (c *Chain) MayContain(payload []byte) bool {
	return c.store.MayContainPayload(payload)
}
