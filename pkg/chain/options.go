package chain

import (
	"github.com/sirupsen/logrus"
	"github.com/tcfw/powledger/pkg/consensus"
	"github.com/tcfw/powledger/pkg/storage"
)

type Option func(*Chain) error

// WithConsensus sets the sealing strategy. Defaults to proof of work at
// the default difficulty.
func WithConsensus(c consensus.Consensus) Option {
	return func(ch *Chain) error {
		ch.consensus = c
		return nil
	}
}

// WithStore sets the block index. Defaults to a MemStore keyed with the
// consensus hash code.
func WithStore(s storage.Store) Option {
	return func(ch *Chain) error {
		ch.store = s
		return nil
	}
}

func WithLogger(l *logrus.Entry) Option {
	return func(ch *Chain) error {
		ch.logger = l
		return nil
	}
}
