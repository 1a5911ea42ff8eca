package pow

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Option func(*ProofOfWork) error

// WithDifficulty sets the number of leading zero bits a digest needs.
func WithDifficulty(d int) Option {
	return func(p *ProofOfWork) error {
		if d < 0 || d > MaxDifficulty {
			return errors.Wrapf(ErrInvalidDifficulty, "%d not in [0,%d]", d, MaxDifficulty)
		}
		p.difficulty = uint(d)
		return nil
	}
}

// WithHashFunction selects the digest by multihash name, e.g. "sha3-256".
func WithHashFunction(name string) Option {
	return func(p *ProofOfWork) error {
		code, fn, err := lookupHash(name)
		if err != nil {
			return err
		}
		p.hashCode = code
		p.hash = fn
		return nil
	}
}

func WithWorkers(n int) Option {
	return func(p *ProofOfWork) error {
		if n < 1 {
			return errors.Wrapf(ErrInvalidOption, "workers must be positive, got %d", n)
		}
		p.workers = n
		return nil
	}
}

// WithBatchSize sets how many consecutive nonces each worker scans per
// round of a parallel search.
func WithBatchSize(n uint32) Option {
	return func(p *ProofOfWork) error {
		if n == 0 {
			return errors.Wrap(ErrInvalidOption, "batch size must be positive")
		}
		p.batchSize = n
		return nil
	}
}

func WithLogger(l *logrus.Entry) Option {
	return func(p *ProofOfWork) error {
		p.logger = l
		return nil
	}
}
