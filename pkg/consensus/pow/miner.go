package pow

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tcfw/powledger/pkg/block"
	"github.com/tcfw/powledger/pkg/consensus"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

const (
	// ctx and early stop are polled once per this many attempts
	pollInterval = 4096

	noHit = math.MaxUint64
)

type hit struct {
	nonce uint64
	hash  block.Hash
	found bool
}

// Mine searches nonces upwards from zero and returns the first one whose
// digest meets the target. With more than one worker the nonce space is
// split into stripes, but the lowest satisfying nonce still wins so the
// seal is identical to a sequential search.
func (p *ProofOfWork) Mine(ctx context.Context, c block.Candidate) (block.Seal, error) {
	start := time.Now()
	attempts := atomic.NewUint64(0)

	var (
		h   hit
		err error
	)

	if p.workers == 1 {
		h, err = p.scan(ctx, c.Serialize(), 0, p.nonceLimit, nil, attempts)
	} else {
		h, err = p.mineParallel(ctx, c, attempts)
	}

	l := p.logger.WithFields(logrus.Fields{
		"difficulty": p.difficulty,
		"attempts":   attempts.Load(),
		"took":       time.Since(start),
	})

	if err != nil {
		l.WithError(err).Warn("mining aborted")
		return block.Seal{}, errors.Wrap(err, "mining block")
	}

	if !h.found {
		l.Warn("nonce space exhausted")
		return block.Seal{}, errors.Wrapf(consensus.ErrSearchSpaceExhausted, "difficulty %d", p.difficulty)
	}

	l.WithFields(logrus.Fields{
		"nonce": h.nonce,
		"hash":  h.hash.String(),
	}).Debug("sealed block")

	return block.Seal{Nonce: uint32(h.nonce), Hash: h.hash}, nil
}

func (p *ProofOfWork) mineParallel(ctx context.Context, c block.Candidate, attempts *atomic.Uint64) (hit, error) {
	stripe := uint64(p.batchSize)
	round := stripe * uint64(p.workers)

	for base := uint64(0); base < p.nonceLimit; base += round {
		best := atomic.NewUint64(noHit)
		hits := make([]hit, p.workers)

		g, gctx := errgroup.WithContext(ctx)

		for i := 0; i < p.workers; i++ {
			from := base + uint64(i)*stripe
			if from >= p.nonceLimit {
				break
			}

			to := from + stripe
			if to > p.nonceLimit {
				to = p.nonceLimit
			}

			i := i
			g.Go(func() error {
				h, err := p.scan(gctx, c.Serialize(), from, to, best, attempts)
				if err != nil {
					return err
				}

				if h.found {
					hits[i] = h
					lowerBest(best, h.nonce)
				}

				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return hit{}, err
		}

		if best.Load() == noHit {
			continue
		}

		for _, h := range hits {
			if h.found && h.nonce == best.Load() {
				return h, nil
			}
		}
	}

	return hit{}, nil
}

// scan tries every nonce in [from, to) in ascending order on the given
// pre-image buffer. A non-nil best aborts the scan once a lower nonce
// has been found elsewhere.
func (p *ProofOfWork) scan(ctx context.Context, preimage []byte, from, to uint64, best *atomic.Uint64, attempts *atomic.Uint64) (hit, error) {
	var n uint64

	defer func() {
		attempts.Add(n)
	}()

	for nonce := from; nonce < to; nonce++ {
		if n%pollInterval == 0 {
			if err := ctx.Err(); err != nil {
				return hit{}, err
			}

			if best != nil && best.Load() < nonce {
				return hit{}, nil
			}
		}

		block.PutNonce(preimage, uint32(nonce))
		h := p.Digest(preimage)
		n++

		if p.Meets(h) {
			return hit{nonce: nonce, hash: h, found: true}, nil
		}
	}

	return hit{}, nil
}

func lowerBest(best *atomic.Uint64, nonce uint64) {
	for {
		cur := best.Load()
		if nonce >= cur || best.CAS(cur, nonce) {
			return
		}
	}
}
