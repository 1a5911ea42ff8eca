package pow

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcfw/powledger/pkg/block"
)

var (
	vectorPayloads = [][]byte{{0}, []byte("testing"), {1, 2, 3}, {0}, {0}}
	vectorNonces   = []uint32{66693, 6392, 67878, 6064, 80666}
)

func mineVector(t *testing.T, p *ProofOfWork) []block.Seal {
	seals := make([]block.Seal, 0, len(vectorPayloads))
	prev := block.ZeroHash

	for _, payload := range vectorPayloads {
		s, err := p.Mine(context.Background(), block.NewCandidate(prev, payload))
		require.NoError(t, err)

		seals = append(seals, s)
		prev = s.Hash
	}

	return seals
}

func TestReferenceVector(t *testing.T) {
	p := newPoW(t)

	for i, s := range mineVector(t, p) {
		assert.Equal(t, vectorNonces[i], s.Nonce, "block %d", i)
		assert.True(t, p.Meets(s.Hash), "block %d", i)
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	seq := mineVector(t, newPoW(t))

	for _, cfg := range []struct {
		workers int
		batch   uint32
	}{
		{2, DefaultBatchSize},
		{4, 1024},
		{3, 7},
	} {
		t.Run(fmt.Sprintf("%dx%d", cfg.workers, cfg.batch), func(t *testing.T) {
			p := newPoW(t, WithWorkers(cfg.workers), WithBatchSize(cfg.batch))
			assert.Equal(t, seq, mineVector(t, p))
		})
	}
}
