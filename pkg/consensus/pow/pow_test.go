package pow

import (
	"context"
	"testing"
	"time"

	"github.com/multiformats/go-multihash"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcfw/powledger/pkg/block"
	"github.com/tcfw/powledger/pkg/consensus"
)

func newPoW(t *testing.T, opts ...Option) *ProofOfWork {
	p, err := New(opts...)
	require.NoError(t, err)
	return p
}

func TestNewDefaults(t *testing.T) {
	p := newPoW(t)

	assert.Equal(t, DefaultDifficulty, p.Difficulty())
	assert.Equal(t, DefaultWorkers, p.Workers())
	assert.Equal(t, uint64(multihash.SHA2_256), p.HashCode())
}

func TestNewInvalidOptions(t *testing.T) {
	tests := map[string]struct {
		opt Option
		err error
	}{
		"negative difficulty": {WithDifficulty(-1), ErrInvalidDifficulty},
		"difficulty too high": {WithDifficulty(33), ErrInvalidDifficulty},
		"unknown hash":        {WithHashFunction("not-a-hash"), ErrUnsupportedHash},
		"short digest":        {WithHashFunction("sha1"), ErrUnsupportedHash},
		"no workers":          {WithWorkers(0), ErrInvalidOption},
		"empty batch":         {WithBatchSize(0), ErrInvalidOption},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := New(tt.opt)
			assert.True(t, errors.Is(err, tt.err), "got %v", err)
		})
	}
}

func TestMeets(t *testing.T) {
	tests := []struct {
		difficulty int
		hash       block.Hash
		want       bool
	}{
		{16, block.Hash{0, 0, 0xff, 0xff}, true},
		{16, block.Hash{0, 1}, false},
		{16, block.Hash{0x80}, false},
		{17, block.Hash{0, 0, 0x7f}, true},
		{17, block.Hash{0, 0, 0x80}, false},
		{0, block.Hash{0xff, 0xff, 0xff, 0xff}, true},
		{32, block.Hash{0, 0, 0, 0, 0xff}, true},
		{32, block.Hash{0, 0, 0, 1}, false},
	}

	for _, tt := range tests {
		p := newPoW(t, WithDifficulty(tt.difficulty))
		assert.Equal(t, tt.want, p.Meets(tt.hash), "difficulty %d hash %s", tt.difficulty, tt.hash)
	}
}

func TestMineAndValidate(t *testing.T) {
	p := newPoW(t, WithDifficulty(8))
	c := block.NewCandidate(block.ZeroHash, []byte("hello"))

	s, err := p.Mine(context.Background(), c)
	require.NoError(t, err)

	b := c.Seal(s)

	assert.True(t, p.Validate(b))
	assert.Equal(t, p.Digest(c.Preimage(s.Nonce)), s.Hash)
	assert.Zero(t, s.Hash[0])
}

func TestMineIsFirstSatisfyingNonce(t *testing.T) {
	p := newPoW(t, WithDifficulty(6))
	c := block.NewCandidate(block.Hash{7}, []byte{1, 2, 3})

	s, err := p.Mine(context.Background(), c)
	require.NoError(t, err)

	for n := uint32(0); n < s.Nonce; n++ {
		assert.False(t, p.Meets(p.Digest(c.Preimage(n))), "nonce %d already satisfies", n)
	}
}

func TestMineDeterministic(t *testing.T) {
	p := newPoW(t, WithDifficulty(10))
	c := block.NewCandidate(block.Hash{1, 2, 3}, []byte("same input"))

	s1, err := p.Mine(context.Background(), c)
	require.NoError(t, err)

	s2, err := p.Mine(context.Background(), block.NewCandidate(block.Hash{1, 2, 3}, []byte("same input")))
	require.NoError(t, err)

	assert.Equal(t, s1, s2)
}

func TestValidateTampered(t *testing.T) {
	p := newPoW(t, WithDifficulty(8))
	c := block.NewCandidate(block.ZeroHash, []byte("payload"))

	s, err := p.Mine(context.Background(), c)
	require.NoError(t, err)

	sealed := c.Seal(s)
	require.True(t, p.Validate(sealed))

	badHash := s.Hash
	badHash[31] ^= 0x01

	tampered := map[string]*block.Block{
		"payload": block.New(sealed.PreviousHash(), []byte("Payload"), sealed.Nonce(), sealed.Hash()),
		"nonce":   block.New(sealed.PreviousHash(), sealed.Payload(), sealed.Nonce()+1, sealed.Hash()),
		"hash":    block.New(sealed.PreviousHash(), sealed.Payload(), sealed.Nonce(), badHash),
		"prev":    block.New(block.Hash{1}, sealed.Payload(), sealed.Nonce(), sealed.Hash()),
	}

	for name, b := range tampered {
		assert.False(t, p.Validate(b), name)
	}
}

func TestValidateRejectsMissingWork(t *testing.T) {
	p := newPoW(t, WithDifficulty(16))
	c := block.NewCandidate(block.ZeroHash, []byte{0})

	// a self-consistent hash that does not meet the target
	var b *block.Block
	for n := uint32(0); ; n++ {
		h := p.Digest(c.Preimage(n))
		if !p.Meets(h) {
			b = block.New(block.ZeroHash, []byte{0}, n, h)
			break
		}
	}

	assert.False(t, p.Validate(b))
	assert.False(t, p.Validate(nil))
}

func TestAlternativeHashFunctions(t *testing.T) {
	sha2 := newPoW(t, WithDifficulty(8))

	for _, name := range []string{"sha3-256", "blake2b-256"} {
		t.Run(name, func(t *testing.T) {
			p := newPoW(t, WithDifficulty(8), WithHashFunction(name))
			assert.Equal(t, multihash.Names[name], p.HashCode())

			c := block.NewCandidate(block.ZeroHash, []byte(name))
			s, err := p.Mine(context.Background(), c)
			require.NoError(t, err)

			b := c.Seal(s)
			assert.True(t, p.Validate(b))
			assert.False(t, sha2.Validate(b))
		})
	}
}

func TestSupportedHashFunctions(t *testing.T) {
	assert.ElementsMatch(t, []string{"sha2-256", "sha3-256", "blake2b-256"}, SupportedHashFunctions())
}

func TestMineSearchSpaceExhausted(t *testing.T) {
	for _, workers := range []int{1, 3} {
		p := newPoW(t, WithDifficulty(MaxDifficulty), WithWorkers(workers), WithBatchSize(10))
		p.nonceLimit = 64

		_, err := p.Mine(context.Background(), block.NewCandidate(block.ZeroHash, []byte{1}))
		assert.True(t, errors.Is(err, consensus.ErrSearchSpaceExhausted), "workers %d: %v", workers, err)
	}
}

func TestMineCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		p := newPoW(t, WithDifficulty(MaxDifficulty), WithWorkers(workers))

		_, err := p.Mine(ctx, block.NewCandidate(block.ZeroHash, nil))
		assert.True(t, errors.Is(err, context.Canceled), "workers %d: %v", workers, err)
	}
}

func TestMineDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	p := newPoW(t, WithDifficulty(MaxDifficulty), WithWorkers(2), WithBatchSize(1<<20))

	_, err := p.Mine(ctx, block.NewCandidate(block.ZeroHash, []byte("never")))
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "%v", err)
}
