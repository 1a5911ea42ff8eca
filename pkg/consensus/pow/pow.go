package pow

import (
	"encoding/binary"

	"github.com/multiformats/go-multihash"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tcfw/powledger/internal/utils/logging"
	"github.com/tcfw/powledger/pkg/block"
	"github.com/tcfw/powledger/pkg/consensus"
)

const (
	DefaultDifficulty = 16
	MaxDifficulty     = 32

	DefaultWorkers   = 1
	DefaultBatchSize = 1 << 16

	nonceSpace = uint64(1) << 32
)

var (
	_ consensus.Consensus = (*ProofOfWork)(nil)

	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrUnsupportedHash   = errors.New("unsupported hash function")
	ErrInvalidOption     = errors.New("invalid option")
)

// ProofOfWork seals blocks by brute forcing a nonce until the block
// digest has at least difficulty leading zero bits.
type ProofOfWork struct {
	difficulty uint
	hashCode   uint64
	hash       HashFunc

	workers   int
	batchSize uint32

	// nonceLimit bounds the search; the full 32-bit space unless
	// shrunk by tests.
	nonceLimit uint64

	logger *logrus.Entry
}

func New(opts ...Option) (*ProofOfWork, error) {
	p := &ProofOfWork{
		difficulty: DefaultDifficulty,
		hashCode:   multihash.SHA2_256,
		hash:       hashFuncs[multihash.SHA2_256],
		workers:    DefaultWorkers,
		batchSize:  DefaultBatchSize,
		nonceLimit: nonceSpace,
		logger:     logging.Component("pow"),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *ProofOfWork) Difficulty() int {
	return int(p.difficulty)
}

func (p *ProofOfWork) Workers() int {
	return p.workers
}

func (p *ProofOfWork) HashCode() uint64 {
	return p.hashCode
}

func (p *ProofOfWork) Serialize(b *block.Block) []byte {
	return b.Serialize()
}

// Digest hashes a pre-image with the configured hash function.
func (p *ProofOfWork) Digest(preimage []byte) block.Hash {
	return block.Hash(p.hash(preimage))
}

// Meets reports whether the top difficulty bits of h are all zero.
func (p *ProofOfWork) Meets(h block.Hash) bool {
	return binary.BigEndian.Uint32(h[:4])>>(32-p.difficulty) == 0
}

func (p *ProofOfWork) Validate(b *block.Block) bool {
	if b == nil {
		return false
	}

	h := p.Digest(p.Serialize(b))

	return h == b.Hash() && p.Meets(h)
}
