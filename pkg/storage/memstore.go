package storage

import (
	"context"
	"sync"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"github.com/pkg/errors"
	"github.com/tcfw/powledger/pkg/block"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	_ Store = (*MemStore)(nil)
)

type Option func(*MemStore) error

// WithHashCode sets the multihash code used when deriving block CIDs.
// It should match the consensus engine that sealed the blocks.
func WithHashCode(code uint64) Option {
	return func(m *MemStore) error {
		if _, ok := multihash.Codes[code]; !ok {
			return errors.Errorf("unknown multihash code 0x%x", code)
		}
		m.hashCode = code
		return nil
	}
}

func WithBloomEstimates(n uint, fp float64) Option {
	return func(m *MemStore) error {
		if n == 0 || fp <= 0 || fp >= 1 {
			return errors.Errorf("invalid bloom estimates n=%d fp=%f", n, fp)
		}
		m.bloomN = n
		m.bloomFP = fp
		return nil
	}
}

type storedBlock struct {
	Nonce    uint32 `msgpack:"n"`
	Previous []byte `msgpack:"p"`
	Payload  []byte `msgpack:"d"`
	Hash     []byte `msgpack:"h"`
}

type MemStore struct {
	mu sync.RWMutex

	hashCode uint64
	bloomN   uint
	bloomFP  float64

	objects  map[cid.Cid][]byte
	payloads *payloadFilter
}

func NewMemStore(opts ...Option) (*MemStore, error) {
	m := &MemStore{
		hashCode: multihash.SHA2_256,
		bloomN:   defaultBloomCapacity,
		bloomFP:  falsePositive,
		objects:  make(map[cid.Cid][]byte),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	m.payloads = newPayloadFilter(m.bloomN, m.bloomFP)

	return m, nil
}

func (m *MemStore) BlockID(h block.Hash) (cid.Cid, error) {
	mh, err := multihash.Encode(h.Bytes(), m.hashCode)
	if err != nil {
		return cid.Undef, errors.Wrap(err, "encoding multihash")
	}

	return cid.NewCidV1(cid.Raw, mh), nil
}

func (m *MemStore) PutBlock(_ context.Context, b *block.Block) (cid.Cid, error) {
	id, err := m.BlockID(b.Hash())
	if err != nil {
		return cid.Undef, err
	}

	prev := b.PreviousHash()
	hash := b.Hash()
	payload := b.Payload()

	d, err := msgpack.Marshal(&storedBlock{
		Nonce:    b.Nonce(),
		Previous: prev[:],
		Payload:  payload,
		Hash:     hash[:],
	})
	if err != nil {
		return cid.Undef, errors.Wrap(err, "marshalling block")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[id] = d
	m.payloads.Add(payload)

	return id, nil
}

func (m *MemStore) GetBlock(_ context.Context, id cid.Cid) (*block.Block, error) {
	m.mu.RLock()
	d, ok := m.objects[id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	sb := &storedBlock{}
	if err := msgpack.Unmarshal(d, sb); err != nil {
		return nil, errors.Wrap(err, "unmarshalling block")
	}

	if len(sb.Previous) != block.HashSize || len(sb.Hash) != block.HashSize {
		return nil, ErrCorruptBlock
	}

	var prev, hash block.Hash
	copy(prev[:], sb.Previous)
	copy(hash[:], sb.Hash)

	return block.New(prev, sb.Payload, sb.Nonce, hash), nil
}

func (m *MemStore) MayContainPayload(payload []byte) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.payloads.Test(payload)
}

// PayloadFilter returns a serialized snapshot of the payload bloom filter.
func (m *MemStore) PayloadFilter() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.payloads.MarshalBinary()
}

func (m *MemStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.objects)
}
