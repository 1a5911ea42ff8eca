package block

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
)

const (
	HashSize  = 32
	NonceSize = 4

	// HeaderSize is the fixed-width prefix of every pre-image: the
	// nonce followed by the previous hash.
	HeaderSize = NonceSize + HashSize
)

type Hash [HashSize]byte

var ZeroHash Hash

func (h Hash) IsZero() bool {
	return h == ZeroHash
}

func (h Hash) Bytes() []byte {
	return h[:]
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Block is a sealed ledger record. Once constructed its fields are never
// written again; all accessors return values or copies.
type Block struct {
	nonce        uint32
	previousHash Hash
	payload      []byte
	hash         Hash
}

// New builds a block from externally sealed fields verbatim. It does
// not mine or validate; callers must run the consensus Validate
// themselves before trusting the result.
func New(previousHash Hash, payload []byte, nonce uint32, hash Hash) *Block {
	return &Block{
		nonce:        nonce,
		previousHash: previousHash,
		payload:      clone(payload),
		hash:         hash,
	}
}

func (b *Block) Nonce() uint32 {
	return b.nonce
}

func (b *Block) PreviousHash() Hash {
	return b.previousHash
}

// Payload returns a copy of the block data
func (b *Block) Payload() []byte {
	return clone(b.payload)
}

func (b *Block) Hash() Hash {
	return b.hash
}

func (b *Block) IsGenesis() bool {
	return b.previousHash.IsZero()
}

// Serialize returns the hashing pre-image of the block.
func (b *Block) Serialize() []byte {
	return Serialize(b.nonce, b.previousHash, b.payload)
}

// Equal reports whether both blocks carry identical fields.
func (b *Block) Equal(o *Block) bool {
	if b == nil || o == nil {
		return b == o
	}

	return b.nonce == o.nonce &&
		b.previousHash == o.previousHash &&
		b.hash == o.hash &&
		bytes.Equal(b.payload, o.payload)
}

// Serialize concatenates the big-endian nonce, the raw previous hash and
// the raw payload. The layout is the pre-image of every block digest so
// it must never change.
func Serialize(nonce uint32, previousHash Hash, payload []byte) []byte {
	buf := make([]byte, HeaderSize+len(payload))

	binary.BigEndian.PutUint32(buf[:NonceSize], nonce)
	copy(buf[NonceSize:HeaderSize], previousHash[:])
	copy(buf[HeaderSize:], payload)

	return buf
}

// PutNonce overwrites the nonce prefix of a pre-image produced by
// Serialize.
func PutNonce(preimage []byte, nonce uint32) {
	binary.BigEndian.PutUint32(preimage[:NonceSize], nonce)
}

func clone(b []byte) []byte {
	if b == nil {
		return []byte{}
	}

	c := make([]byte, len(b))
	copy(c, b)
	return c
}
