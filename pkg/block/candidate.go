package block

// Candidate is the unsealed snapshot handed to a consensus engine. It
// keeps a private copy of the payload so mining always works on the
// bytes the caller passed in, whatever happens to the caller's slice.
type Candidate struct {
	previousHash Hash
	payload      []byte
}

// Seal is the outcome of mining a candidate.
type Seal struct {
	Nonce uint32
	Hash  Hash
}

func NewCandidate(previousHash Hash, payload []byte) Candidate {
	return Candidate{
		previousHash: previousHash,
		payload:      clone(payload),
	}
}

func (c Candidate) PreviousHash() Hash {
	return c.previousHash
}

func (c Candidate) Payload() []byte {
	return clone(c.payload)
}

// Serialize returns the pre-image of the candidate with a zero nonce.
func (c Candidate) Serialize() []byte {
	return Serialize(0, c.previousHash, c.payload)
}

// Preimage returns the pre-image of the candidate for the given nonce.
func (c Candidate) Preimage(nonce uint32) []byte {
	return Serialize(nonce, c.previousHash, c.payload)
}

// Seal builds the immutable block from the candidate and its mined seal.
func (c Candidate) Seal(s Seal) *Block {
	return &Block{
		nonce:        s.Nonce,
		previousHash: c.previousHash,
		payload:      clone(c.payload),
		hash:         s.Hash,
	}
}
