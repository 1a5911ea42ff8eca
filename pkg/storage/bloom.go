package storage

import (
	"github.com/bits-and-blooms/bloom/v3"
)

const (
	defaultBloomCapacity = 10000
	falsePositive        = 0.01
)

type payloadFilter struct {
	f *bloom.BloomFilter
}

func newPayloadFilter(n uint, fp float64) *payloadFilter {
	return &payloadFilter{bloom.NewWithEstimates(n, fp)}
}

func (p *payloadFilter) Add(payload []byte) {
	p.f.Add(payload)
}

func (p *payloadFilter) Test(payload []byte) bool {
	return p.f.Test(payload)
}

// MarshalBinary snapshots the filter, e.g. to hand it to a light client.
func (p *payloadFilter) MarshalBinary() ([]byte, error) {
	return p.f.GobEncode()
}

// BloomContains checks a snapshot produced by MemStore.PayloadFilter.
func BloomContains(b []byte, payload []byte) (bool, error) {
	f := bloom.NewWithEstimates(defaultBloomCapacity, falsePositive)

	if err := f.GobDecode(b); err != nil {
		return false, err
	}

	return f.Test(payload), nil
}
