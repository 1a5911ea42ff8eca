package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/tcfw/powledger/pkg/chain"
	"github.com/tcfw/powledger/pkg/consensus/pow"
	"github.com/tcfw/powledger/pkg/storage"
)

type Chain struct {
	Difficulty   int
	HashFunction string
}

type Mining struct {
	Workers   int
	BatchSize uint32
}

type Storage struct {
	BloomCapacity      uint
	BloomFalsePositive float64
}

const (
	Cfg_chain_difficulty = "chain.difficulty"
	Cfg_chain_hash       = "chain.hash"

	Cfg_mining_workers   = "mining.workers"
	Cfg_mining_batchSize = "mining.batchSize"

	Cfg_storage_bloomCapacity      = "storage.bloomCapacity"
	Cfg_storage_bloomFalsePositive = "storage.bloomFalsePositive"
)

var (
	chainDefaults = map[string]interface{}{
		Cfg_chain_difficulty:           pow.DefaultDifficulty,
		Cfg_chain_hash:                 pow.DefaultHashFunction,
		Cfg_mining_workers:             pow.DefaultWorkers,
		Cfg_mining_batchSize:           pow.DefaultBatchSize,
		Cfg_storage_bloomCapacity:      10000,
		Cfg_storage_bloomFalsePositive: 0.01,
	}
)

func init() {
	for k, v := range chainDefaults {
		viper.SetDefault(k, v)
	}
}

func buildChainConfig() (*Chain, error) {
	c := &Chain{
		Difficulty:   viper.GetInt(Cfg_chain_difficulty),
		HashFunction: viper.GetString(Cfg_chain_hash),
	}

	if c.Difficulty < 0 || c.Difficulty > pow.MaxDifficulty {
		return nil, errors.Errorf("difficulty %d out of range", c.Difficulty)
	}

	return c, nil
}

func buildMiningConfig() (*Mining, error) {
	w := viper.GetInt(Cfg_mining_workers)
	if w < 1 {
		return nil, errors.Errorf("workers must be positive, got %d", w)
	}

	bs := viper.GetUint32(Cfg_mining_batchSize)
	if bs == 0 {
		return nil, errors.New("batch size must be positive")
	}

	return &Mining{Workers: w, BatchSize: bs}, nil
}

func buildStorageConfig() (*Storage, error) {
	return &Storage{
		BloomCapacity:      viper.GetUint(Cfg_storage_bloomCapacity),
		BloomFalsePositive: viper.GetFloat64(Cfg_storage_bloomFalsePositive),
	}, nil
}

// ConsensusOptions translates the chain and mining sections into proof
// of work options.
func (c *Config) ConsensusOptions() []pow.Option {
	return []pow.Option{
		pow.WithDifficulty(c.chain.Difficulty),
		pow.WithHashFunction(c.chain.HashFunction),
		pow.WithWorkers(c.mining.Workers),
		pow.WithBatchSize(c.mining.BatchSize),
	}
}

// NewChain builds an empty chain wired with the configured consensus and
// block store.
func (c *Config) NewChain() (*chain.Chain, error) {
	p, err := pow.New(c.ConsensusOptions()...)
	if err != nil {
		return nil, errors.Wrap(err, "building consensus")
	}

	s, err := storage.NewMemStore(
		storage.WithHashCode(p.HashCode()),
		storage.WithBloomEstimates(c.storage.BloomCapacity, c.storage.BloomFalsePositive),
	)
	if err != nil {
		return nil, errors.Wrap(err, "building block store")
	}

	return chain.New(chain.WithConsensus(p), chain.WithStore(s))
}
