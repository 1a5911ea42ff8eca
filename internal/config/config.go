package config

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/tcfw/powledger/internal/utils/logging"
)

const (
	Cfg_verbose = "verbose"
)

var (
	defaults = map[string]interface{}{
		Cfg_verbose: false,
	}
)

func init() {
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
}

func GetConfig() (*Config, error) {
	viper.SetConfigType("yaml")
	viper.SetConfigName("powledger")
	viper.AddConfigPath("/etc/powledger/")
	viper.AddConfigPath("$HOME/.powledger")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("POWLEDGER")
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error
			logging.Entry().Debug("no config found")
		} else {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	return build()
}

func build() (*Config, error) {
	var err error

	c := &Config{}

	c.chain, err = buildChainConfig()
	if err != nil {
		return nil, errors.Wrap(err, "chain config")
	}

	c.mining, err = buildMiningConfig()
	if err != nil {
		return nil, errors.Wrap(err, "mining config")
	}

	c.storage, err = buildStorageConfig()
	if err != nil {
		return nil, errors.Wrap(err, "storage config")
	}

	if viper.GetBool(Cfg_verbose) {
		logging.SetLevel(logrus.DebugLevel)
		logging.Entry().WithField("level", "debug").Debug("setting log level")
	}

	return c, nil
}

type Config struct {
	chain   *Chain
	mining  *Mining
	storage *Storage
}

func (c *Config) Chain() *Chain {
	return c.chain
}

func (c *Config) Mining() *Mining {
	return c.mining
}

func (c *Config) Storage() *Storage {
	return c.storage
}

// Settings returns every effective key, for display.
func Settings() map[string]interface{} {
	return viper.AllSettings()
}
