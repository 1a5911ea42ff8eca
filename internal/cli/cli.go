package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tcfw/powledger/internal/config"
	"github.com/tcfw/powledger/pkg/consensus/pow"
)

var (
	rootCmd = &cobra.Command{
		Use:           "powledger",
		Short:         "proof of work ledger",
		SilenceUsage: true,
	}
)

func init() {
	f := rootCmd.PersistentFlags()

	f.BoolP("verbose", "v", false, "increase verbosity")
	f.IntP("difficulty", "d", pow.DefaultDifficulty, "required leading zero bits")
	f.String("hash", pow.DefaultHashFunction, "multihash name of the digest function")
	f.IntP("workers", "w", pow.DefaultWorkers, "parallel mining workers")

	viper.BindPFlag(config.Cfg_verbose, f.Lookup("verbose"))
	viper.BindPFlag(config.Cfg_chain_difficulty, f.Lookup("difficulty"))
	viper.BindPFlag(config.Cfg_chain_hash, f.Lookup("hash"))
	viper.BindPFlag(config.Cfg_mining_workers, f.Lookup("workers"))

	regCommands()
}

func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}
