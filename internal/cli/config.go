package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tcfw/powledger/internal/config"
	"gopkg.in/yaml.v3"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		RunE:  runConfig,
	}
)

func runConfig(cmd *cobra.Command, args []string) error {
	if _, err := config.GetConfig(); err != nil {
		return err
	}

	b, err := yaml.Marshal(config.Settings())
	if err != nil {
		return errors.Wrap(err, "marshalling settings")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s", b)

	return nil
}
