package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/multiformats/go-multibase"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tcfw/powledger/internal/config"
	"github.com/tcfw/powledger/internal/utils/logging"
	"github.com/tcfw/powledger/pkg/block"
	"github.com/tcfw/powledger/pkg/chain"
)

var (
	mineCmd = &cobra.Command{
		Use:   "mine [payload...]",
		Short: "seal payloads into a new chain and print it",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runMine,
	}

	verifyCmd = &cobra.Command{
		Use:   "verify [payload...]",
		Short: "seal payloads into a new chain and verify every block",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runVerify,
	}
)

func init() {
	mineCmd.Flags().Bool("hex", false, "payloads are hex encoded")
	mineCmd.Flags().StringP("encoding", "e", "base16", "multibase encoding of printed hashes")

	verifyCmd.Flags().Bool("hex", false, "payloads are hex encoded")
}

func runMine(cmd *cobra.Command, args []string) error {
	enc, err := hashEncoding(cmd)
	if err != nil {
		return err
	}

	ch, err := buildChain(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for it := ch.Iter(); it.Next(); {
		b := it.Block()

		h, err := encodeHash(enc, b.Hash())
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%d\t%d\t%s\t%x\n", it.Index(), b.Nonce(), h, b.Payload())
	}

	return nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	ch, err := buildChain(cmd, args)
	if err != nil {
		return err
	}

	if err := ch.Verify(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d blocks\n", ch.Len())

	return nil
}

func buildChain(cmd *cobra.Command, args []string) (*chain.Chain, error) {
	isHex, _ := cmd.Flags().GetBool("hex")

	payloads, err := parsePayloads(args, isHex)
	if err != nil {
		return nil, err
	}

	cfg, err := config.GetConfig()
	if err != nil {
		return nil, errors.Wrap(err, "loading config")
	}

	ch, err := cfg.NewChain()
	if err != nil {
		return nil, errors.Wrap(err, "initing chain")
	}

	for i, p := range payloads {
		if _, err := ch.AddContext(cmd.Context(), p); err != nil {
			logging.WithError(err).WithField("payload", i).Error("mining")
			return nil, err
		}
	}

	return ch, nil
}

func parsePayloads(args []string, isHex bool) ([][]byte, error) {
	payloads := make([][]byte, 0, len(args))

	for _, a := range args {
		if !isHex {
			payloads = append(payloads, []byte(a))
			continue
		}

		d, err := hex.DecodeString(a)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding payload %q", a)
		}
		payloads = append(payloads, d)
	}

	return payloads, nil
}

func hashEncoding(cmd *cobra.Command) (multibase.Encoding, error) {
	name, _ := cmd.Flags().GetString("encoding")

	enc, ok := multibase.Encodings[name]
	if !ok {
		return 0, errors.Errorf("unknown multibase encoding %q", name)
	}

	return enc, nil
}

func encodeHash(enc multibase.Encoding, h block.Hash) (string, error) {
	return multibase.Encode(enc, h.Bytes())
}
