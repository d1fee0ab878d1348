package main

import (
	"fmt"
	"io"
	"log"

	"github.com/odvcencio/cointoss/pkg/checksum"
	"github.com/odvcencio/cointoss/pkg/config"
	"github.com/odvcencio/cointoss/pkg/entropy"
	"github.com/odvcencio/cointoss/pkg/phrase"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var flags config.Flags

	cmd := &cobra.Command{
		Use:   "cointoss --12|--15|--18|--21|--24",
		Short: "Generate a BIP39 mnemonic from coin flips",
		Long: "Reads one coin flip per line (h or t) until the selected entropy size is\n" +
			"collected, appends the SHA-256 checksum and prints the mnemonic on stdout.\n" +
			"Prompts go to stderr.",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Resolve(cmd.Flags(), flags)
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), settings.Verbose)

			seed, err := completionSeed(settings)
			if err != nil {
				return err
			}
			collector, err := entropy.NewCollector(settings.Strength, entropy.Options{
				Rand:           entropy.NewRand(seed),
				AllowTestModes: settings.AllowTestModes,
			})
			if err != nil {
				return err
			}

			bits, err := entropy.Collect(
				cmd.Context(),
				entropy.NewLineSource(cmd.InOrStdin()),
				collector,
				&textPrompter{w: cmd.ErrOrStderr()},
			)
			if err != nil {
				return err
			}

			trace, err := phrase.Generate(bits, settings.Strength)
			if err != nil {
				return err
			}
			logger.Printf("packed buffer length (in bytes): %d", len(trace.Packed))
			logger.Printf("sha256 of packed entropy: %s", checksum.DigestHex(trace.Packed))
			logger.Printf("checksum size (in bits): %d", len(trace.ChecksumBits))
			logger.Printf("extracted checksum bits: %s", bitString(trace.ChecksumBits))

			fmt.Fprintln(cmd.OutOrStdout(), trace.Mnemonic.String())
			return nil
		},
	}

	// Local flags only: subcommands do not take a strength selector.
	config.BindFlags(cmd.Flags(), &flags)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		// Subcommands inherit this func; only the generate flags are configuration.
		if c != cmd {
			return err
		}
		return &config.Error{Message: "flags", Cause: err}
	})
	return cmd
}

func completionSeed(s config.Settings) (entropy.Seed, error) {
	if s.Seed != nil {
		return entropy.SeedFromInt(*s.Seed), nil
	}
	return entropy.NewSeed()
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	if !verbose {
		w = io.Discard
	}
	return log.New(w, "cointoss: ", 0)
}

func bitString(bits []byte) string {
	out := make([]byte, len(bits))
	for i, b := range bits {
		out[i] = '0' + b
	}
	return string(out)
}
