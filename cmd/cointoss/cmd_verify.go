package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/odvcencio/cointoss/pkg/entropy"
	"github.com/odvcencio/cointoss/pkg/phrase"
	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [word...]",
		Short: "Check the checksum of an existing mnemonic",
		Long:  "Verifies the words given as arguments, or read from stdin when none are given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read mnemonic: %w", err)
				}
				text = string(data)
			}

			words := strings.Fields(text)
			for i, w := range words {
				words[i] = entropy.NormalizeToken(w)
			}

			s, err := phrase.Verify(words)
			if err != nil {
				return err
			}

			fmt.Fprintf(
				cmd.OutOrStdout(),
				"ok: valid %d-word mnemonic (%d bits of entropy, %d checksum bits)\n",
				len(words),
				s.Bits(),
				s.ChecksumBits(),
			)
			return nil
		},
	}
}
