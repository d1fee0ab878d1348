package main

import (
	"bufio"
	"fmt"

	"github.com/odvcencio/cointoss/pkg/mnemonic"
	"github.com/spf13/cobra"
)

func newWordlistCmd() *cobra.Command {
	var fingerprint bool
	var numbered bool

	cmd := &cobra.Command{
		Use:   "wordlist",
		Short: "Print the built-in wordlist or its SHA-256 fingerprint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := bufio.NewWriter(cmd.OutOrStdout())
			if fingerprint {
				fmt.Fprintf(out, "%s  english.txt\n", mnemonic.Fingerprint())
				return out.Flush()
			}
			for i, w := range mnemonic.Words() {
				if numbered {
					fmt.Fprintf(out, "%4d %s\n", i, w)
				} else {
					fmt.Fprintln(out, w)
				}
			}
			return out.Flush()
		},
	}

	cmd.Flags().BoolVar(&fingerprint, "fingerprint", false, "print the SHA-256 of the list (one word per line) instead of the words")
	cmd.Flags().BoolVar(&numbered, "numbered", false, "prefix each word with its index")
	return cmd
}
