package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command tree and is the only place that turns errors
// into exit codes.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	code := exitCode(err)
	if msg := diagnostic(err); msg != "" {
		fmt.Fprintln(stderr, msg)
	}
	return code
}

func newRootCmd() *cobra.Command {
	root := newGenerateCmd()
	root.AddCommand(newVersionCmd())
	root.AddCommand(newVerifyCmd())
	root.AddCommand(newWordlistCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "cointoss "+version)
		},
	}
}
