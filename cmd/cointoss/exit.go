package main

import (
	"errors"

	"github.com/odvcencio/cointoss/pkg/config"
	"github.com/odvcencio/cointoss/pkg/entropy"
	"github.com/odvcencio/cointoss/pkg/invariant"
)

// Exit codes.
const (
	exitOK        = 0
	exitFailure   = 1
	exitConfig    = 2
	exitAborted   = 3
	exitInvariant = 4
)

// exitCode maps an error returned by the command tree to a process exit
// code. Invariant violations take precedence over every other class.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case invariant.Is(err):
		return exitInvariant
	case errors.Is(err, entropy.ErrAborted):
		return exitAborted
	case config.IsConfigError(err):
		return exitConfig
	default:
		return exitFailure
	}
}

func diagnostic(err error) string {
	switch {
	case err == nil:
		return ""
	case invariant.Is(err):
		return "fatal: " + err.Error() + "; no mnemonic was produced"
	case errors.Is(err, entropy.ErrAborted):
		return "aborted: no mnemonic was produced"
	case config.IsConfigError(err):
		return "configuration error: " + err.Error()
	default:
		return "error: " + err.Error()
	}
}
