package main

import (
	"fmt"
	"io"

	"github.com/odvcencio/cointoss/pkg/entropy"
)

// textPrompter writes collection prompts for a human at a terminal.
type textPrompter struct {
	w io.Writer
}

func (p *textPrompter) Begin(total int, allowTestModes bool) {
	fmt.Fprintf(p.w, "Please input %d coin flips (%s for heads, %s for tails):\n", total, entropy.TokenHeads, entropy.TokenTails)
	fmt.Fprintf(p.w, "Enter '%s' to quit flipping and randomize the rest.\n", entropy.TokenQuitFill)
	fmt.Fprintf(p.w, "Enter '%s' to quit the program.\n", entropy.TokenQuitQuit)
	if allowTestModes {
		fmt.Fprintf(p.w, "Enter '%s' to load a predefined binary stream for testing.\n", entropy.TokenPreload)
		fmt.Fprintf(p.w, "Enter '%s' to fill the remaining flips with heads.\n", entropy.TokenFill)
	}
}

func (p *textPrompter) Prompt(flip int) {
	fmt.Fprintf(p.w, "Flip %d: ", flip)
}

func (p *textPrompter) Rejected(token string, allowTestModes bool) {
	if allowTestModes {
		fmt.Fprintf(p.w, "Invalid input %q. Please enter '%s', '%s', '%s', '%s', '%s' or '%s'.\n",
			token, entropy.TokenHeads, entropy.TokenTails, entropy.TokenQuitFill, entropy.TokenQuitQuit, entropy.TokenPreload, entropy.TokenFill)
		return
	}
	fmt.Fprintf(p.w, "Invalid input %q. Please enter '%s', '%s', '%s' or '%s'.\n",
		token, entropy.TokenHeads, entropy.TokenTails, entropy.TokenQuitFill, entropy.TokenQuitQuit)
}

func (p *textPrompter) Accepted(ev entropy.Event) {
	switch ev {
	case entropy.EventRandomFill:
		fmt.Fprintln(p.w, "Randomizing the remaining flips...")
	case entropy.EventDeterministicFill:
		fmt.Fprintln(p.w, "Filling the remaining flips with heads...")
	case entropy.EventFixedPreset:
		fmt.Fprintln(p.w, "Preloading binary stream...")
	case entropy.EventAbort:
		fmt.Fprintln(p.w, "Exiting the program.")
	}
}
