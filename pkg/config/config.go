// Package config resolves the strength selector and mode switches from a
// TOML file, the environment and command-line flags, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"

	"github.com/odvcencio/cointoss/pkg/entropy"
)

// EnvConfigPath names the variable that points at a TOML config file.
const EnvConfigPath = "COINTOSS_CONFIG"

// Error is a configuration problem detected before any entropy is read.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func errorf(cause error, format string, args ...any) error {
	return &Error{Message: fmt.Sprintf(format, args...), Cause: cause}
}

// IsConfigError reports whether err is (or wraps) an *Error.
func IsConfigError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// File is the on-disk TOML layout.
type File struct {
	Words          *int  `toml:"words"`
	AllowTestModes *bool `toml:"allow_test_modes"`
}

// Env is read from the process environment.
type Env struct {
	ConfigPath     string `env:"COINTOSS_CONFIG"`
	Words          *int   `env:"COINTOSS_WORDS"`
	AllowTestModes *bool  `env:"COINTOSS_ALLOW_TEST_MODES"`
}

// Flags holds the raw command-line values.
type Flags struct {
	Words          map[int]*bool
	ConfigPath     string
	AllowTestModes bool
	Seed           int64
	Verbose        bool
}

// Settings is the resolved configuration handed to the generator.
type Settings struct {
	Strength       entropy.Strength
	AllowTestModes bool
	// Seed pins the completion generator. Nil means seed from crypto/rand.
	Seed    *int64
	Verbose bool
}

// BindFlags registers the selector and mode flags on fs.
func BindFlags(fs *pflag.FlagSet, f *Flags) {
	strengths := entropy.Strengths()
	f.Words = make(map[int]*bool, len(strengths))
	for _, s := range strengths {
		n := s.WordCount()
		f.Words[n] = fs.Bool(fmt.Sprint(n), false, fmt.Sprintf("generate a %d-word mnemonic (%d bits of entropy)", n, s.Bits()))
	}
	fs.StringVar(&f.ConfigPath, "config", "", "path to a TOML config file (default: $"+EnvConfigPath+")")
	fs.BoolVar(&f.AllowTestModes, "allow-test-modes", false, "accept the fill and preload tokens and the --seed flag")
	fs.Int64Var(&f.Seed, "seed", 0, "seed for randomized completion (requires --allow-test-modes)")
	fs.BoolVar(&f.Verbose, "verbose", false, "log checksum diagnostics to stderr")
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadFile decodes a TOML config file. Unknown keys are rejected so a typo
// cannot silently fall back to a default.
func LoadFile(path string) (File, error) {
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return File{}, errorf(err, "config file %s", path)
		}
		return File{}, errorf(err, "decode config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return File{}, errorf(nil, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return f, nil
}

// Resolve layers file, environment and flags into Settings. fs must be the
// set f was bound to, after parsing.
func Resolve(fs *pflag.FlagSet, f Flags) (Settings, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Settings{}, errorf(err, "environment")
	}

	var file File
	path := f.ConfigPath
	if path == "" {
		path = e.ConfigPath
	}
	if path != "" {
		loaded, err := LoadFile(path)
		if err != nil {
			return Settings{}, err
		}
		file = loaded
	}

	words, err := selectWords(f, e, file)
	if err != nil {
		return Settings{}, err
	}
	s, err := entropy.FromWordCount(words)
	if err != nil {
		return Settings{}, errorf(err, "word count %d", words)
	}

	out := Settings{Strength: s, Verbose: f.Verbose}
	switch {
	case fs.Changed("allow-test-modes"):
		out.AllowTestModes = f.AllowTestModes
	case e.AllowTestModes != nil:
		out.AllowTestModes = *e.AllowTestModes
	case file.AllowTestModes != nil:
		out.AllowTestModes = *file.AllowTestModes
	}

	if fs.Changed("seed") {
		if !out.AllowTestModes {
			return Settings{}, errorf(nil, "--seed requires --allow-test-modes")
		}
		seed := f.Seed
		out.Seed = &seed
	}
	return out, nil
}

// selectWords applies the selector rules: two or more selector flags
// conflict, one flag wins over the environment and the file, and no
// selector anywhere is an error.
func selectWords(f Flags, e Env, file File) (int, error) {
	var chosen []int
	for _, s := range entropy.Strengths() {
		n := s.WordCount()
		if p := f.Words[n]; p != nil && *p {
			chosen = append(chosen, n)
		}
	}
	switch {
	case len(chosen) > 1:
		names := make([]string, len(chosen))
		for i, n := range chosen {
			names[i] = fmt.Sprintf("--%d", n)
		}
		return 0, errorf(nil, "conflicting strength selectors: %s", strings.Join(names, ", "))
	case len(chosen) == 1:
		return chosen[0], nil
	case e.Words != nil:
		return *e.Words, nil
	case file.Words != nil:
		return *file.Words, nil
	}
	return 0, errorf(nil, "no strength selector: pass one of --12, --15, --18, --21 or --24")
}
