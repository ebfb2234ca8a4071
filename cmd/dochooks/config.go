package main

import (
	"github.com/iVampireSP/dochooks/internal/logging"
)

// defaultOutput is the file written into every package with annotated types.
const defaultOutput = "dochooks_gen.go"

// Config holds dochooks configuration, populated from conventions,
// .dochooks.yaml, DOCHOOKS_* environment variables and flags.
type Config struct {
	Module string `koanf:"-"` // from go.mod
	Root   string `koanf:"-"` // directory containing go.mod
	Dir    string `koanf:"-"` // directory package patterns are resolved from

	Output  string         `koanf:"output"`
	Exclude []string       `koanf:"exclude"` // doublestar globs over module-relative package dirs
	Log     logging.Config `koanf:"log"`
}

// defaultConfig returns the configuration used when nothing overrides it.
func defaultConfig() *Config {
	return &Config{
		Output:  defaultOutput,
		Exclude: []string{},
		Log:     *logging.NewDefaultConfig(),
	}
}
