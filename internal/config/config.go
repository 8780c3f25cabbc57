// Package config loads the fathom.toml analysis manifest used by front-end
// drivers and the CLI.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"fortio.org/safecast"

	"fathom/internal/ir"
	"fathom/internal/vars"
)

// Config is the parsed manifest.
type Config struct {
	Analysis AnalysisConfig `toml:"analysis"`
}

// AnalysisConfig configures how CFGs are built and prepared for analysis.
type AnalysisConfig struct {
	// Precision is the tracked precision: "num", "ptr" or "arr".
	Precision string `toml:"precision"`
	// Simplify controls whether CFGs are simplified before analysis.
	Simplify bool `toml:"simplify"`
	// VarStart is the first index handed out by variable factories.
	VarStart int64 `toml:"var_start"`
}

// Default returns the configuration used when no manifest is present.
func Default() Config {
	return Config{
		Analysis: AnalysisConfig{
			Precision: "num",
			Simplify:  true,
			VarStart:  1,
		},
	}
}

// Load reads and validates a manifest file. Keys that are absent keep their
// defaults; unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return Config{}, fmt.Errorf("unknown key %q in %q", undec[0], path)
	}
	if _, err := cfg.Analysis.TrackedPrecision(); err != nil {
		return Config{}, err
	}
	if _, err := cfg.Analysis.FactoryStart(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// TrackedPrecision maps the precision key to its IR value.
func (a AnalysisConfig) TrackedPrecision() (ir.Precision, error) {
	switch a.Precision {
	case "", "num":
		return ir.Num, nil
	case "ptr":
		return ir.Ptr, nil
	case "arr":
		return ir.Arr, nil
	default:
		return ir.Num, fmt.Errorf("invalid precision %q (want num, ptr or arr)", a.Precision)
	}
}

// FactoryStart returns the configured first variable index.
func (a AnalysisConfig) FactoryStart() (vars.Index, error) {
	start, err := safecast.Conv[uint64](a.VarStart)
	if err != nil || start == 0 {
		return 0, fmt.Errorf("invalid var_start %d (want a positive integer)", a.VarStart)
	}
	return vars.Index(start), nil
}
