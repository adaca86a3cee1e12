// Package config loads ifppc's settings - the socket multiset cap, the
// reserved Hidden action name, a Version string, and watch-mode settings -
// from an optional YAML file, falling back to built-in defaults when none
// is given. The CLI reads only the Watch settings: the socket cap and the
// Hidden action name in effect are the constants atoms.MaxSockets and
// emit.HiddenAction, and Version is not read by any package.
package config

import (
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds every setting an operator may put in the config file.
type Config struct {
	// SocketCap is the maximum total linked sockets a SocketGroup
	// condition may request before it is unviable (spec.md default: 6).
	SocketCap int `koanf:"socket_cap"`
	// HiddenAction names the reserved boolean action that selects the
	// Show/Hide header instead of being printed to the native output.
	HiddenAction string `koanf:"hidden_action"`
	// Version is the leading Version instruction emitted/expected in
	// round-tripped source (original_source's InstructionVersion).
	Version string `koanf:"version"`
	// Watch configures the CLI's fsnotify-backed --watch mode.
	Watch WatchConfig `koanf:"watch"`
}

// WatchConfig tunes the file-watch driver loop.
type WatchConfig struct {
	Enabled bool `koanf:"enabled"`
	// DebounceMillis delays a recompile after the last detected change,
	// coalescing the burst of events a single save can trigger.
	DebounceMillis int `koanf:"debounce_millis"`
}

// Default returns the built-in configuration used when no file is given.
func Default() Config {
	return Config{
		SocketCap:    6,
		HiddenAction: "Hidden",
		Version:      "2.0.0",
		Watch: WatchConfig{
			Enabled:        false,
			DebounceMillis: 200,
		},
	}
}

// Load reads path as YAML and merges it over Default(). An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return Config{}, err
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
