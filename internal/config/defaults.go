package config

import (
	_ "embed"
)

//go:embed defaults/ghostchase.yaml
var defaultYAML []byte

// DefaultPolicy is the ghost policy used when none is configured.
const DefaultPolicy = "chase"

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Glyphs: GlyphConfig{
			Wall:         "W",
			Floor:        " ",
			Player:       "P",
			Collectibles: ".",
			Ghosts:       "IBYC",
		},
		Keys: KeyConfig{
			Up:    "w",
			Left:  "a",
			Down:  "s",
			Right: "d",
			Quit:  "q",
		},
		Ghosts: GhostConfig{
			Policy: DefaultPolicy,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
