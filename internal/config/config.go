// Package config provides YAML/TOML configuration loading for ghostchase:
// the level glyph set, the command keymap and the ghost policy.
package config

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/ghostchase/internal/input"
	"github.com/vovakirdan/ghostchase/internal/level"
)

// Config contains all ghostchase settings.
type Config struct {
	Glyphs GlyphConfig `yaml:"glyphs" toml:"glyphs"`
	Keys   KeyConfig   `yaml:"keys" toml:"keys"`
	Ghosts GhostConfig `yaml:"ghosts" toml:"ghosts"`
}

// GlyphConfig defines the level-file symbol set.
type GlyphConfig struct {
	Wall         string `yaml:"wall" toml:"wall"`
	Floor        string `yaml:"floor" toml:"floor"`
	Player       string `yaml:"player" toml:"player"`
	Collectibles string `yaml:"collectibles" toml:"collectibles"` // one glyph per character
	Ghosts       string `yaml:"ghosts" toml:"ghosts"`             // one glyph per character
}

// KeyConfig defines the command characters.
type KeyConfig struct {
	Up    string `yaml:"up" toml:"up"`
	Left  string `yaml:"left" toml:"left"`
	Down  string `yaml:"down" toml:"down"`
	Right string `yaml:"right" toml:"right"`
	Quit  string `yaml:"quit" toml:"quit"`
}

// GhostConfig selects the ghost movement policy.
type GhostConfig struct {
	Policy string `yaml:"policy" toml:"policy"`
}

// LevelGlyphs converts the glyph section to the loader's symbol set.
func (c Config) LevelGlyphs() (level.Glyphs, error) {
	wall, err := singleRune("glyphs.wall", c.Glyphs.Wall)
	if err != nil {
		return level.Glyphs{}, err
	}
	floor, err := singleRune("glyphs.floor", c.Glyphs.Floor)
	if err != nil {
		return level.Glyphs{}, err
	}
	player, err := singleRune("glyphs.player", c.Glyphs.Player)
	if err != nil {
		return level.Glyphs{}, err
	}

	g := level.Glyphs{
		Wall:         wall,
		Floor:        floor,
		Player:       player,
		Collectibles: c.Glyphs.Collectibles,
		Ghosts:       c.Glyphs.Ghosts,
	}
	if err := g.Validate(); err != nil {
		return level.Glyphs{}, fmt.Errorf("config: %w", err)
	}
	return g, nil
}

// Keymap converts the key section to the command stream's keymap.
func (c Config) Keymap() (input.Keymap, error) {
	var km input.Keymap
	fields := []struct {
		name string
		val  string
		dst  *byte
	}{
		{"keys.up", c.Keys.Up, &km.Up},
		{"keys.left", c.Keys.Left, &km.Left},
		{"keys.down", c.Keys.Down, &km.Down},
		{"keys.right", c.Keys.Right, &km.Right},
		{"keys.quit", c.Keys.Quit, &km.Quit},
	}

	for _, f := range fields {
		if len(f.val) != 1 {
			return input.Keymap{}, fmt.Errorf("config: %s must be a single ASCII character, got %q", f.name, f.val)
		}
		*f.dst = f.val[0]
	}

	if err := km.Validate(); err != nil {
		return input.Keymap{}, fmt.Errorf("config: %w", err)
	}
	return km, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if _, err := c.LevelGlyphs(); err != nil {
		return err
	}
	if _, err := c.Keymap(); err != nil {
		return err
	}
	if c.Ghosts.Policy == "" {
		return fmt.Errorf("config: ghosts.policy must not be empty")
	}
	return nil
}

func singleRune(name, s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("config: %s must be exactly one character, got %q", name, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
