package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Settings are host-level application preferences, read from a TOML file
// (by default ~/.config/nubegen/nubegen.toml). They are distinct from the
// word-cloud Configuration: settings describe how the tool runs, not what
// it renders. Command-line flags override anything set here.
type Settings struct {
	// Addr is the listen address for the HTTP dashboard.
	Addr string `toml:"addr"`

	// StorePath overrides the snapshot file location.
	StorePath string `toml:"store_path"`

	// PreviewWidth bounds dashboard thumbnails, in pixels.
	PreviewWidth int `toml:"preview_width"`

	// OutputDir is where the render command writes images by default.
	OutputDir string `toml:"output_dir"`

	// RedisURL enables the Redis artifact-cache backend when set
	// (e.g. "redis://localhost:6379/0"). Empty means the file cache.
	RedisURL string `toml:"redis_url"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		Addr:         "localhost:8423",
		PreviewWidth: 300,
		OutputDir:    ".",
	}
}

// LoadSettings reads settings from path, filling unset fields with
// defaults. A missing file is not an error; a malformed file is, since the
// user wrote it deliberately.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	meta, err := toml.DecodeFile(path, &s)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultSettings(), nil
		}
		return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Settings{}, fmt.Errorf("settings %s: unknown key %q", path, undecoded[0].String())
	}
	if s.Addr == "" {
		s.Addr = DefaultSettings().Addr
	}
	if s.PreviewWidth <= 0 {
		s.PreviewWidth = DefaultSettings().PreviewWidth
	}
	if s.OutputDir == "" {
		s.OutputDir = "."
	}
	return s, nil
}
