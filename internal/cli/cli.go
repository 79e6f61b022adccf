// Package cli implements the nubegen command-line interface.
//
// This package provides commands for rendering word-cloud variations,
// serving the interactive dashboard, editing the configuration in a
// terminal UI, and managing saved snapshots and the artifact cache. The
// CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/elenamtz/nubegen/pkg/buildinfo"
	"github.com/elenamtz/nubegen/pkg/cache"
	"github.com/elenamtz/nubegen/pkg/config"
	"github.com/elenamtz/nubegen/pkg/pipeline"
	"github.com/elenamtz/nubegen/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "nubegen"

	// settingsFilename is the optional TOML settings file in configDir.
	settingsFilename = "nubegen.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger   *log.Logger
	Settings config.Settings
}

// New creates a new CLI instance with a default logger and settings loaded
// from the user's config directory (defaults when no file exists).
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
	c.Settings = loadSettings(c.Logger)
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "nubegen",
		Short:        "Nubegen renders gradient-colored word-cloud variations",
		Long:         `Nubegen derives a color gradient from a single final color, assigns randomized frequency tiers to a word list, and renders several word-cloud variations from the same configuration.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.Settings.RedisURL, "cache-redis", c.Settings.RedisURL,
		"Redis URL for the artifact cache (overrides settings)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The renderer resolves a
// system font once, falling back to the embedded one under configDir.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	artifacts, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	fontDir, err := configDir()
	if err != nil {
		fontDir = os.TempDir()
	}
	font, err := render.ResolveFont(fontDir)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(artifacts, render.NewCloudRenderer(font), c.Logger), nil
}

// newCache picks the artifact-cache backend: Redis when configured in
// settings, the file cache otherwise. An unreachable Redis falls back to the
// file cache with a warning rather than failing the run.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.Settings.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, c.Settings.RedisURL)
		if err == nil {
			return rc, nil
		}
		c.Logger.Warnf("Redis cache unavailable, using file cache: %v", err)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the artifact cache directory using XDG standard
// (~/.cache/nubegen/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the configuration directory using XDG standard
// (~/.config/nubegen/). It holds the snapshot store, the optional settings
// file, and the embedded-font fallback.
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// defaultStorePath is the snapshot store location when no --store flag or
// settings override is given.
func defaultStorePath(s config.Settings) string {
	if s.StorePath != "" {
		return s.StorePath
	}
	dir, err := configDir()
	if err != nil {
		return config.DefaultStoreFilename
	}
	return filepath.Join(dir, config.DefaultStoreFilename)
}

// loadSettings reads the TOML settings file if present.
func loadSettings(logger *log.Logger) config.Settings {
	dir, err := configDir()
	if err != nil {
		return config.DefaultSettings()
	}
	s, err := config.LoadSettings(filepath.Join(dir, settingsFilename))
	if err != nil {
		logger.Warnf("Ignoring settings file: %v", err)
		return config.DefaultSettings()
	}
	return s
}
