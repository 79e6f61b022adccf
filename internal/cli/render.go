package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/elenamtz/nubegen/pkg/config"
	"github.com/elenamtz/nubegen/pkg/freq"
	"github.com/elenamtz/nubegen/pkg/pipeline"
	"github.com/elenamtz/nubegen/pkg/wordlist"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	color     string // final gradient color as a hex code
	stops     int    // number of gradient stops
	words     string // word list, comma/semicolon/newline separated
	wordsFile string // file to read the word list from instead
	width     int    // raster width in pixels
	height    int    // raster height in pixels
	out       string // output directory
	seed      uint64 // weight seed; 0 means random per run
	count     int    // number of variations
	noCache   bool   // disable the artifact cache
	refresh   bool   // skip cache lookups, still store fresh results
	preview   int    // also write thumbnails at this width (0 disables)
}

// renderCommand creates the render command for generating word-cloud
// variation images from the command line.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	defaults := config.Default()
	opts := renderOpts{
		color:  defaults.FinalColor,
		stops:  defaults.StopCount,
		width:  defaults.Width,
		height: defaults.Height,
		out:    c.Settings.OutputDir,
	}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render word-cloud variations to PNG files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(&opts)
			if err != nil {
				return err
			}
			formats, err := parseFormats(formatsStr)
			if err != nil {
				return err
			}
			return c.runRender(cmd, cfg, formats, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.color, "color", "c", opts.color, "final gradient color (hex, e.g. '#ff00d3')")
	cmd.Flags().IntVarP(&opts.stops, "stops", "n", opts.stops, "number of gradient stops (3-10)")
	cmd.Flags().StringVarP(&opts.words, "words", "w", "", "word list, separated by commas, semicolons, or newlines")
	cmd.Flags().StringVar(&opts.wordsFile, "words-file", "", "read the word list from a file instead")
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "image width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", opts.height, "image height in pixels")
	cmd.Flags().StringVarP(&opts.out, "out", "o", opts.out, "output directory")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "weight seed for reproducible output (0 = random)")
	cmd.Flags().IntVar(&opts.count, "count", freq.DefaultVariations, "number of variations to render")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when a cached artifact exists")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "artifact format(s): png (default), json (comma-separated)")
	cmd.Flags().IntVar(&opts.preview, "preview", 0, "also write thumbnails bounded to this width")

	return cmd
}

// buildConfig assembles a configuration from the render flags. Words from
// --words-file win over --words when both are given.
func buildConfig(opts *renderOpts) (config.Configuration, error) {
	cfg := config.Default()
	cfg.FinalColor = strings.ToLower(opts.color)
	cfg.StopCount = opts.stops
	cfg.Width = opts.width
	cfg.Height = opts.height

	switch {
	case opts.wordsFile != "":
		data, err := os.ReadFile(opts.wordsFile)
		if err != nil {
			return cfg, fmt.Errorf("read words file: %w", err)
		}
		cfg.Words = wordlist.Split(string(data))
	case opts.words != "":
		cfg.Words = wordlist.Split(opts.words)
	}

	if err := cfg.ValidateForRender(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// parseFormats parses the --format flag into a slice of artifact formats.
// If empty, defaults to ["png"].
func parseFormats(s string) ([]string, error) {
	if s == "" {
		return []string{pipeline.FormatPNG}, nil
	}
	formats := strings.Split(s, ",")
	for _, f := range formats {
		if f != pipeline.FormatPNG && f != pipeline.FormatJSON {
			return nil, fmt.Errorf("invalid format: %s (must be 'png' or 'json')", f)
		}
	}
	return formats, nil
}

// runRender executes the pipeline and writes the artifacts to disk.
func (c *CLI) runRender(cmd *cobra.Command, cfg config.Configuration, formats []string, opts *renderOpts) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}

	stops, err := cfg.Stops()
	if err != nil {
		return err
	}
	printInfo("Gradient anchored at %s with %d stops", StyleHighlight.Render(cfg.FinalColor), cfg.StopCount)
	printSwatches(stops)

	track := newProgress(c.Logger)
	spin := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d variations...", opts.count))
	spin.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		Config:       cfg,
		Seed:         opts.seed,
		Count:        opts.count,
		Formats:      formats,
		PreviewWidth: opts.preview,
		Refresh:      opts.refresh,
	})
	if err != nil {
		spin.StopWithError("Rendering failed")
		return err
	}
	spin.Stop()
	track.done(fmt.Sprintf("Rendered %d variations", len(result.Variations)))

	if err := writeArtifacts(result, opts); err != nil {
		return err
	}

	printSuccess("Wrote %d variations to %s", len(result.Variations), opts.out)
	printStats(len(result.Variations), len(cfg.Words), result.Stats.CacheHits)
	if opts.seed == 0 {
		printNextStep("Reproduce this run", fmt.Sprintf("nubegen render --seed %d", result.Seed))
	}
	return nil
}

// writeArtifacts writes the per-variation files into the output directory.
func writeArtifacts(result *pipeline.Result, opts *renderOpts) error {
	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, v := range result.Variations {
		if v.PNG != nil {
			path := filepath.Join(opts.out, v.Filename)
			if err := os.WriteFile(path, v.PNG, 0o644); err != nil {
				return err
			}
			printFile(path)
		}
		if opts.preview > 0 && v.Thumb != nil {
			path := filepath.Join(opts.out, thumbName(v.Filename))
			if err := os.WriteFile(path, v.Thumb, 0o644); err != nil {
				return err
			}
			printFile(path)
		}
		if v.JSON != nil {
			path := filepath.Join(opts.out, jsonName(v.Filename))
			if err := os.WriteFile(path, v.JSON, 0o644); err != nil {
				return err
			}
			printFile(path)
		}
	}
	return nil
}

// thumbName derives the thumbnail filename from the raster filename.
func thumbName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return base + "_thumb.png"
}

// jsonName derives the manifest filename from the raster filename.
func jsonName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".json"
}
