package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/elenamtz/nubegen/pkg/apperr"
	"github.com/elenamtz/nubegen/pkg/config"
	"github.com/elenamtz/nubegen/pkg/wordlist"
)

// configCommand creates the config command group for managing saved
// snapshots.
func (c *CLI) configCommand() *cobra.Command {
	var storePath string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage saved configuration snapshots",
	}
	cmd.PersistentFlags().StringVar(&storePath, "store", "", "snapshot store file (default in the config directory)")

	store := func() *config.Store {
		path := storePath
		if path == "" {
			path = defaultStorePath(c.Settings)
		}
		return config.NewStore(path)
	}

	cmd.AddCommand(c.configListCommand(store))
	cmd.AddCommand(c.configSaveCommand(store))
	cmd.AddCommand(c.configShowCommand(store))
	cmd.AddCommand(c.configDeleteCommand(store))
	cmd.AddCommand(c.configExportCommand(store))
	cmd.AddCommand(c.configImportCommand(store))

	return cmd
}

// configListCommand creates the "config list" subcommand.
func (c *CLI) configListCommand(store func() *config.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snaps := store().Load()
			if len(snaps) == 0 {
				printInfo("No saved snapshots")
				printNextStep("Save one", "nubegen config save <name>")
				return nil
			}

			rows := make([][]string, len(snaps))
			for i, s := range snaps {
				rows[i] = []string{
					s.Name,
					s.Config.FinalColor,
					fmt.Sprintf("%d", s.Config.StopCount),
					fmt.Sprintf("%d", len(s.Config.Words)),
					fmt.Sprintf("%dx%d", s.Config.Width, s.Config.Height),
				}
			}

			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("Name", "Color", "Stops", "Words", "Size").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle
					}
					return lipgloss.NewStyle().Foreground(colorWhite)
				})
			fmt.Println(t.Render())
			return nil
		},
	}
}

// configSaveCommand creates the "config save" subcommand. The snapshot is
// built from the same flags the render command takes.
func (c *CLI) configSaveCommand(store func() *config.Store) *cobra.Command {
	defaults := config.Default()
	var (
		color  string
		stops  int
		words  string
		width  int
		height int
	)

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save a snapshot under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			cfg.FinalColor = strings.ToLower(color)
			cfg.StopCount = stops
			cfg.Width = width
			cfg.Height = height
			if words != "" {
				cfg.Words = wordlist.Split(words)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := store().Add(args[0], cfg); err != nil {
				return err
			}
			printSuccess("Saved snapshot %s", StyleHighlight.Render(strings.TrimSpace(args[0])))
			return nil
		},
	}

	cmd.Flags().StringVarP(&color, "color", "c", defaults.FinalColor, "final gradient color (hex)")
	cmd.Flags().IntVarP(&stops, "stops", "n", defaults.StopCount, "number of gradient stops (3-10)")
	cmd.Flags().StringVarP(&words, "words", "w", "", "word list, separated by commas, semicolons, or newlines")
	cmd.Flags().IntVar(&width, "width", defaults.Width, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", defaults.Height, "image height in pixels")

	return cmd
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand(store func() *config.Store) *cobra.Command {
	return &cobra.Command{
		Use:     "show <name>",
		Aliases: []string{"load"},
		Short:   "Show a saved snapshot",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ok := store().Find(args[0])
			if !ok {
				return apperr.New(apperr.ErrCodeNotFound, "no snapshot named %q", args[0])
			}

			fmt.Println(StyleTitle.Render(args[0]))
			printKeyValue("Color", cfg.FinalColor)
			printKeyValue("Stops", fmt.Sprintf("%d", cfg.StopCount))
			printKeyValue("Size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height))
			printKeyValue("Words", fmt.Sprintf("%d", len(cfg.Words)))
			if len(cfg.Words) > 0 {
				printDetail("%s", strings.Join(cfg.Words, ", "))
			}
			if stops, err := cfg.Stops(); err == nil {
				printSwatches(stops)
			}
			return nil
		},
	}
}

// configDeleteCommand creates the "config delete" subcommand.
func (c *CLI) configDeleteCommand(store func() *config.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store().Delete(args[0]); err != nil {
				return err
			}
			printSuccess("Deleted snapshot %s", args[0])
			return nil
		},
	}
}

// configExportCommand creates the "config export" subcommand.
func (c *CLI) configExportCommand(store func() *config.Store) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <name>",
		Short: "Export a saved snapshot as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ok := store().Find(args[0])
			if !ok {
				return apperr.New(apperr.ErrCodeNotFound, "no snapshot named %q", args[0])
			}
			data, err := config.Export(cfg)
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			printSuccess("Exported %s", args[0])
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

// configImportCommand creates the "config import" subcommand. The file is
// validated in full before anything is stored.
func (c *CLI) configImportCommand(store func() *config.Store) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a snapshot from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}
			cfg, err := config.Import(data)
			if err != nil {
				return err
			}

			if name == "" {
				base := filepath.Base(args[0])
				name = strings.TrimSuffix(base, filepath.Ext(base))
			}
			if err := store().Add(name, cfg); err != nil {
				return err
			}
			printSuccess("Imported snapshot %s", StyleHighlight.Render(name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "snapshot name (default the file base name)")
	return cmd
}
