package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/elenamtz/nubegen/pkg/config"
	"github.com/elenamtz/nubegen/pkg/freq"
	"github.com/elenamtz/nubegen/pkg/palette"
	"github.com/elenamtz/nubegen/pkg/wordlist"
)

// Editor styles
var (
	editorSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	editorNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	editorDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	editorErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
	editorStatusStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	editorInputStyle    = lipgloss.NewStyle().Foreground(colorYellow)
)

// tuiCommand creates the tui command launching the terminal configuration
// editor. When the editor exits with a render request, the variations are
// written the same way the render command writes them.
func (c *CLI) tuiCommand() *cobra.Command {
	var (
		out       string
		storePath string
		seed      uint64
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Edit the configuration in a terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if storePath == "" {
				storePath = defaultStorePath(c.Settings)
			}
			if dir := filepath.Dir(storePath); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create store dir: %w", err)
				}
			}

			model := NewEditorModel(config.Default(), config.NewStore(storePath), out)
			p := tea.NewProgram(model)
			final, err := p.Run()
			if err != nil {
				return err
			}

			m, ok := final.(EditorModel)
			if !ok || !m.RenderRequested {
				return nil
			}
			formats, _ := parseFormats("")
			return c.runRender(cmd, m.Config, formats, &renderOpts{
				out:     out,
				seed:    seed,
				noCache: noCache,
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", c.Settings.OutputDir, "output directory for rendered variations")
	cmd.Flags().StringVar(&storePath, "store", "", "snapshot store file (default in the config directory)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "weight seed for reproducible output (0 = random)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// =============================================================================
// EditorModel - Interactive configuration editing
// =============================================================================

// Editor field indices, in display order.
const (
	fieldColor = iota
	fieldStops
	fieldWords
	fieldWidth
	fieldHeight
	fieldCount
)

// tierRow summarizes one generated variation for the preview table.
type tierRow struct {
	big    []string
	medium int
	small  int
}

// EditorModel is the bubbletea model for editing a configuration field by
// field. Enter starts editing the selected field and commits the buffer;
// committing validates before the value is accepted. Beyond editing, the
// model can preview tier assignments, save snapshots, export the
// configuration, and request a render on exit.
type EditorModel struct {
	Config          config.Configuration
	Store           *config.Store
	OutDir          string
	Cursor          int
	Editing         bool
	Naming          bool
	Input           string
	Err             string
	Status          string
	Tiers           []tierRow
	RenderRequested bool
}

// NewEditorModel creates an editor seeded with the given configuration.
func NewEditorModel(cfg config.Configuration, store *config.Store, outDir string) EditorModel {
	if outDir == "" {
		outDir = "."
	}
	return EditorModel{Config: cfg, Store: store, OutDir: outDir}
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.Editing || m.Naming {
		return m.updateInput(keyMsg)
	}

	m.Status = ""
	switch keyMsg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < fieldCount-1 {
			m.Cursor++
		}
	case "enter":
		m.Editing = true
		m.Input = m.fieldValue(m.Cursor)
		m.Err = ""
	case "r":
		if len(m.Config.Words) == 0 {
			m.Err = "add words before generating"
			return m, nil
		}
		m.Tiers = summarizeTiers(freq.Variations(nil, m.Config.Words, freq.DefaultVariations))
		m.Err = ""
	case "s":
		if m.Store == nil {
			m.Err = "no snapshot store available"
			return m, nil
		}
		m.Naming = true
		m.Input = ""
		m.Err = ""
	case "x":
		if err := m.exportConfig(); err != nil {
			m.Err = err.Error()
		}
	case "w":
		if len(m.Config.Words) == 0 {
			m.Err = "add words before rendering"
			return m, nil
		}
		m.RenderRequested = true
		return m, tea.Quit
	}
	return m, nil
}

// updateInput handles keys while a field or name buffer is open.
func (m EditorModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Editing = false
		m.Naming = false
		m.Input = ""
	case "enter":
		if m.Naming {
			if err := m.Store.Add(m.Input, m.Config); err != nil {
				m.Err = err.Error()
				return m, nil
			}
			m.Status = fmt.Sprintf("saved snapshot %q", strings.TrimSpace(m.Input))
			m.Naming = false
			m.Input = ""
			m.Err = ""
			return m, nil
		}
		if err := m.commit(); err != nil {
			m.Err = err.Error()
			return m, nil
		}
		m.Editing = false
		m.Input = ""
		m.Err = ""
	case "backspace":
		if len(m.Input) > 0 {
			m.Input = m.Input[:len(m.Input)-1]
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.Input += string(msg.Runes)
		} else if msg.Type == tea.KeySpace {
			m.Input += " "
		}
	}
	return m, nil
}

// commit parses and validates the input buffer into the selected field.
// The value only sticks when the whole configuration stays valid.
func (m *EditorModel) commit() error {
	cfg := m.Config.Clone()
	switch m.Cursor {
	case fieldColor:
		c, err := palette.ParseHex(m.Input)
		if err != nil {
			return err
		}
		cfg.FinalColor = c.Hex()
	case fieldStops:
		n, err := strconv.Atoi(strings.TrimSpace(m.Input))
		if err != nil {
			return fmt.Errorf("not a number: %q", m.Input)
		}
		cfg.StopCount = n
	case fieldWords:
		cfg.Words = wordlist.Split(m.Input)
	case fieldWidth:
		n, err := strconv.Atoi(strings.TrimSpace(m.Input))
		if err != nil {
			return fmt.Errorf("not a number: %q", m.Input)
		}
		cfg.Width = n
	case fieldHeight:
		n, err := strconv.Atoi(strings.TrimSpace(m.Input))
		if err != nil {
			return fmt.Errorf("not a number: %q", m.Input)
		}
		cfg.Height = n
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.Config = cfg
	m.Tiers = nil // stale once the config changes
	return nil
}

// exportConfig writes the active configuration as JSON into the output dir.
func (m *EditorModel) exportConfig() error {
	data, err := config.Export(m.Config)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(m.OutDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(m.OutDir, "active_config.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	m.Status = "exported " + path
	m.Err = ""
	return nil
}

// summarizeTiers reduces weight mappings to table rows: which words landed
// in the big tier, and how many fell in each of the lower tiers.
func summarizeTiers(variations []map[string]int) []tierRow {
	rows := make([]tierRow, len(variations))
	for i, weights := range variations {
		var row tierRow
		for word, w := range weights {
			switch {
			case w >= 9:
				row.big = append(row.big, word)
			case w >= 5:
				row.medium++
			default:
				row.small++
			}
		}
		sort.Strings(row.big)
		rows[i] = row
	}
	return rows
}

// fieldName returns the display label for a field.
func (m EditorModel) fieldName(i int) string {
	switch i {
	case fieldColor:
		return "Final color"
	case fieldStops:
		return "Stops"
	case fieldWords:
		return "Words"
	case fieldWidth:
		return "Width"
	case fieldHeight:
		return "Height"
	}
	return ""
}

// fieldValue returns the editable string form of a field.
func (m EditorModel) fieldValue(i int) string {
	switch i {
	case fieldColor:
		return m.Config.FinalColor
	case fieldStops:
		return strconv.Itoa(m.Config.StopCount)
	case fieldWords:
		return wordlist.Join(m.Config.Words)
	case fieldWidth:
		return strconv.Itoa(m.Config.Width)
	case fieldHeight:
		return strconv.Itoa(m.Config.Height)
	}
	return ""
}

func (m EditorModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Word Cloud Configuration"))
	b.WriteString("\n")
	b.WriteString(editorDimStyle.Render("↑/↓ navigate  ⏎ edit  r tiers  s save  x export  w render  q quit"))
	b.WriteString("\n\n")

	for i := 0; i < fieldCount; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		value := m.fieldValue(i)
		if i == fieldWords {
			value = fmt.Sprintf("%d words", len(m.Config.Words))
		}
		if m.Editing && i == m.Cursor {
			value = editorInputStyle.Render(m.Input + "▏")
		}

		line := fmt.Sprintf("%s%-12s %s", cursor, m.fieldName(i), value)
		if i == m.Cursor {
			b.WriteString(editorSelectedStyle.Render(line))
		} else {
			b.WriteString(editorNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if stops, err := m.Config.Stops(); err == nil {
		b.WriteString("  " + swatchLine(stops))
		b.WriteString("\n")
	}

	if m.Naming {
		b.WriteString("\n")
		b.WriteString("  Snapshot name: " + editorInputStyle.Render(m.Input+"▏"))
		b.WriteString("\n")
	}

	if len(m.Tiers) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderTierTable())
		b.WriteString("\n")
	}

	if m.Status != "" {
		b.WriteString("\n")
		b.WriteString(editorStatusStyle.Render("  " + iconSuccess + " " + m.Status))
		b.WriteString("\n")
	}
	if m.Err != "" {
		b.WriteString("\n")
		b.WriteString(editorErrorStyle.Render("  " + iconError + " " + m.Err))
		b.WriteString("\n")
	}

	return b.String()
}

// renderTierTable renders the variation tier summary.
func (m EditorModel) renderTierTable() string {
	rows := make([][]string, len(m.Tiers))
	for i, row := range m.Tiers {
		rows[i] = []string{
			fmt.Sprintf("#%d", i+1),
			strings.Join(row.big, ", "),
			fmt.Sprintf("%d", row.medium),
			fmt.Sprintf("%d", row.small),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Var", "Big words", "Medium", "Small").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	return t.Render()
}
