package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/elenamtz/nubegen/pkg/config"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m EditorModel, keys ...string) EditorModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(EditorModel)
	}
	return m
}

func typeString(t *testing.T, m EditorModel, s string) EditorModel {
	t.Helper()
	for _, r := range s {
		m = press(t, m, string(r))
	}
	return m
}

func testEditor(t *testing.T) EditorModel {
	t.Helper()
	dir := t.TempDir()
	store := config.NewStore(filepath.Join(dir, "saved_configs.json"))
	return NewEditorModel(config.Default(), store, dir)
}

func TestEditorNavigation(t *testing.T) {
	m := testEditor(t)
	if m.Cursor != fieldColor {
		t.Fatalf("initial cursor = %d", m.Cursor)
	}

	m = press(t, m, "down")
	if m.Cursor != fieldStops {
		t.Errorf("cursor after down = %d", m.Cursor)
	}

	m = press(t, m, "up")
	if m.Cursor != fieldColor {
		t.Errorf("cursor after up = %d", m.Cursor)
	}

	// Cursor clamps at the edges
	m = press(t, m, "up")
	if m.Cursor != fieldColor {
		t.Errorf("cursor should clamp at the top, got %d", m.Cursor)
	}
}

func TestEditorEditColor(t *testing.T) {
	m := testEditor(t)

	m = press(t, m, "enter")
	if !m.Editing {
		t.Fatal("enter should start editing")
	}
	if m.Input != "#ff00d3" {
		t.Fatalf("edit buffer should start with the current value, got %q", m.Input)
	}

	// Clear the buffer, type a new color, commit
	for range "#ff00d3" {
		m = press(t, m, "backspace")
	}
	m = typeString(t, m, "#112233")
	m = press(t, m, "enter")

	if m.Editing {
		t.Error("commit should leave editing mode")
	}
	if m.Config.FinalColor != "#112233" {
		t.Errorf("FinalColor = %q", m.Config.FinalColor)
	}
}

func TestEditorRejectsInvalidInput(t *testing.T) {
	m := testEditor(t)
	m = press(t, m, "down", "enter") // stops field
	m.Input = "50"
	m = press(t, m, "enter")

	if !m.Editing {
		t.Error("failed commit should stay in editing mode")
	}
	if m.Err == "" {
		t.Error("failed commit should surface an error")
	}
	if m.Config.StopCount != 5 {
		t.Errorf("StopCount = %d, invalid value must not stick", m.Config.StopCount)
	}
}

func TestEditorEscCancelsEdit(t *testing.T) {
	m := testEditor(t)
	m = press(t, m, "enter", "esc")
	if m.Editing {
		t.Error("esc should cancel editing")
	}
	if m.Config.FinalColor != "#ff00d3" {
		t.Errorf("cancel must not change the config, got %q", m.Config.FinalColor)
	}
}

func TestEditorTierPreview(t *testing.T) {
	m := testEditor(t)
	m = press(t, m, "r")
	if len(m.Tiers) != 5 {
		t.Fatalf("r should generate 5 tier rows, got %d", len(m.Tiers))
	}
	for i, row := range m.Tiers {
		if len(row.big) < 1 || len(row.big) > 2 {
			t.Errorf("variation %d: %d big words, want 1 or 2", i+1, len(row.big))
		}
		total := len(row.big) + row.medium + row.small
		if total != 20 {
			t.Errorf("variation %d: %d words classified, want 20", i+1, total)
		}
	}
	if !strings.Contains(m.View(), "Big words") {
		t.Error("view should include the tier table")
	}
}

func TestEditorSaveSnapshot(t *testing.T) {
	m := testEditor(t)
	m = press(t, m, "s")
	if !m.Naming {
		t.Fatal("s should open the name prompt")
	}
	m = typeString(t, m, "demo")
	m = press(t, m, "enter")

	if m.Naming {
		t.Error("saving should close the prompt")
	}
	if m.Status == "" {
		t.Error("saving should surface a status message")
	}
	if _, ok := m.Store.Find("demo"); !ok {
		t.Error("snapshot should be in the store")
	}
}

func TestEditorSaveRejectsBlankName(t *testing.T) {
	m := testEditor(t)
	m = press(t, m, "s")
	m = typeString(t, m, "   ")
	m = press(t, m, "enter")

	if !m.Naming {
		t.Error("rejected name should keep the prompt open")
	}
	if m.Err == "" {
		t.Error("rejected name should surface an error")
	}
}

func TestEditorExport(t *testing.T) {
	m := testEditor(t)
	m = press(t, m, "x")
	if m.Err != "" {
		t.Fatalf("export failed: %s", m.Err)
	}

	data, err := os.ReadFile(filepath.Join(m.OutDir, "active_config.json"))
	if err != nil {
		t.Fatalf("export file missing: %v", err)
	}
	if _, err := config.Import(data); err != nil {
		t.Errorf("exported file should round-trip: %v", err)
	}
}

func TestEditorRenderRequest(t *testing.T) {
	m := testEditor(t)
	next, cmd := m.Update(key("w"))
	m = next.(EditorModel)
	if !m.RenderRequested {
		t.Error("w should request a render")
	}
	if cmd == nil {
		t.Error("w should quit the program")
	}
}

func TestEditorRenderNeedsWords(t *testing.T) {
	cfg := config.Default()
	cfg.Words = nil
	m := NewEditorModel(cfg, nil, t.TempDir())

	m = press(t, m, "w")
	if m.RenderRequested {
		t.Error("render with no words should be refused")
	}
	if m.Err == "" {
		t.Error("refusal should surface an error message")
	}
}

func TestEditorView(t *testing.T) {
	m := testEditor(t)
	view := m.View()

	for _, want := range []string{"Word Cloud Configuration", "Final color", "Stops", "Width", "Height"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if !strings.Contains(view, "20 words") {
		t.Error("view should summarize the word count")
	}
}
