package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFormatsDefault(t *testing.T) {
	formats, err := parseFormats("")
	if err != nil {
		t.Fatalf("parseFormats(\"\") error: %v", err)
	}
	if len(formats) != 1 || formats[0] != "png" {
		t.Errorf("parseFormats(\"\") = %v, want [png]", formats)
	}
}

func TestParseFormatsMultiple(t *testing.T) {
	formats, err := parseFormats("png,json")
	if err != nil {
		t.Fatalf("parseFormats error: %v", err)
	}
	if len(formats) != 2 {
		t.Errorf("parseFormats(\"png,json\") = %v", formats)
	}
}

func TestParseFormatsRejectsUnknown(t *testing.T) {
	if _, err := parseFormats("svg"); err == nil {
		t.Error("parseFormats(\"svg\") should fail")
	}
}

func TestBuildConfigFromFlags(t *testing.T) {
	opts := renderOpts{
		color:  "#3CAA7F",
		stops:  4,
		words:  "uno, dos; tres\ncuatro",
		width:  800,
		height: 600,
	}
	cfg, err := buildConfig(&opts)
	if err != nil {
		t.Fatalf("buildConfig error: %v", err)
	}
	if cfg.FinalColor != "#3caa7f" {
		t.Errorf("FinalColor = %q, should be lowercased", cfg.FinalColor)
	}
	if len(cfg.Words) != 4 {
		t.Errorf("Words = %v, want 4 entries", cfg.Words)
	}
}

func TestBuildConfigWordsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("sol\nluna\nmar"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := renderOpts{
		color:     "#ff00d3",
		stops:     5,
		words:     "ignored",
		wordsFile: path,
		width:     800,
		height:    600,
	}
	cfg, err := buildConfig(&opts)
	if err != nil {
		t.Fatalf("buildConfig error: %v", err)
	}
	if len(cfg.Words) != 3 || cfg.Words[0] != "sol" {
		t.Errorf("Words = %v, file should win over the flag", cfg.Words)
	}
}

func TestBuildConfigMissingWordsFile(t *testing.T) {
	opts := renderOpts{
		color:     "#ff00d3",
		stops:     5,
		wordsFile: filepath.Join(t.TempDir(), "nope.txt"),
		width:     800,
		height:    600,
	}
	if _, err := buildConfig(&opts); err == nil {
		t.Error("buildConfig should fail for a missing words file")
	}
}

func TestBuildConfigInvalidColor(t *testing.T) {
	opts := renderOpts{
		color:  "not-a-color",
		stops:  5,
		words:  "uno",
		width:  800,
		height: 600,
	}
	if _, err := buildConfig(&opts); err == nil {
		t.Error("buildConfig should reject a malformed color")
	}
}

func TestArtifactNames(t *testing.T) {
	if got := thumbName("wordcloud_variation_2.png"); got != "wordcloud_variation_2_thumb.png" {
		t.Errorf("thumbName = %q", got)
	}
	if got := jsonName("wordcloud_variation_2.png"); got != "wordcloud_variation_2.json" {
		t.Errorf("jsonName = %q", got)
	}
}
