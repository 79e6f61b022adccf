package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font/gofont/goregular"
)

// systemFonts are tried in order before falling back to the embedded face.
var systemFonts = []string{
	"DejaVuSans.ttf",
	"LiberationSans-Regular.ttf",
	"Arial.ttf",
	"Helvetica.ttf",
}

// ResolveFont returns the path of a usable TTF for word-cloud layout. It
// prefers a system font located via go-findfont; when none is available it
// writes the embedded Go Regular face into dir and returns that path. dir is
// created if needed.
func ResolveFont(dir string) (string, error) {
	for _, name := range systemFonts {
		if path, err := findfont.Find(name); err == nil {
			return path, nil
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create font dir: %w", err)
	}
	path := filepath.Join(dir, "goregular.ttf")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := os.WriteFile(path, goregular.TTF, 0644); err != nil {
		return "", fmt.Errorf("write embedded font: %w", err)
	}
	return path, nil
}
