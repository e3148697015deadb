// Package memory loads the static overlay files (backstory, response
// directives, key memories) that make up Cassian's fixed prompt context.
package memory

import (
	"fmt"
	"os"
	"strings"
)

// Overlay is one loaded overlay file.
type Overlay struct {
	Path string
	Text string
}

// Load reads every overlay file in order and returns the loaded blobs.
// An unreadable file is an error: the personality context would otherwise
// be incomplete, so there is no partial fallback.
func Load(paths []string) ([]Overlay, error) {
	overlays := make([]Overlay, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read overlay %s: %w", path, err)
		}
		overlays = append(overlays, Overlay{
			Path: path,
			Text: strings.TrimSpace(string(data)),
		})
	}
	return overlays, nil
}

// Compose joins the overlay texts in order with the given separator,
// producing the static context string used on every prompt. Empty overlays
// are skipped so a blank file cannot inject stray separators.
func Compose(overlays []Overlay, separator string) string {
	parts := make([]string, 0, len(overlays))
	for _, overlay := range overlays {
		if overlay.Text == "" {
			continue
		}
		parts = append(parts, overlay.Text)
	}
	return strings.Join(parts, separator)
}

// LoadContext is the startup path: read the configured files and return
// the composed context string.
func LoadContext(paths []string, separator string) (string, error) {
	overlays, err := Load(paths)
	if err != nil {
		return "", err
	}
	return Compose(overlays, separator), nil
}
