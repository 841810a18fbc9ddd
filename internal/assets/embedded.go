package assets

import (
	"embed"
	"fmt"
)

// The grid page template and the built-in stylesheets ship inside the
// binary so a bare install can render without any asset directory.
//
//go:embed styles/*.css templates/*.html
var builtin embed.FS

// EmbeddedLoader serves the built-in styles and templates.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle returns the built-in stylesheet for name (no .css extension).
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return readBuiltin("styles/"+name+".css", name, ErrStyleNotFound)
}

// LoadTemplate returns the built-in page template for name (no .html
// extension).
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return readBuiltin("templates/"+name+".html", name, ErrTemplateNotFound)
}

// readBuiltin validates the asset name and reads the embedded file,
// mapping a missing file onto the caller's not-found sentinel.
func readBuiltin(path, name string, notFound error) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := builtin.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %q", notFound, name)
	}
	return string(content), nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
