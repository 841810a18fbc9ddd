package main

import (
	"io"
	"os"
	"time"

	m2gimage "github.com/N283T/mols2grid-to-image"
)

// Environment bundles the process-level dependencies of the CLI so tests
// can substitute fixed clocks, capture output, and stub asset loading.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	AssetLoader m2gimage.AssetLoader
}

// DefaultEnv returns the production environment backed by the real clock,
// the process streams, and the embedded asset loader.
func DefaultEnv() *Environment {
	// Error ignored: an empty base path always yields the embedded loader.
	loader, _ := m2gimage.NewAssetLoader("")
	return &Environment{
		Now:         time.Now,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		AssetLoader: loader,
	}
}
