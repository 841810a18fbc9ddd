// Package pipeline implements the molecule-grid HTML generation pipeline.
//
// This package handles the document construction stages:
//   - Grid HTML generation from molecule cells via html/template
//   - Drawing-script wiring (smiles-drawer) with per-render options
//   - CSS injection into HTML documents
//
// Image capture is handled separately by the root m2gimage package using
// headless Chrome (go-rod). This separation keeps the pipeline focused on
// document structure and content, while screenshot rendering handles
// viewport sizing, readiness polling, and browser lifecycle concerns.
package pipeline
