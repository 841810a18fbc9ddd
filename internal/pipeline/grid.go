package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
)

// ErrGridRender indicates grid template rendering failed.
var ErrGridRender = errors.New("grid template rendering failed")

// DefaultScriptURL is the smiles-drawer build loaded when no override is set.
// The version is pinned; newer builds change rendering output.
const DefaultScriptURL = "https://unpkg.com/smiles-drawer@2.0.3/dist/smiles-drawer.min.js"

// Field is one labelled caption value displayed under a structure.
type Field struct {
	Name  string
	Value string
}

// Cell is one grid entry: a SMILES structure plus its caption fields.
// Index is the zero-based position of the entry in the source data.
type Cell struct {
	Index  int
	Smiles string
	Fields []Field
}

// GridParams controls the generated markup independently of cell content.
// The pointer fields are tri-state: nil leaves the drawing library default
// in place, a non-nil value is forwarded to smiles-drawer.
type GridParams struct {
	ScriptURL  string
	CellWidth  int
	CellHeight int
	RemoveHs   *bool
	UseCoords  *bool
	CoordGen   *bool
}

// HTMLGridRenderer abstracts molecule cells to HTML document generation.
type HTMLGridRenderer interface {
	RenderGrid(ctx context.Context, cells []Cell, params GridParams) (string, error)
}

// GridRenderer renders cells into a standalone HTML5 document via html/template.
type GridRenderer struct {
	tmpl *template.Template
}

// NewGridRenderer creates a GridRenderer from template content.
// Returns error if the template cannot be parsed.
func NewGridRenderer(tmplContent string) (*GridRenderer, error) {
	tmpl, err := template.New("grid").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing grid template: %w", err)
	}

	return &GridRenderer{tmpl: tmpl}, nil
}

// drawerOptions is serialized into the page as the option object handed to
// smiles-drawer. Key names follow the library's camelCase convention.
type drawerOptions struct {
	Width     int   `json:"width"`
	Height    int   `json:"height"`
	RemoveHs  *bool `json:"removeHs,omitempty"`
	UseCoords *bool `json:"useCoords,omitempty"`
	CoordGen  *bool `json:"coordGen,omitempty"`
}

// gridView is the data contract between RenderGrid and the grid template.
type gridView struct {
	ScriptURL      template.URL
	DrawerOptions  template.JS
	CellWidth      int
	CellHeight     int
	ShowFieldNames bool
	Cells          []Cell
}

// RenderGrid renders the cells into a complete HTML document.
// Returns error if JSON encoding or template execution fails.
func (r *GridRenderer) RenderGrid(ctx context.Context, cells []Cell, params GridParams) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	view, err := buildGridView(cells, params)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrGridRender, err)
	}

	return buf.String(), nil
}

func buildGridView(cells []Cell, params GridParams) (*gridView, error) {
	scriptURL := params.ScriptURL
	if scriptURL == "" {
		scriptURL = DefaultScriptURL
	}

	opts := drawerOptions{
		Width:     params.CellWidth,
		Height:    params.CellHeight,
		RemoveHs:  params.RemoveHs,
		UseCoords: params.UseCoords,
		CoordGen:  params.CoordGen,
	}
	optsJSON, err := json.Marshal(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGridRender, err)
	}

	return &gridView{
		ScriptURL:      template.URL(scriptURL), // #nosec G203 -- deliberate, allows file:// and custom CDN script sources
		DrawerOptions:  template.JS(optsJSON),   // #nosec G203 -- output of json.Marshal, not user markup
		CellWidth:      params.CellWidth,
		CellHeight:     params.CellHeight,
		ShowFieldNames: showFieldNames(cells),
		Cells:          cells,
	}, nil
}

// showFieldNames reports whether any cell carries more than one caption
// field. With a single field per cell the bare value is unambiguous, so
// name prefixes are omitted.
func showFieldNames(cells []Cell) bool {
	for _, c := range cells {
		if len(c.Fields) > 1 {
			return true
		}
	}

	return false
}
