package m2gimage

import (
	"fmt"
	"strings"
)

// defaultFontFamily is the standard font stack for grid captions.
const defaultFontFamily = "sans-serif"

// buildBackgroundCSS generates the page background block. The grid page is
// captured as an image, so the body carries an explicit background instead
// of the browser default.
//
// The transparent variant uses !important so it wins over body rules in the
// base stylesheet regardless of injection order.
func buildBackgroundCSS(transparent bool) string {
	if transparent {
		return `
/* Page background */
body {
  margin: 0;
  background-color: transparent !important;
}
`
	}
	return `
/* Page background */
body {
  margin: 0;
  background-color: #ffffff;
}
`
}

// buildGridCSS generates layout rules for the grid container and cells.
// Look-and-feel rules (colors, font weights) come from the base stylesheet;
// everything geometric lives here. Accepts nil or partially filled options,
// unset fields resolve to defaults.
func buildGridCSS(g *GridOptions) string {
	opts := g.resolve()

	fontFamily := opts.FontFamily
	if fontFamily == "" {
		fontFamily = defaultFontFamily
	}

	var buf strings.Builder

	buf.WriteString(fmt.Sprintf(`
/* Grid layout */
#mols2grid {
  display: grid;
  grid-template-columns: repeat(%d, %dpx);
  gap: %dpx;
  width: fit-content;
  font-family: %s;
  font-size: %dpt;
}
`, opts.Columns, opts.CellWidth, *opts.Gap, fontFamily, opts.FontSize))

	buf.WriteString(fmt.Sprintf(`
/* Grid cells */
.m2g-cell {
  width: %dpx;
  min-height: %dpx;
  border: %s;
  text-align: %s;
}
`, opts.CellWidth, opts.CellHeight, opts.Border, strings.ToLower(opts.TextAlign)))

	return buf.String()
}
