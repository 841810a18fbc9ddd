package main

import (
	"os"

	flag "github.com/spf13/pflag"

	"github.com/N283T/mols2grid-to-image/internal/config"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// dataFlags holds dataset column selection flags.
type dataFlags struct {
	smilesCol string
	subset    []string
	sortBy    string
}

// gridFlags holds grid layout flags.
type gridFlags struct {
	columns    int
	cellWidth  int
	cellHeight int
	fontSize   int
	border     string
	gap        int
	fontFamily string
	textAlign  string
}

// drawerFlags holds molecule drawing flags.
type drawerFlags struct {
	removeHs  bool
	useCoords bool
	coordGen  bool
	scriptURL string
}

// outputFlags holds output path and mode flags.
type outputFlags struct {
	output       string
	outputDir    string
	outputHTML   string
	htmlOnly     bool
	itemsPerPage int
	transparent  bool
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common  commonFlags
	data    dataFlags
	grid    gridFlags
	drawer  drawerFlags
	output  outputFlags
	css     string
	timeout string
	workers int

	// fs is retained after parsing so explicitly set flags can be
	// distinguished from flags left at their zero value.
	fs *flag.FlagSet
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-page timing")
}

// addDataFlags adds dataset column flags to a FlagSet.
func addDataFlags(fs *flag.FlagSet, f *dataFlags) {
	fs.StringVar(&f.smilesCol, "smiles-col", "", "column holding SMILES strings (default: smiles)")
	fs.StringSliceVar(&f.subset, "subset", nil, "columns shown under each structure (repeatable)")
	fs.StringVar(&f.sortBy, "sort-by", "", "column to sort rows by before rendering")
}

// addGridFlags adds grid layout flags to a FlagSet.
func addGridFlags(fs *flag.FlagSet, f *gridFlags) {
	fs.IntVar(&f.columns, "n-cols", 0, "grid columns (default: 5)")
	fs.IntVar(&f.cellWidth, "cell-width", 0, "cell width in pixels (default: 150)")
	fs.IntVar(&f.cellHeight, "cell-height", 0, "cell height in pixels (default: 150)")
	fs.IntVar(&f.fontSize, "fontsize", 0, "caption font size in points (default: 12)")
	fs.StringVar(&f.border, "border", "", "CSS border between cells")
	fs.IntVar(&f.gap, "gap", 0, "gap between cells in pixels (default: 10)")
	fs.StringVar(&f.fontFamily, "fontfamily", "", "caption font family")
	fs.StringVar(&f.textAlign, "text-align", "", "caption alignment: left, center, right, justify")
}

// addDrawerFlags adds molecule drawing flags to a FlagSet.
func addDrawerFlags(fs *flag.FlagSet, f *drawerFlags) {
	fs.BoolVar(&f.removeHs, "remove-hs", false, "strip explicit hydrogens before drawing")
	fs.BoolVar(&f.useCoords, "use-coords", false, "honor coordinates embedded in the input")
	fs.BoolVar(&f.coordGen, "coord-gen", false, "use the CoordGen layout algorithm")
	fs.StringVar(&f.scriptURL, "script-url", "", "molecule drawing script URL")
}

// addOutputFlags adds output path and mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output image path (default: result.png)")
	fs.StringVar(&f.outputDir, "output-dir", "", "directory output files are placed in")
	fs.StringVar(&f.outputHTML, "output-html", "", "also write the grid page HTML here")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write HTML only, skip image capture")
	fs.IntVar(&f.itemsPerPage, "items-per-page", 0, "split output into pages of this many rows")
	fs.BoolVar(&f.transparent, "transparent", false, "transparent page background instead of white")
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	f := &renderFlags{}

	fs.StringVar(&f.css, "css", "", "extra stylesheet: style name, file path, or raw CSS")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-page render timeout (e.g., 30s, 2m)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel page workers (0 = auto)")

	addCommonFlags(fs, &f.common)
	addDataFlags(fs, &f.data)
	addGridFlags(fs, &f.grid)
	addDrawerFlags(fs, &f.drawer)
	addOutputFlags(fs, &f.output)

	fs.Usage = func() { printRenderUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	f.fs = fs
	return f, fs.Args(), nil
}

// changed reports whether the named flag was explicitly set on the command
// line. Needed because zero is a meaningful value for flags like --gap.
func (f *renderFlags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}

// overrides converts explicitly set flags into sparse config overrides.
// Only flags the user typed are carried over, so resolution can tell
// "set to the default value" apart from "not set".
func (f *renderFlags) overrides(positional []string) config.Overrides {
	var ovr config.Overrides

	if len(positional) > 0 {
		ovr.Input = &positional[0]
	}

	if f.changed("output") {
		ovr.Output = &f.output.output
	}
	if f.changed("output-html") {
		ovr.OutputHTML = &f.output.outputHTML
	}
	if f.changed("output-dir") {
		ovr.OutputDir = &f.output.outputDir
	}
	if f.changed("items-per-page") {
		ovr.ItemsPerPage = &f.output.itemsPerPage
	}
	if f.changed("transparent") {
		ovr.Transparent = &f.output.transparent
	}

	if f.changed("smiles-col") {
		ovr.SmilesColumn = &f.data.smilesCol
	}
	if f.changed("subset") {
		ovr.Subset = f.data.subset
	}
	if f.changed("sort-by") {
		ovr.SortBy = &f.data.sortBy
	}

	if f.changed("n-cols") {
		ovr.Columns = &f.grid.columns
	}
	if f.changed("cell-width") {
		ovr.CellWidth = &f.grid.cellWidth
	}
	if f.changed("cell-height") {
		ovr.CellHeight = &f.grid.cellHeight
	}
	if f.changed("fontsize") {
		ovr.FontSize = &f.grid.fontSize
	}
	if f.changed("border") {
		ovr.Border = &f.grid.border
	}
	if f.changed("gap") {
		ovr.Gap = &f.grid.gap
	}
	if f.changed("fontfamily") {
		ovr.FontFamily = &f.grid.fontFamily
	}
	if f.changed("text-align") {
		ovr.TextAlign = &f.grid.textAlign
	}

	if f.changed("remove-hs") {
		ovr.RemoveHs = &f.drawer.removeHs
	}
	if f.changed("use-coords") {
		ovr.UseCoords = &f.drawer.useCoords
	}
	if f.changed("coord-gen") {
		ovr.CoordGen = &f.drawer.coordGen
	}

	if f.changed("css") {
		ovr.CSS = &f.css
	}

	return ovr
}
