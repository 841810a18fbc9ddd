package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: m2gimage <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render        Render a molecule grid image from a dataset")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  doctor        Check the environment for rendering readiness")
	fmt.Fprintln(w, "  env           Show recognized environment variables")
	fmt.Fprintln(w, "  completion    Generate a shell completion script")
	fmt.Fprintln(w, "  help          Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'm2gimage help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: m2gimage render <dataset> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a grid of molecule structures from a CSV or Excel dataset.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  dataset    CSV, TSV, or Excel file (optional if config has input_csv)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output image path (default: result.png)")
	fmt.Fprintln(w, "      --output-dir <dir>    Directory output files are placed in")
	fmt.Fprintln(w, "      --output-html <path>  Also write the grid page HTML")
	fmt.Fprintln(w, "      --html-only           Write HTML only, skip image capture")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel page workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Per-page render timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Dataset:")
	fmt.Fprintln(w, "      --smiles-col <name>   Column holding SMILES strings (default: smiles)")
	fmt.Fprintln(w, "      --subset <cols>       Columns shown under each structure (repeatable)")
	fmt.Fprintln(w, "      --sort-by <name>      Column to sort rows by before rendering")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Grid Layout:")
	fmt.Fprintln(w, "      --n-cols <n>          Grid columns (default: 5)")
	fmt.Fprintln(w, "      --cell-width <px>     Cell width in pixels (default: 150)")
	fmt.Fprintln(w, "      --cell-height <px>    Cell height in pixels (default: 150)")
	fmt.Fprintln(w, "      --gap <px>            Gap between cells (default: 10)")
	fmt.Fprintln(w, "      --border <css>        CSS border between cells")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Captions:")
	fmt.Fprintln(w, "      --fontsize <pt>       Caption font size in points (default: 12)")
	fmt.Fprintln(w, "      --fontfamily <s>      Caption font family")
	fmt.Fprintln(w, "      --text-align <s>      Alignment: left, center, right, justify")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Molecule Drawing:")
	fmt.Fprintln(w, "      --remove-hs           Strip explicit hydrogens before drawing")
	fmt.Fprintln(w, "      --use-coords          Honor coordinates embedded in the input")
	fmt.Fprintln(w, "      --coord-gen           Use the CoordGen layout algorithm")
	fmt.Fprintln(w, "      --script-url <url>    Molecule drawing script URL")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Pagination:")
	fmt.Fprintln(w, "      --items-per-page <n>  Split output into pages of this many rows")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --css <value>         Style name, CSS file path, or raw CSS")
	fmt.Fprintln(w, "      --transparent         Transparent page background instead of white")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show per-page timing")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: m2gimage version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: m2gimage doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome availability, sandbox settings, and temp directory access.")
	case "env":
		fmt.Fprintln(env.Stdout, "Usage: m2gimage env [--yaml]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show the environment variables m2gimage reads and their current values.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: m2gimage help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
