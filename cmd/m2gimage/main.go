package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Configure GOMAXPROCS with conditional logging.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to the requested subcommand and returns its exit code.
// Arguments that are not a subcommand start an implicit render when they look
// like flags or a dataset path, so "m2gimage data.csv" works without typing
// "render".
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch args[1] {
	case "render":
		return runRenderCmd(args[2:], env)
	case "version":
		fmt.Fprintf(env.Stdout, "m2gimage %s\n", Version)
		return ExitSuccess
	case "help":
		return runHelp(args[2:], env)
	case "doctor":
		return runDoctorCmd(args[2:], env)
	case "env":
		return runEnvCmd(args[2:], env)
	case "completion":
		if err := runCompletion(args[2:], env); err != nil {
			fmt.Fprintln(env.Stderr, err)
			return ExitUsage
		}
		return ExitSuccess
	}

	if strings.HasPrefix(args[1], "-") || looksLikeDataset(args[1]) {
		return runRenderCmd(args[1:], env)
	}

	fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[1])
	printUsage(env.Stderr)
	return ExitUsage
}

// hasVerboseFlag reports whether the arguments request verbose output.
// Used before full flag parsing so GOMAXPROCS logging can be configured
// ahead of the subcommand dispatch.
func hasVerboseFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-v" || arg == "--verbose" {
			return true
		}
	}
	return false
}

// isCommand reports whether name is a recognized subcommand.
// Matching is case-sensitive: "Render" is not a command.
func isCommand(name string) bool {
	for _, cmd := range getCommands() {
		if name == cmd.Name {
			return true
		}
	}
	return false
}

// looksLikeDataset reports whether path has a recognized dataset extension.
func looksLikeDataset(path string) bool {
	switch filepath.Ext(path) {
	case ".csv", ".tsv", ".xlsx", ".xlsm":
		return true
	}
	return false
}
