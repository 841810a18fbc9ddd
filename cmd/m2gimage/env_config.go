package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/N283T/mols2grid-to-image/internal/config"
	"github.com/N283T/mols2grid-to-image/internal/confutil"
)

// envConfig holds configuration sourced from M2G_* environment variables.
// Environment values sit below config files: they fill fields the file left
// unset and are themselves shadowed by explicit command-line flags.
type envConfig struct {
	// Tier 1: Essential
	ConfigPath string        // M2G_CONFIG
	CSS        string        // M2G_CSS
	Timeout    time.Duration // M2G_TIMEOUT

	// Tier 2: I/O and dataset
	Output       string // M2G_OUTPUT
	OutputDir    string // M2G_OUTPUT_DIR
	SmilesColumn string // M2G_SMILES_COL

	// Tier 3: Extended
	ScriptURL string // M2G_SCRIPT_URL
	Workers   int    // M2G_WORKERS
}

// knownEnvVars lists every recognized M2G_ variable for typo detection.
// M2G_CONTAINER is read by the doctor command, not by envConfig.
var knownEnvVars = map[string]bool{
	"M2G_CONFIG":     true,
	"M2G_CSS":        true,
	"M2G_TIMEOUT":    true,
	"M2G_OUTPUT":     true,
	"M2G_OUTPUT_DIR": true,
	"M2G_SMILES_COL": true,
	"M2G_SCRIPT_URL": true,
	"M2G_WORKERS":    true,
	"M2G_CONTAINER":  true,
}

// loadEnvConfig reads configuration from environment variables.
// Invalid values (bad duration, non-numeric workers) are ignored rather
// than treated as errors, matching how unset variables behave.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:   os.Getenv("M2G_CONFIG"),
		CSS:          os.Getenv("M2G_CSS"),
		Output:       os.Getenv("M2G_OUTPUT"),
		OutputDir:    os.Getenv("M2G_OUTPUT_DIR"),
		SmilesColumn: os.Getenv("M2G_SMILES_COL"),
		ScriptURL:    os.Getenv("M2G_SCRIPT_URL"),
	}

	if v := os.Getenv("M2G_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if v := os.Getenv("M2G_WORKERS"); v != "" {
		if w, err := strconv.Atoi(v); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars reports M2G_ variables that are not recognized,
// catching typos like M2G_SMILE_COL.
func warnUnknownEnvVars(w io.Writer) {
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "M2G_") {
			continue
		}
		name := strings.SplitN(kv, "=", 2)[0]
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig fills still-unset file config fields from the environment.
// A value applies only when the file left that field absent, keeping the
// precedence: flags > config file > environment > defaults.
func applyEnvConfig(env *envConfig, fc *config.FileConfig) {
	if env.Output != "" && fc.Output == nil {
		fc.Output = &env.Output
	}
	if env.OutputDir != "" && fc.OutputDir == nil {
		fc.OutputDir = &env.OutputDir
	}
	if env.SmilesColumn != "" && fc.SmilesColumn == nil {
		fc.SmilesColumn = &env.SmilesColumn
	}
	if env.CSS != "" && fc.CSS == nil {
		fc.CSS = &env.CSS
	}
}

// envVarNames returns every variable the CLI reads, including the browser
// and CI controls that live outside the M2G_ prefix, sorted.
func envVarNames() []string {
	names := make([]string, 0, len(knownEnvVars)+2)
	for name := range knownEnvVars {
		names = append(names, name)
	}
	names = append(names, "CI", "ROD_BROWSER_BIN")
	sort.Strings(names)
	return names
}

// runEnvCmd prints the recognized environment variables and their current
// values. With --yaml the listing is emitted as a YAML document instead.
func runEnvCmd(args []string, env *Environment) int {
	asYAML := false
	for _, arg := range args {
		if arg == "--yaml" {
			asYAML = true
		}
	}

	names := envVarNames()

	if asYAML {
		values := make(map[string]string, len(names))
		for _, name := range names {
			values[name] = os.Getenv(name)
		}
		out, err := confutil.Marshal(values)
		if err != nil {
			fmt.Fprintf(env.Stderr, "Error: %v\n", err)
			return ExitGeneral
		}
		fmt.Fprint(env.Stdout, string(out))
		return ExitSuccess
	}

	fmt.Fprintln(env.Stdout, "m2gimage environment")
	fmt.Fprintln(env.Stdout)
	for _, name := range names {
		value := os.Getenv(name)
		if value == "" {
			fmt.Fprintf(env.Stdout, "  %s (unset)\n", name)
			continue
		}
		fmt.Fprintf(env.Stdout, "  %s=%s\n", name, value)
	}
	warnUnknownEnvVars(env.Stdout)
	return ExitSuccess
}
