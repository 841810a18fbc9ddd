package main

// Notes:
// - Tests that set environment variables use t.Setenv and therefore must
//   NOT call t.Parallel(); pure-function tests below still run parallel.
// - The ambient environment may carry M2G_* variables, so "unset" subtests
//   pin every known variable to empty instead of assuming a clean slate.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/N283T/mols2grid-to-image/internal/config"
	"github.com/N283T/mols2grid-to-image/internal/confutil"
)

// clearKnownEnvVars pins every recognized variable to empty for the test.
func clearKnownEnvVars(t *testing.T) {
	t.Helper()
	for name := range knownEnvVars {
		t.Setenv(name, "")
	}
}

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	// NO t.Parallel() - subtests mutate the environment

	t.Run("essential variables", func(t *testing.T) {
		clearKnownEnvVars(t)
		t.Setenv("M2G_CONFIG", "team.yaml")
		t.Setenv("M2G_CSS", "dark")
		t.Setenv("M2G_TIMEOUT", "90s")

		cfg := loadEnvConfig()

		if cfg.ConfigPath != "team.yaml" {
			t.Errorf("ConfigPath = %q, want team.yaml", cfg.ConfigPath)
		}
		if cfg.CSS != "dark" {
			t.Errorf("CSS = %q, want dark", cfg.CSS)
		}
		if cfg.Timeout != 90*time.Second {
			t.Errorf("Timeout = %v, want 90s", cfg.Timeout)
		}
	})

	t.Run("output and dataset variables", func(t *testing.T) {
		clearKnownEnvVars(t)
		t.Setenv("M2G_OUTPUT", "grid.png")
		t.Setenv("M2G_OUTPUT_DIR", "/tmp/out")
		t.Setenv("M2G_SMILES_COL", "structure")

		cfg := loadEnvConfig()

		if cfg.Output != "grid.png" {
			t.Errorf("Output = %q, want grid.png", cfg.Output)
		}
		if cfg.OutputDir != "/tmp/out" {
			t.Errorf("OutputDir = %q, want /tmp/out", cfg.OutputDir)
		}
		if cfg.SmilesColumn != "structure" {
			t.Errorf("SmilesColumn = %q, want structure", cfg.SmilesColumn)
		}
	})

	t.Run("extended variables", func(t *testing.T) {
		clearKnownEnvVars(t)
		t.Setenv("M2G_SCRIPT_URL", "https://cdn.example.com/drawer.js")
		t.Setenv("M2G_WORKERS", "4")

		cfg := loadEnvConfig()

		if cfg.ScriptURL != "https://cdn.example.com/drawer.js" {
			t.Errorf("ScriptURL = %q", cfg.ScriptURL)
		}
		if cfg.Workers != 4 {
			t.Errorf("Workers = %d, want 4", cfg.Workers)
		}
	})

	t.Run("invalid timeout is ignored", func(t *testing.T) {
		clearKnownEnvVars(t)
		t.Setenv("M2G_TIMEOUT", "not-a-duration")

		if cfg := loadEnvConfig(); cfg.Timeout != 0 {
			t.Errorf("Timeout = %v, want 0", cfg.Timeout)
		}
	})

	t.Run("non-positive timeout is ignored", func(t *testing.T) {
		clearKnownEnvVars(t)
		t.Setenv("M2G_TIMEOUT", "-5s")

		if cfg := loadEnvConfig(); cfg.Timeout != 0 {
			t.Errorf("Timeout = %v, want 0", cfg.Timeout)
		}
	})

	t.Run("invalid workers is ignored", func(t *testing.T) {
		clearKnownEnvVars(t)
		t.Setenv("M2G_WORKERS", "abc")

		if cfg := loadEnvConfig(); cfg.Workers != 0 {
			t.Errorf("Workers = %d, want 0", cfg.Workers)
		}
	})

	t.Run("non-positive workers is ignored", func(t *testing.T) {
		clearKnownEnvVars(t)
		t.Setenv("M2G_WORKERS", "-2")

		if cfg := loadEnvConfig(); cfg.Workers != 0 {
			t.Errorf("Workers = %d, want 0", cfg.Workers)
		}
	})

	t.Run("empty environment yields zero values", func(t *testing.T) {
		clearKnownEnvVars(t)

		cfg := loadEnvConfig()

		if cfg.ConfigPath != "" || cfg.CSS != "" || cfg.Output != "" ||
			cfg.OutputDir != "" || cfg.SmilesColumn != "" || cfg.ScriptURL != "" {
			t.Errorf("string fields should be empty, got %+v", cfg)
		}
		if cfg.Timeout != 0 || cfg.Workers != 0 {
			t.Errorf("numeric fields should be zero, got %+v", cfg)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	// NO t.Parallel() - subtests mutate the environment

	t.Run("typo variables are reported", func(t *testing.T) {
		t.Setenv("M2G_SMILE_COL", "smiles") // missing S
		t.Setenv("M2G_TYPO", "1")

		var buf bytes.Buffer
		warnUnknownEnvVars(&buf)

		out := buf.String()
		if !strings.Contains(out, "unknown environment variable M2G_SMILE_COL (typo?)") {
			t.Errorf("should warn about M2G_SMILE_COL, got %q", out)
		}
		if !strings.Contains(out, "M2G_TYPO") {
			t.Errorf("should warn about M2G_TYPO, got %q", out)
		}
	})

	t.Run("known variables are not reported", func(t *testing.T) {
		t.Setenv("M2G_OUTPUT", "grid.png")
		t.Setenv("M2G_CONTAINER", "1")

		var buf bytes.Buffer
		warnUnknownEnvVars(&buf)

		out := buf.String()
		if strings.Contains(out, "M2G_OUTPUT ") || strings.Contains(out, "M2G_CONTAINER ") {
			t.Errorf("known variables should not warn, got %q", out)
		}
	})

	t.Run("variables outside the prefix are ignored", func(t *testing.T) {
		t.Setenv("MOLS2GRID_OUTPUT", "x")

		var buf bytes.Buffer
		warnUnknownEnvVars(&buf)

		if strings.Contains(buf.String(), "MOLS2GRID_OUTPUT") {
			t.Errorf("non-M2G variables should be ignored, got %q", buf.String())
		}
	})
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Environment tier below file config
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("fills fields the file left unset", func(t *testing.T) {
		t.Parallel()

		env := &envConfig{
			Output:       "env.png",
			OutputDir:    "env-out",
			SmilesColumn: "env_col",
			CSS:          "dark",
		}
		fc := &config.FileConfig{}

		applyEnvConfig(env, fc)

		if fc.Output == nil || *fc.Output != "env.png" {
			t.Errorf("Output = %v, want env.png", fc.Output)
		}
		if fc.OutputDir == nil || *fc.OutputDir != "env-out" {
			t.Errorf("OutputDir = %v, want env-out", fc.OutputDir)
		}
		if fc.SmilesColumn == nil || *fc.SmilesColumn != "env_col" {
			t.Errorf("SmilesColumn = %v, want env_col", fc.SmilesColumn)
		}
		if fc.CSS == nil || *fc.CSS != "dark" {
			t.Errorf("CSS = %v, want dark", fc.CSS)
		}
	})

	t.Run("never overrides file values", func(t *testing.T) {
		t.Parallel()

		fileOutput := "file.png"
		fileCSS := "default"
		env := &envConfig{Output: "env.png", CSS: "dark"}
		fc := &config.FileConfig{Output: &fileOutput, CSS: &fileCSS}

		applyEnvConfig(env, fc)

		if *fc.Output != "file.png" {
			t.Errorf("Output = %q, file value should win", *fc.Output)
		}
		if *fc.CSS != "default" {
			t.Errorf("CSS = %q, file value should win", *fc.CSS)
		}
	})

	t.Run("empty environment values fill nothing", func(t *testing.T) {
		t.Parallel()

		fc := &config.FileConfig{}

		applyEnvConfig(&envConfig{}, fc)

		if fc.Output != nil || fc.OutputDir != nil || fc.SmilesColumn != nil || fc.CSS != nil {
			t.Errorf("empty env should leave the file config untouched, got %+v", fc)
		}
	})
}

// ---------------------------------------------------------------------------
// TestKnownEnvVars - Recognized variable list
// ---------------------------------------------------------------------------

func TestKnownEnvVars(t *testing.T) {
	t.Parallel()

	want := []string{
		"M2G_CONFIG",
		"M2G_CSS",
		"M2G_TIMEOUT",
		"M2G_OUTPUT",
		"M2G_OUTPUT_DIR",
		"M2G_SMILES_COL",
		"M2G_SCRIPT_URL",
		"M2G_WORKERS",
		"M2G_CONTAINER",
	}

	for _, name := range want {
		if !knownEnvVars[name] {
			t.Errorf("knownEnvVars missing %s", name)
		}
	}
	if len(knownEnvVars) != len(want) {
		t.Errorf("len(knownEnvVars) = %d, want %d; keep this test in sync when adding variables",
			len(knownEnvVars), len(want))
	}
}

// ---------------------------------------------------------------------------
// TestEnvVarNames - Display list for the env command
// ---------------------------------------------------------------------------

func TestEnvVarNames(t *testing.T) {
	t.Parallel()

	names := envVarNames()

	if len(names) != len(knownEnvVars)+2 {
		t.Fatalf("len(names) = %d, want %d", len(names), len(knownEnvVars)+2)
	}

	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	if !found["CI"] || !found["ROD_BROWSER_BIN"] {
		t.Errorf("names should include CI and ROD_BROWSER_BIN, got %v", names)
	}

	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("names not sorted: %q before %q", names[i-1], names[i])
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunEnvCmd - env command output
// ---------------------------------------------------------------------------

func TestRunEnvCmd(t *testing.T) {
	// NO t.Parallel() - mutates the environment

	t.Run("human output lists every variable", func(t *testing.T) {
		clearKnownEnvVars(t)
		t.Setenv("M2G_OUTPUT", "custom.png")

		env, stdout, _ := testEnv(t)

		if code := runEnvCmd(nil, env); code != ExitSuccess {
			t.Fatalf("runEnvCmd() = %d, want %d", code, ExitSuccess)
		}

		out := stdout.String()
		if !strings.Contains(out, "m2gimage environment") {
			t.Errorf("missing header, got %q", out)
		}
		if !strings.Contains(out, "M2G_OUTPUT=custom.png") {
			t.Errorf("set variable should show its value, got %q", out)
		}
		if !strings.Contains(out, "M2G_CONFIG (unset)") {
			t.Errorf("unset variable should be marked, got %q", out)
		}
		if !strings.Contains(out, "ROD_BROWSER_BIN") {
			t.Errorf("browser control variable should be listed, got %q", out)
		}
	})

	t.Run("yaml output round-trips", func(t *testing.T) {
		clearKnownEnvVars(t)
		t.Setenv("M2G_SMILES_COL", "structure")

		env, stdout, _ := testEnv(t)

		if code := runEnvCmd([]string{"--yaml"}, env); code != ExitSuccess {
			t.Fatalf("runEnvCmd(--yaml) = %d, want %d", code, ExitSuccess)
		}

		values, err := confutil.DecodeMap(stdout.Bytes())
		if err != nil {
			t.Fatalf("output is not valid YAML: %v\n%s", err, stdout.String())
		}
		if values["M2G_SMILES_COL"] != "structure" {
			t.Errorf("M2G_SMILES_COL = %v, want structure", values["M2G_SMILES_COL"])
		}
		if _, ok := values["CI"]; !ok {
			t.Errorf("YAML should include CI, got %v", values)
		}
	})

	t.Run("typo warnings ride along", func(t *testing.T) {
		clearKnownEnvVars(t)
		t.Setenv("M2G_OUPUT", "grid.png") // missing T

		env, stdout, _ := testEnv(t)

		runEnvCmd(nil, env)

		if !strings.Contains(stdout.String(), "M2G_OUPUT (typo?)") {
			t.Errorf("should warn about the typo, got %q", stdout.String())
		}
	})
}
