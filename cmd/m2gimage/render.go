package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	m2gimage "github.com/N283T/mols2grid-to-image"
	"github.com/N283T/mols2grid-to-image/internal/config"
	"github.com/N283T/mols2grid-to-image/internal/dataset"
	"github.com/N283T/mols2grid-to-image/internal/hints"
	"github.com/N283T/mols2grid-to-image/internal/paginate"
)

// ErrNoInput is returned when no dataset is named by argument or config.
var ErrNoInput = errors.New("no input specified")

// runRenderCmd parses render flags, builds the service pool, and runs the
// render pipeline, mapping any failure to an exit code.
func runRenderCmd(args []string, env *Environment) int {
	flags, positional, err := parseRenderFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	workers := flags.workers
	if !flags.changed("workers") && envCfg.Workers > 0 {
		workers = envCfg.Workers
	}
	if err := validateWorkers(workers); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	timeout, err := resolveTimeoutWithEnv(flags.timeout, envCfg.Timeout)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	opts := []m2gimage.Option{m2gimage.WithAssetLoader(env.AssetLoader)}
	if timeout > 0 {
		opts = append(opts, m2gimage.WithTimeout(timeout))
	}

	poolSize := m2gimage.ResolvePoolSize(workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}
	pool := m2gimage.NewServicePool(poolSize, opts...)
	defer func() { _ = pool.Close() }()

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runRender(ctx, positional, flags, envCfg, &poolAdapter{pool: pool}, env); err != nil {
		fmt.Fprintf(env.Stderr, "%v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runRender executes the render pipeline: resolve configuration, load the
// dataset, plan pages, render them through the pool, and report results.
func runRender(ctx context.Context, positional []string, flags *renderFlags, envCfg *envConfig, pool Pool, env *Environment) error {
	fc, err := loadFileConfig(flags, envCfg, env)
	if err != nil {
		return err
	}

	// Environment values fill whatever the file left unset.
	applyEnvConfig(envCfg, fc)

	cfg, err := config.Resolve(flags.overrides(positional), fc)
	if err != nil {
		return err
	}

	if cfg.Input == "" {
		return ErrNoInput
	}

	table, err := dataset.Read(cfg.Input)
	if err != nil {
		return err
	}

	if err := table.Require(cfg.SmilesColumn); err != nil {
		return err
	}

	if cfg.SortBy != "" {
		if err := table.SortBy(cfg.SortBy); err != nil {
			return fmt.Errorf("%w%s", err, hints.ForColumnMissing(table.Columns()))
		}
	}

	cfg = cfg.DeriveSubset(table.Columns())

	items, err := buildItems(table, cfg.SmilesColumn, cfg.Subset)
	if err != nil {
		return err
	}

	css, err := resolveUserCSS(cfg.CSS, env.AssetLoader)
	if err != nil {
		return err
	}

	outputHTML := cfg.OutputHTML
	if flags.output.htmlOnly && outputHTML == "" {
		outputHTML = htmlOutputPath(cfg.Output)
	}

	pages, err := paginate.Plan(cfg.ItemsPerPage, table.RowCount(), cfg.Output, outputHTML, cfg.OutputDir)
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		if !flags.common.quiet {
			fmt.Fprintln(env.Stdout, "no pages generated (dataset has no rows)")
		}
		return nil
	}

	scriptURL := flags.drawer.scriptURL
	if scriptURL == "" {
		scriptURL = envCfg.ScriptURL
	}

	params := &renderParams{
		items:       items,
		grid:        buildGridOptions(cfg, scriptURL),
		css:         css,
		transparent: cfg.Transparent,
		htmlOnly:    flags.output.htmlOnly,
	}

	results := renderBatch(ctx, pool, pages, params)

	if failed := printPageResults(results, flags.common.quiet, flags.common.verbose, env); failed > 0 {
		return batchError(results, failed)
	}
	return nil
}

// loadFileConfig loads the config document named by flag or environment.
// No config name means an empty document; unknown keys warn but never fail.
func loadFileConfig(flags *renderFlags, envCfg *envConfig, env *Environment) (*config.FileConfig, error) {
	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	if configName == "" {
		return &config.FileConfig{}, nil
	}

	fc, err := config.Load(configName)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	for _, key := range fc.Unknown {
		fmt.Fprintf(env.Stderr, "warning: unknown config key %q\n", key)
	}
	return fc, nil
}

// batchError summarizes a failed batch, wrapping the first page error so
// exit code mapping sees the underlying cause.
func batchError(results []PageResult, failed int) error {
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("%d page(s) failed: %w", failed, r.Err)
		}
	}
	return fmt.Errorf("%d page(s) failed", failed)
}

// hintFor returns an actionable hint for errors with a known remedy.
// Hints that need request context (available columns, searched paths) are
// attached at the failure site instead.
func hintFor(err error) string {
	switch {
	case errors.Is(err, m2gimage.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, m2gimage.ErrImageCapture):
		return hints.ForTimeout() + hints.ForScriptLoad()
	case errors.Is(err, m2gimage.ErrStyleNotFound):
		return hints.ForStyleNotFound([]string{m2gimage.DefaultStyle, m2gimage.DarkStyle})
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	}
	return ""
}
