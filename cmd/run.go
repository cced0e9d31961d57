package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"dexit/internal/config"
	"dexit/internal/loader"
	"dexit/internal/modules/core"
	"dexit/internal/registry"
	"dexit/internal/report"
	"dexit/internal/reporter"
	"dexit/internal/repository"
	"dexit/internal/runner"
	"dexit/internal/schema"
	"dexit/pkg/dexit"
	"dexit/pkg/logging"

	"github.com/spf13/cobra"
)

// errTestsFailed is returned by runE when the run itself completed but
// reported at least one failing test or task. Execute maps it to
// ExitCodeTestsFailed instead of ExitCodeBootstrapFailed.
var errTestsFailed = errors.New("tests failed")

var runFlags struct {
	basePath       string
	modulesPath    string
	noAutoload     bool
	noBuiltin      bool
	ignoreInvalid  bool
	reporters      []string
	debug          bool
	generateSchema string
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&runFlags.basePath, "base-path", "", "base directory for resolving relative module and fixture paths (default: manifest directory)")
	flags.StringVar(&runFlags.modulesPath, "modules-path", "", "directory of additional modules to autoload")
	flags.BoolVar(&runFlags.noAutoload, "no-autoload", false, "do not scan --modules-path for modules")
	flags.BoolVar(&runFlags.noBuiltin, "no-builtin", false, "do not register the built-in core module")
	flags.BoolVar(&runFlags.ignoreInvalid, "ignore-invalid", false, "drop test sets that fail validation instead of aborting the run")
	flags.StringArrayVar(&runFlags.reporters, "reporter", nil, "reporter to broadcast results to (repeatable): console, json, table, live")
	flags.BoolVar(&runFlags.debug, "debug", false, "enable debug-level logging")
	flags.StringVar(&runFlags.generateSchema, "generate-schema", "", "write the composed document JSON Schema to this file and exit, without running any tests")

	rootCmd.Args = cobra.MaximumNArgs(1)
	rootCmd.RunE = runE
}

func runE(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	overrides := config.Overrides{
		BasePath:           optionalString(cmd, "base-path", runFlags.basePath),
		ModulesPath:        optionalString(cmd, "modules-path", runFlags.modulesPath),
		LoadBuiltInModules: optionalBoolNegated(cmd, "no-builtin", runFlags.noBuiltin),
		AutoloadModules:    optionalBoolNegated(cmd, "no-autoload", runFlags.noAutoload),
		IgnoreInvalidTests: optionalBool(cmd, "ignore-invalid", runFlags.ignoreInvalid),
		Reporters:          runFlags.reporters,
		Debug:              optionalBool(cmd, "debug", runFlags.debug),
	}
	if len(args) > 0 {
		overrides.TestsPath = &args[0]
	}

	cfg, err := config.Load(config.DefaultManifestPath(), overrides)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	level := logging.LevelInfo
	if cfg.Debug {
		level = logging.LevelDebug
	}
	logging.Init(level, cmd.ErrOrStderr())

	reg := registry.New()
	if cfg.LoadBuiltInModules {
		if err := reg.Register(core.New()); err != nil {
			return fmt.Errorf("registering core module: %w", err)
		}
	}
	if cfg.AutoloadModules {
		modulesPath := cfg.ModulesPath
		if modulesPath == "" {
			modulesPath = filepath.Join(cfg.BasePath, "modules")
		}
		if err := reg.LoadFromPath(modulesPath); err != nil {
			return fmt.Errorf("autoloading modules: %w", err)
		}
	}

	if runFlags.generateSchema != "" {
		composed := schema.Compose(reg.GetAllModules())
		data, err := json.MarshalIndent(composed, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding schema: %w", err)
		}
		if err := os.WriteFile(runFlags.generateSchema, data, 0o644); err != nil {
			return fmt.Errorf("writing schema to %s: %w", runFlags.generateSchema, err)
		}
		return nil
	}

	reporters, err := buildReporters(cfg)
	if err != nil {
		return fmt.Errorf("configuring reporters: %w", err)
	}
	broadcast, err := report.New(reporters...)
	if err != nil {
		return fmt.Errorf("configuring reporters: %w", err)
	}

	repo, err := repository.New(reg)
	if err != nil {
		return fmt.Errorf("building repository: %w", err)
	}

	docs, err := loader.NewFileSystem(cfg.Debug).Load(ctx, cfg.TestsPath)
	if err != nil {
		return fmt.Errorf("loading test documents from %s: %w", cfg.TestsPath, err)
	}

	root, valErrs, err := repo.LoadDocuments(docs, cfg.IgnoreInvalidTests)
	if len(valErrs) > 0 {
		broadcast.LogValidationErrors(valErrs)
	}
	if err != nil {
		return fmt.Errorf("validating test documents: %w", err)
	}

	run := runner.New(reg, broadcast)
	complete := run.Run(ctx, root)
	complete.ValidationErrors = valErrs

	if err := broadcast.GenerateReport(complete); err != nil {
		return fmt.Errorf("generating report: %w", err)
	}

	if complete.ErrorCount > 0 {
		return errTestsFailed
	}
	return nil
}

func buildReporters(cfg config.Config) ([]dexit.Reporter, error) {
	names := cfg.Reporters
	if len(names) == 0 {
		names = []string{"console"}
	}
	reporters := make([]dexit.Reporter, 0, len(names))
	for _, name := range names {
		switch name {
		case "console":
			reporters = append(reporters, reporter.NewConsole(cfg.Debug))
		case "json":
			reporters = append(reporters, reporter.NewJSON())
		case "table":
			reporters = append(reporters, reporter.NewTable())
		case "live":
			reporters = append(reporters, reporter.NewLive())
		default:
			return nil, fmt.Errorf("unknown reporter %q", name)
		}
	}
	return reporters, nil
}

func optionalString(cmd *cobra.Command, flag string, value string) *string {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	return &value
}

func optionalBool(cmd *cobra.Command, flag string, value bool) *bool {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	return &value
}

// optionalBoolNegated handles flags that are phrased as a negation
// (--no-builtin, --no-autoload) but feed a positive Overrides field
// (LoadBuiltInModules, AutoloadModules).
func optionalBoolNegated(cmd *cobra.Command, flag string, negated bool) *bool {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	v := !negated
	return &v
}
