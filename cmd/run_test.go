package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"dexit/internal/config"

	"github.com/spf13/cobra"
)

// newTestRunCmd builds a standalone command wired the same way init() wires
// rootCmd, so each test gets its own flag state instead of fighting over
// the package-level rootCmd's Changed() bookkeeping across Execute calls.
func newTestRunCmd() *cobra.Command {
	runFlags = struct {
		basePath       string
		modulesPath    string
		noAutoload     bool
		noBuiltin      bool
		ignoreInvalid  bool
		reporters      []string
		debug          bool
		generateSchema string
	}{}

	cmd := &cobra.Command{Use: "dexit", Args: cobra.MaximumNArgs(1), RunE: runE}
	flags := cmd.Flags()
	flags.StringVar(&runFlags.basePath, "base-path", "", "")
	flags.StringVar(&runFlags.modulesPath, "modules-path", "", "")
	flags.BoolVar(&runFlags.noAutoload, "no-autoload", false, "")
	flags.BoolVar(&runFlags.noBuiltin, "no-builtin", false, "")
	flags.BoolVar(&runFlags.ignoreInvalid, "ignore-invalid", false, "")
	flags.StringArrayVar(&runFlags.reporters, "reporter", nil, "")
	flags.BoolVar(&runFlags.debug, "debug", false, "")
	flags.StringVar(&runFlags.generateSchema, "generate-schema", "", "")
	return cmd
}

func writeTestDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
}

func TestRunE_PassingTestsExitsClean(t *testing.T) {
	dir := t.TempDir()
	writeTestDoc(t, dir, "api.yaml", "name: api\ntests:\n  - name: echoes\n    description: echoes its args back\n    tasks:\n      - do: core.echo\n        args:\n          message: hi\n")

	cmd := newTestRunCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{dir, "--reporter", "json", "--no-autoload"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected clean run, got error: %v (output: %s)", err, out.String())
	}
}

func TestRunE_FailingTestReturnsErrTestsFailed(t *testing.T) {
	dir := t.TempDir()
	writeTestDoc(t, dir, "api.yaml", "name: api\ntests:\n  - name: fails\n    description: always fails\n    tasks:\n      - do: core.fail\n")

	cmd := newTestRunCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{dir, "--reporter", "json", "--no-autoload"})

	err := cmd.Execute()
	if !errors.Is(err, errTestsFailed) {
		t.Fatalf("expected errTestsFailed, got %v", err)
	}
}

func TestRunE_MissingTestsPathIsBootstrapFailure(t *testing.T) {
	cmd := newTestRunCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "does-not-exist"), "--no-autoload"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected an error for a missing tests path")
	}
	if errors.Is(err, errTestsFailed) {
		t.Fatal("missing tests path should not be reported as a test failure")
	}
}

func TestRunE_GenerateSchemaWritesFileAndSkipsRun(t *testing.T) {
	dir := t.TempDir()
	writeTestDoc(t, dir, "api.yaml", "name: api\ntests:\n  - name: fails\n    description: always fails\n    tasks:\n      - do: core.fail\n")
	schemaPath := filepath.Join(t.TempDir(), "schema.json")

	cmd := newTestRunCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{dir, "--no-autoload", "--generate-schema", schemaPath})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected generate-schema to succeed, got %v", err)
	}
	data, err := os.ReadFile(schemaPath)
	if err != nil {
		t.Fatalf("expected schema file to be written: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty schema file")
	}
}

func TestRunE_UnknownReporterNameIsBootstrapFailure(t *testing.T) {
	dir := t.TempDir()
	writeTestDoc(t, dir, "api.yaml", "name: api\ntests: []\n")

	cmd := newTestRunCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{dir, "--no-autoload", "--reporter", "nope"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected an error for an unknown reporter name")
	}
	if errors.Is(err, errTestsFailed) {
		t.Fatal("unknown reporter should not be reported as a test failure")
	}
}

func TestBuildReporters_DefaultsToConsoleWhenUnset(t *testing.T) {
	reporters, err := buildReporters(config.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reporters) != 1 {
		t.Fatalf("expected exactly one default reporter, got %d", len(reporters))
	}
}

func TestBuildReporters_UnknownNameErrors(t *testing.T) {
	_, err := buildReporters(config.Config{Reporters: []string{"nope"}})
	if err == nil {
		t.Fatal("expected an error for an unknown reporter name")
	}
}
