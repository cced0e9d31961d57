package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes for the dexit CLI. A clean all-green run exits 0, a run that
// completed but reported at least one test or task failure exits 1, and a
// failure to get a run started at all (bad flags, missing tests directory,
// schema validation failure) exits 2.
const (
	ExitCodeSuccess         = 0
	ExitCodeTestsFailed     = 1
	ExitCodeBootstrapFailed = 2
)

// rootCmd represents the base command for the dexit application.
var rootCmd = &cobra.Command{
	Use:   "dexit",
	Short: "Run declarative YAML integration test suites",
	Long: `dexit loads a directory of declarative YAML test documents, validates
them against a schema composed from the modules in use, and runs the
resulting test sets with dependency-aware scheduling, reporting results
through one or more pluggable reporters.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "dexit version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errTestsFailed) {
			os.Exit(ExitCodeTestsFailed)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitCodeBootstrapFailed)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
}
