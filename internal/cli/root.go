// Package cli wires the plowgen commands: generate (the batch project
// generator) and preview (a dry-run render of one record's documents).
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/BonHowi/plowgen/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "plowgen",
	Short: "Generate per-customer dbt projects for Snowplow Unified",
	Long: `plowgen turns customer record files (JSON) into ready-to-run dbt
projects for the Snowplow Unified package: dbt_project.yml with the
customer's derived variables, packages.yml, an example connection
profile, and a README.`,
	Version:      version.GetVersion(),
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("plowgen %s\n", version.GetVersion()))
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}

// getIntFlag retrieves an int flag value from the command.
func getIntFlag(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		return 0
	}
	return val
}

// newLogger builds the command's logger. Logs go to stderr so generated
// document previews on stdout stay clean.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if v, err := cmd.Flags().GetBool("verbose"); err == nil && v {
		level = slog.LevelDebug
	}
	var out io.Writer = os.Stderr
	if w := cmd.ErrOrStderr(); w != nil {
		out = w
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}
