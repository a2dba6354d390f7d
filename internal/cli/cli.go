// SPDX-License-Identifier: MIT

// Package cli implements the balclust command-line interface.
//
// # Commands
//
//   - cluster: partition the graph of a Matrix Market file into balanced
//     clusters and print one "vertex cluster" line per vertex
//   - version: print build information
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which
// includes one record per Relax + Recenter round.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const appName = "balclust"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion records build information injected via ldflags.
func SetVersion(v, c, d string) {
	version, commit, date = v, c, d
}

// versionString renders the build information.
func versionString() string {
	return fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\n", appName, version, commit, date)
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI logging to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// newLogger creates a timestamped logger.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          appName,
	})
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Balanced Lloyd clustering of sparse graphs",
		Long:         `balclust partitions the vertices of a weighted sparse graph into connected clusters of similar size, each grown around a center vertex (balanced Lloyd / graph k-means), as used to build aggregates for algebraic multigrid.`,
		Version:      version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(versionString())

	root.AddCommand(c.clusterCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// versionCommand prints build information.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), versionString())
			return err
		},
	}
}
