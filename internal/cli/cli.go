// Package cli implements the seqgraph command-line interface.
//
// This package provides commands for inspecting and transforming bidirected
// sequence graphs: summary statistics, overlap resolution, bounded acyclic
// unfolding, path-driven editing, and diagram rendering. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - stats: Print node, edge, and topology statistics for a graph
//   - bluntify: Resolve overlapped edges into blunt-ended topology
//   - unfold: Unroll reverse-strand structure within a length limit
//   - edit: Thread JSON paths through a graph
//   - render: Generate DOT, SVG, PDF, or PNG diagrams
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// lives on the CLI struct and is shared by all commands.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tbruckner/seqgraph/pkg/buildinfo"
)

// appName is the application name used for config lookup and display.
const appName = "seqgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Seqgraph inspects and transforms bidirected sequence graphs",
		Long:         `Seqgraph is a CLI tool for working with bidirected DNA sequence graphs: resolving overlaps, unfolding reverse-strand structure, threading paths, and rendering the topology.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+defaultConfigFile+" if present)")

	root.AddCommand(c.statsCommand())
	root.AddCommand(c.bluntifyCommand())
	root.AddCommand(c.unfoldCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.completionCommand())

	return root
}
