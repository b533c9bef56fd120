package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tbruckner/seqgraph/pkg/edit"
	gio "github.com/tbruckner/seqgraph/pkg/io"
)

// editCommand creates the edit command for threading paths through a graph.
func (c *CLI) editCommand() *cobra.Command {
	var (
		pathsFile   string
		output      string
		dryRun      bool
		preserve    bool
		breakEnds   bool
		maxNodeSize int
	)

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Thread JSON paths through a graph",
		Long: `Edit divides nodes at the breakpoints the paths imply, materializes novel
sequence as new nodes, and wires the edges each walk needs. The rewritten
paths are printed as JSON unless --preserve-edits keeps the input ones.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := gio.ImportJSON(args[0])
			if err != nil {
				return err
			}
			paths, err := gio.ImportPathsJSON(pathsFile)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("max-node-size") {
				maxNodeSize = c.config.Edit.MaxNodeSize
			}
			if !cmd.Flags().Changed("break-at-ends") {
				breakEnds = c.config.Edit.BreakAtEnds
			}

			p := newProgress(c.Logger)
			result, err := edit.Apply(g, paths, edit.Options{
				DryRun:        dryRun,
				PreserveEdits: preserve,
				BreakAtEnds:   breakEnds,
				MaxNodeSize:   maxNodeSize,
			})
			if err != nil {
				return fmt.Errorf("edit %s: %w", args[0], err)
			}
			p.done(fmt.Sprintf("Threaded %d paths; graph now %d nodes, %d edges",
				len(result), g.NodeCount(), g.EdgeCount()))

			if output != "" {
				if err := gio.ExportJSON(g, output); err != nil {
					return err
				}
			}
			return gio.WritePathsJSON(result, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&pathsFile, "paths", "p", "", "JSON file with the paths to thread (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the edited graph to this file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "plan the edit without changing the graph")
	cmd.Flags().BoolVar(&preserve, "preserve-edits", false, "return the input paths instead of rewritten matches")
	cmd.Flags().BoolVar(&breakEnds, "break-at-ends", false, "also break nodes at mapping boundaries")
	cmd.Flags().IntVar(&maxNodeSize, "max-node-size", 0, "chunk novel insertions to this many bases (0 = unlimited)")
	_ = cmd.MarkFlagRequired("paths")

	return cmd
}
