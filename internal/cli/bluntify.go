package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	gio "github.com/tbruckner/seqgraph/pkg/io"
)

// bluntifyCommand creates the bluntify command for resolving overlap edges.
func (c *CLI) bluntifyCommand() *cobra.Command {
	var (
		output string
		unchop bool
	)

	cmd := &cobra.Command{
		Use:   "bluntify [file]",
		Short: "Resolve overlapped edges into blunt-ended topology",
		Long: `Bluntify cuts nodes at overlap boundaries, merges the shared pieces, and
rewires the surrounding edges, leaving a graph where every edge joins two
sequence ends without shared bases. With --unchop, runs of nodes left behind
by the cutting are merged back together afterwards.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := gio.ImportJSON(args[0])
			if err != nil {
				return err
			}

			p := newProgress(c.Logger)
			if err := g.Bluntify(); err != nil {
				return fmt.Errorf("bluntify %s: %w", args[0], err)
			}
			if unchop {
				merged := g.Unchop()
				c.Logger.Debugf("unchop merged %d node runs", merged)
			}
			p.done(fmt.Sprintf("Bluntified into %d nodes, %d edges", g.NodeCount(), g.EdgeCount()))

			if output == "" {
				return gio.WriteJSON(g, cmd.OutOrStdout())
			}
			return gio.ExportJSON(g, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&unchop, "unchop", false, "merge mergeable node runs after bluntifying")

	return cmd
}
