package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	gio "github.com/tbruckner/seqgraph/pkg/io"
)

// unfoldCommand creates the unfold command for unrolling reverse-strand
// structure.
func (c *CLI) unfoldCommand() *cobra.Command {
	var (
		output string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "unfold [file]",
		Short: "Unroll reverse-strand structure within a length limit",
		Long: `Unfold duplicates the stretches of reverse strand reachable within the
length limit, so that walks up to that length never need a reversing edge.
Each output node corresponds to one orientation of an input node; the
mapping is reported at debug level.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := gio.ImportJSON(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = c.config.Unfold.Limit
			}

			p := newProgress(c.Logger)
			unfolded, trans := g.Unfold(limit)
			p.done(fmt.Sprintf("Unfolded %d nodes into %d", g.NodeCount(), unfolded.NodeCount()))

			for _, n := range unfolded.Nodes() {
				orig := trans[n.ID]
				strand := "+"
				if orig.Flipped {
					strand = "-"
				}
				c.Logger.Debugf("node %d from %d%s", n.ID, orig.ID, strand)
			}

			if output == "" {
				return gio.WriteJSON(unfolded, cmd.OutOrStdout())
			}
			return gio.ExportJSON(unfolded, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().IntVarP(&limit, "limit", "l", defaultConfig().Unfold.Limit, "length limit in bases")

	return cmd
}
