package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	gio "github.com/tbruckner/seqgraph/pkg/io"
)

// statsCommand creates the stats command for summarizing a graph.
func (c *CLI) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [file]",
		Short: "Print node, edge, and topology statistics for a graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := gio.ImportJSON(args[0])
			if err != nil {
				return err
			}

			reversing := 0
			overlapped := 0
			for _, e := range g.Edges() {
				if e.Reversing() {
					reversing++
				}
				if e.Overlap > 0 {
					overlapped++
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "nodes:       %d\n", g.NodeCount())
			fmt.Fprintf(out, "edges:       %d\n", g.EdgeCount())
			fmt.Fprintf(out, "reversing:   %d\n", reversing)
			fmt.Fprintf(out, "overlapped:  %d\n", overlapped)
			fmt.Fprintf(out, "length:      %d bp\n", g.TotalLength())
			fmt.Fprintf(out, "acyclic:     %v\n", g.IsAcyclic())
			fmt.Fprintf(out, "connected:   %v\n", g.IsConnected())
			return nil
		},
	}
}
