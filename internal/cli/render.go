package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tbruckner/seqgraph/pkg/cache"
	gio "github.com/tbruckner/seqgraph/pkg/io"
	"github.com/tbruckner/seqgraph/pkg/render"
)

// cacheTTL bounds how long rendered artifacts are kept.
const cacheTTL = 7 * 24 * time.Hour

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string  // output file path (default stdout for dot)
	format   string  // output format: "dot", "svg", "pdf", "png"
	detailed bool    // full sequences and lengths in node labels
	scale    float64 // raster scale factor for png
	noCache  bool    // bypass the rendered-artifact cache
}

// renderCommand creates the render command for drawing a graph.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a graph as a node-link diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				opts.format = c.config.Render.Format
			}
			if !cmd.Flags().Changed("detailed") {
				opts.detailed = c.config.Render.Detailed
			}
			if !cmd.Flags().Changed("scale") {
				opts.scale = c.config.Render.Scale
			}
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout for dot, required otherwise)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", defaultConfig().Render.Format, "output format: svg (default), dot, pdf, png")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show full sequences and lengths")
	cmd.Flags().Float64Var(&opts.scale, "scale", defaultConfig().Render.Scale, "raster scale factor for png")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the rendered-artifact cache")

	return cmd
}

func validateFormat(format string) error {
	switch format {
	case "dot", "svg", "pdf", "png":
		return nil
	}
	return fmt.Errorf("unknown format %q (want dot, svg, pdf, or png)", format)
}

func (c *CLI) runRender(cmd *cobra.Command, file string, opts *renderOpts) error {
	g, err := gio.ImportJSON(file)
	if err != nil {
		return err
	}

	p := newProgress(c.Logger)
	dot := render.ToDOT(g, render.Options{Detailed: opts.detailed})

	var out []byte
	if opts.format == "dot" {
		out = []byte(dot)
	} else {
		out, err = c.renderCached(cmd.Context(), dot, opts)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", file, err)
	}
	p.done(fmt.Sprintf("Rendered %d nodes to %s", g.NodeCount(), strings.ToUpper(opts.format)))

	if opts.output == "" {
		if opts.format != "dot" {
			return fmt.Errorf("binary %s output needs --output", opts.format)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(opts.output, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	return nil
}

// renderCached renders dot to the requested format, serving repeated renders
// of the same source from the artifact cache.
func (c *CLI) renderCached(ctx context.Context, dot string, opts *renderOpts) ([]byte, error) {
	store := newCache(opts.noCache)
	defer store.Close()
	key := cache.RenderKey(cache.Hash([]byte(dot)), opts.format, opts.scale, opts.detailed)

	if data, ok, err := store.Get(ctx, key); err == nil && ok {
		c.Logger.Debugf("render cache hit %s", opts.format)
		return data, nil
	}

	var out []byte
	var err error
	switch opts.format {
	case "svg":
		out, err = render.SVG(dot)
	case "pdf":
		out, err = render.PDF(dot)
	case "png":
		out, err = render.PNG(dot, opts.scale)
	}
	if err != nil {
		return nil, err
	}
	if err := store.Set(ctx, key, out, cacheTTL); err != nil {
		c.Logger.Debugf("render cache write failed: %v", err)
	}
	return out, nil
}

// newCache opens the on-disk artifact cache, falling back to a no-op cache
// when disabled or when no cache directory is available.
func newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return c
}

// cacheDir returns the cache directory using XDG standard (~/.cache/seqgraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
