package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/hierview/pkg/errors"
	"github.com/matzehuels/hierview/pkg/graph"
	"github.com/matzehuels/hierview/pkg/httputil"
	"github.com/matzehuels/hierview/pkg/pipeline"
)

// treeFormats need the filtered tree, which a layout file does not carry.
var treeFormats = []string{pipeline.FormatDOT, pipeline.FormatOutline}

func (c *CLI) visualizeCommand() *cobra.Command {
	var render renderFlags

	cmd := &cobra.Command{
		Use:   "visualize <layout.json | url | ->",
		Short: "Draw a layout produced by 'layout'",
		Long: `Draw a layout produced by 'layout' as SVG, PNG or PDF.

A layout file already holds the geometry of every displayed node, so no
tree is built and the document is not needed. The layout may also be read
from an http(s) URL or, with '-', from standard input.

Formats that need the tree (dot, outline) are only available from 'render'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts pipeline.Options
			render.apply(&opts)
			if err := checkVisualizeFormats(opts.Formats); err != nil {
				return err
			}
			layout, err := readLayout(cmd.Context(), args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], layout, opts, render)
		},
	}
	render.register(cmd.Flags())
	return cmd
}

func checkVisualizeFormats(formats []string) error {
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}
	for _, f := range formats {
		if slices.Contains(treeFormats, f) {
			return errs.New(errs.ErrCodeInvalidFormat, "%s needs the tree; use 'render' on the document", f)
		}
	}
	return nil
}

// readLayout loads a layout from a file, a URL or stdin.
func readLayout(ctx context.Context, input string, stdin io.Reader) (graph.Layout, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case input == "-":
		data, err = io.ReadAll(stdin)
	case httputil.IsURL(input):
		data, err = httputil.Fetcher{}.Fetch(ctx, input)
	default:
		data, err = os.ReadFile(input)
	}
	if err != nil {
		return graph.Layout{}, fmt.Errorf("load layout %s: %w", input, err)
	}
	layout, err := graph.UnmarshalLayout(data)
	if err != nil {
		return graph.Layout{}, fmt.Errorf("load layout %s: %w", input, err)
	}
	return layout, nil
}

func (c *CLI) runVisualize(ctx context.Context, input string, layout graph.Layout, opts pipeline.Options, render renderFlags) error {
	opts.VizType = layout.VizType
	opts.Width, opts.Height = layout.Width, layout.Height
	opts.Logger = c.Logger

	runner, err := c.newRunner(render.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Drawing "+layout.VizType).FollowStages()
	spinner.Start()
	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, layout, nil, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	if input == "-" {
		input = "layout"
	}
	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    render.output,
		stats:     pipeline.Stats{PlacedCount: len(layout.Nodes)},
		hits:      []stageHit{{"render", cacheHit}},
	})
}
