package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hierview/pkg/pipeline"
)

// renderCommand creates the render command for generating visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var view viewFlags
	render := renderFlags{allowAll: true}

	cmd := &cobra.Command{
		Use:   "render [document]",
		Short: "Render a tree document to SVG, PNG, PDF, JSON, DOT or an outline",
		Long: `Render a tree document.

The render command runs the whole pipeline: it reads the document, applies the
view state, computes the layout and writes one file per requested format.

  svg, png, pdf   the sunburst or treemap drawing
  json            the placed layout (same as 'layout')
  dot, outline    the displayed subtree as a Graphviz graph, as source or SVG

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := view.options(args[0])
			render.apply(&opts)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, render.output, render.noCache)
		},
	}

	view.register(cmd.Flags())
	render.register(cmd.Flags())

	return cmd
}

// runRender executes the pipeline and writes every artifact.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newSessionRunner(noCache, opts.Session != "")
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	run := startRun(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Rendering...").FollowStages()
	spinner.Start()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	run.done("Rendered "+opts.Path, res)

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: res.Artifacts,
		formats:   opts.Formats,
		input:     opts.Path,
		output:    output,
		stats:     res.Stats,
		hits:      layoutHits(res.CacheInfo, true),
	})
}

// artifactWriteParams holds what writeArtifacts needs.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	stats     pipeline.Stats
	hits      []stageHit
}

// artifactPath returns the file an artifact is written to. A single format
// honours output verbatim; several formats share its base path.
func artifactPath(p artifactWriteParams, format string) string {
	if len(p.formats) == 1 && p.output != "" {
		return p.output
	}
	return basePath(p.output, p.input) + "." + artifactExt(format)
}

// artifactExt maps a format to its file extension.
func artifactExt(format string) string {
	switch format {
	case pipeline.FormatOutline:
		return "outline.svg"
	case pipeline.FormatJSON:
		return "layout.json"
	default:
		return format
	}
}

// writeArtifacts writes the rendered artifacts and prints a summary.
func writeArtifacts(p artifactWriteParams) error {
	var written []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := artifactPath(p, format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	printSuccess("Render complete")
	for _, path := range written {
		printFile(path)
	}
	printStats(p.stats, p.hits...)
	return nil
}
