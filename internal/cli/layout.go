package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hierview/pkg/pipeline"
)

// layoutCommand creates the layout command for computing visualization layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		view    viewFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [document]",
		Short: "Compute a placed layout from a tree document",
		Long: `Compute a placed layout from a tree document.

The layout command reads a JSON, YAML or TOML tree document, applies the view
state (drill root, isolate stack, disclosure) and writes the placed nodes to a
layout.json file that 'visualize' renders to SVG, PNG or PDF.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := view.options(args[0])
			opts.Formats = []string{pipeline.FormatJSON}
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	view.register(cmd.Flags())

	return cmd
}

// runLayout computes the layout and writes its JSON form.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newSessionRunner(noCache, opts.Session != "")
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	run := startRun(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Computing layout...").FollowStages()
	spinner.Start()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()
	run.done("Computed layout "+opts.Path, res)

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", opts.Path) + ".layout.json"
	}
	if err := os.WriteFile(outputPath, res.Artifacts[pipeline.FormatJSON], 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(res.Stats, layoutHits(res.CacheInfo, false)...)
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}

// newSessionRunner creates a runner that can restore sessions from the local
// store when withSessions is set.
func (c *CLI) newSessionRunner(noCache, withSessions bool) (*pipeline.Runner, error) {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return nil, err
	}
	if withSessions {
		store, err := newSessionStore()
		if err != nil {
			runner.Close()
			return nil, fmt.Errorf("open sessions: %w", err)
		}
		runner.WithSessions(store)
	}
	return runner, nil
}
