package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hierview/pkg/anim"
	"github.com/matzehuels/hierview/pkg/pipeline"
)

// diffCommand creates the diff command, which lists the animation steps
// between two view states.
func (c *CLI) diffCommand() *cobra.Command {
	var (
		from, to viewFlags
		output   string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "diff [document] [changed-document]",
		Short: "List the animation steps between two view states",
		Long: `List the animation steps between two view states.

The from state is the first document with the usual view flags; the to state
is the second document (default: the first) with the --to-* flags. Changes are
replayed as a data swap, a drill, isolate stack edits and disclosure toggles,
and every step reports its delete, update and insert tasks.`,
		Example: `  hierview diff sizes.json --to-root src
  hierview diff before.yaml after.yaml -t treemap --to-isolate src,src/pkg
  hierview diff tree.json --to-expanded root,src --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			before := from.options(args[0])
			afterPath := args[0]
			if len(args) == 2 {
				afterPath = args[1]
			}
			// Layout settings are shared; only the view state differs.
			after := from.options(afterPath)
			after.RootID, after.Session = to.opts.RootID, to.opts.Session
			after.Isolated, after.Expanded = nil, nil
			if to.isolated != "" {
				after.Isolated = parseList(to.isolated)
			}
			if to.expanded != "" {
				after.Expanded = parseList(to.expanded)
			}
			return c.runDiff(cmd.Context(), before, after, output, asJSON)
		},
	}

	from.register(cmd.Flags())
	to.registerState(cmd.Flags(), "to-")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the steps as JSON to this file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the steps as JSON")

	return cmd
}

func (c *CLI) runDiff(ctx context.Context, from, to pipeline.Options, output string, asJSON bool) error {
	runner, err := c.newSessionRunner(true, from.Session != "" || to.Session != "")
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	from.Logger, to.Logger = c.Logger, c.Logger
	steps, err := runner.Transition(ctx, from, to)
	if err != nil {
		return err
	}

	if output != "" || asJSON {
		data, err := json.MarshalIndent(steps, "", "  ")
		if err != nil {
			return fmt.Errorf("encode steps: %w", err)
		}
		if output != "" {
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Wrote %d steps", len(steps))
			printFile(output)
			return nil
		}
		fmt.Println(string(data))
		return nil
	}

	if len(steps) == 0 {
		printInfo("No changes")
		return nil
	}
	fmt.Println(renderSteps(steps))
	return nil
}

// renderSteps formats the steps as a table.
func renderSteps(steps []pipeline.Step) string {
	rows := make([][]string, 0, len(steps))
	for i, s := range steps {
		target := s.Target
		if target == "" {
			target = "—"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			s.Action,
			target,
			strconv.Itoa(s.Deletes),
			strconv.Itoa(s.Updates),
			strconv.Itoa(s.Inserts),
			phases(s.Tasks),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers("#", "Action", "Target", "Del", "Upd", "Ins", "Phases").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 1:
				return StyleHighlight
			case col >= 3 && col <= 5:
				return StyleNumber
			}
			return StyleValue
		})
	return t.Render()
}

// phases lists the animation phases with work, in play order.
func phases(tasks []anim.Task) string {
	has := map[anim.Kind]bool{}
	for _, t := range tasks {
		has[t.Kind] = true
	}
	var names []string
	for _, k := range []anim.Kind{anim.Delete, anim.Update, anim.Insert} {
		if has[k] {
			names = append(names, k.String())
		}
	}
	if len(names) == 0 {
		return "—"
	}
	return strings.Join(names, " → ")
}
