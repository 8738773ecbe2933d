package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hierview/pkg/pipeline"
	"github.com/matzehuels/hierview/pkg/session"
)

// exploreCommand creates the interactive explorer.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		view   viewFlags
		noSave bool
	)

	cmd := &cobra.Command{
		Use:   "explore [document]",
		Short: "Browse a tree document interactively",
		Long: `Browse a tree document interactively.

Arrow keys (or h/j/k/l) move the focus, enter drills into the focused node and
u drills back up. Treemaps isolate with i and restore with r; sunbursts
expand and collapse with space.

The final view state is saved as a session so that 'render --session <id>'
reproduces it. Pass --session to continue an earlier one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplore(cmd.Context(), view.options(args[0]), !noSave)
		},
	}

	view.register(cmd.Flags())
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not save the view state on exit")

	return cmd
}

func (c *CLI) runExplore(ctx context.Context, opts pipeline.Options, save bool) error {
	store, err := newSessionStore()
	if err != nil {
		return fmt.Errorf("open sessions: %w", err)
	}
	runner := pipeline.NewRunner(nil, nil, c.Logger).WithSessions(store)
	defer runner.Close()

	st, err := runner.ResolveSession(ctx, &opts)
	if err != nil {
		return err
	}
	if err := opts.ValidateForBuild(); err != nil {
		return err
	}
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}
	doc, err := pipeline.LoadDocument(ctx, opts)
	if err != nil {
		return err
	}
	v, err := pipeline.OpenView(doc, opts)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(NewExploreModel(v), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("explore: %w", err)
	}
	if !save {
		return nil
	}

	if st == nil {
		st = session.New(v.VizType, session.DefaultTTL)
	}
	captureState(st, final.(ExploreModel).Controller, opts.Path)
	if err := store.Set(ctx, st); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	printSuccess("Saved view state")
	printKeyValue("Session", st.ID)
	printNextStep("Render it", appName+" render "+opts.Path+" --session "+st.ID)
	return nil
}

// captureState copies the view state of v into st.
func captureState(st *session.ViewState, v *pipeline.View, source string) {
	l := v.Layout()
	st.VizType = v.VizType
	st.RootID = l.RootID
	st.Isolated = v.Isolated()
	st.Expanded = v.Expanded()
	st.Focus = ""
	if f := v.Focus(); f != nil {
		st.Focus = f.ID
	}
	st.Source = source
	st.Touch(session.DefaultTTL)
}
