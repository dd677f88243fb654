package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lineage/pkg/graph"
)

// browseCommand creates the browse command, an interactive terminal view of
// the tree.
func (c *CLI) browseCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "browse [roster]",
		Short: "Walk the generations of a family tree in the terminal",
		Long: `Walk the generations of a family tree in the terminal.

The roster is laid out as a tree and shown one generation at a time, with the
details of the selected member. Use the arrow keys (or h/j/k/l) to move
between siblings, up to a parent and down to the first child.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), args, noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, args []string, noCache bool) error {
	members, _, err := c.loadMembers(ctx, args)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.cfg.PipelineOptions()
	opts.VizType = graph.VizTypeTree
	opts.Logger = c.Logger
	layout, err := runner.GenerateLayout(ctx, members, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	p := tea.NewProgram(NewTreeBrowserModel(layout, members), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	return nil
}
