package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lineage/pkg/errors"
	"github.com/matzehuels/lineage/pkg/lineage"
	"github.com/matzehuels/lineage/pkg/pipeline"
)

// validateCommand creates the validate command, which checks that a roster
// forms a single tree without laying it out.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [roster]",
		Short: "Check that a roster forms a single family tree",
		Long: `Check that a roster forms a single family tree.

Every record is checked (identifiers, birth dates, e-mail addresses and photo
URLs), then the parent links: exactly one root, no duplicate identifiers, no
unknown parents and no loops. On failure the command explains the problem and
names the members involved.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args)
		},
	}
}

func (c *CLI) runValidate(ctx context.Context, args []string) error {
	members, _, err := c.loadMembers(ctx, args)
	if err != nil {
		return err
	}

	if err := pipeline.Validate(ctx, members); err != nil {
		if kind := lineage.KindOf(err); kind != "" {
			printError("%s", lineage.Describe(err))
			printDetail("kind: %s", kind)
			if ids := lineage.IDsOf(err); len(ids) > 0 {
				printDetail("members: %s", strings.Join(ids, ", "))
			}
		} else {
			printError("%s", errors.UserMessage(err))
		}
		return fmt.Errorf("validate: %w", err)
	}

	printSuccess("Roster forms a single tree")
	printDetail("%s", plural(len(members), "member", "members"))
	return nil
}
