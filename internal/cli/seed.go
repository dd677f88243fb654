package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lineage/pkg/family"
	"github.com/matzehuels/lineage/pkg/graph"
	"github.com/matzehuels/lineage/pkg/source"
)

// seedCommand creates the seed command, which writes the seed family to a
// roster file or to the configured MongoDB collection.
func (c *CLI) seedCommand() *cobra.Command {
	var (
		singleRoot bool
		mongo      bool
	)

	cmd := &cobra.Command{
		Use:   "seed [file]",
		Short: "Write the seed family to a roster file or MongoDB",
		Long: `Write the seed family to a roster file or MongoDB.

The seed family has two members without a parent, so it does not form a
single tree; 'validate' explains why. Use --single-root for a roster that
lays out.

The file format follows the extension: .toml writes TOML, anything else JSON.
With --mongo the members replace the contents of the collection configured
in lineage.toml.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			members := family.Seed()
			if singleRoot {
				members = family.SeedSingleRoot()
			}
			if mongo {
				return c.seedMongo(cmd.Context(), members)
			}
			path := "seed.json"
			if len(args) > 0 {
				path = args[0]
			}
			return seedFile(members, path)
		},
	}

	cmd.Flags().BoolVar(&singleRoot, "single-root", false, "leave out the second root so the roster forms a tree")
	cmd.Flags().BoolVar(&mongo, "mongo", false, "write to the configured MongoDB collection instead of a file")
	return cmd
}

func seedFile(members []family.Member, path string) error {
	write := graph.WriteRosterFile
	if source.IsTOML(path) {
		write = source.WriteTOML
	}
	if err := write(members, path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printSuccess("Wrote %s", plural(len(members), "member", "members"))
	printFile(path)
	printNewline()
	printNextStep("Check", appName+" validate "+path)
	return nil
}

func (c *CLI) seedMongo(ctx context.Context, members []family.Member) error {
	cfg := c.cfg.Source
	store, err := source.NewMongo(ctx, cfg.MongoURI, cfg.Database, cfg.Collection)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ReplaceAll(ctx, members); err != nil {
		return fmt.Errorf("seed %s: %w", store.Location(), err)
	}
	printSuccess("Wrote %s", plural(len(members), "member", "members"))
	printFile(store.Location())
	return nil
}
