package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/lineage/pkg/errors"
	"github.com/matzehuels/lineage/pkg/family"
	"github.com/matzehuels/lineage/pkg/graph"
	"github.com/matzehuels/lineage/pkg/lineage"
	"github.com/matzehuels/lineage/pkg/observability"
	"github.com/matzehuels/lineage/pkg/render/nodelink"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout builds the hierarchy from members and lays it out.
// This is the unified entry point for generating serializable layout data.
//
// Both tree and nodelink layouts include the positioned nodes, the
// connectors and the tiers; nodelink layouts add the DOT source.
//
// Failures of the lineage engine are returned as *errors.Error with code
// INVALID_HIERARCHY or DEGENERATE_AREA and the engine error as cause.
func GenerateLayout(ctx context.Context, members []family.Member, opts Options) (graph.Layout, error) {
	root, err := BuildHierarchy(ctx, members)
	if err != nil {
		return graph.Layout{}, err
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnLayoutStart(ctx, opts.VizType, root.Count())
	res, err := lineage.Layout(root, opts.Frame(), lineage.WithMinSeparation(opts.separation()))
	hooks.OnLayoutComplete(ctx, opts.VizType, time.Since(start), err)
	if err != nil {
		return graph.Layout{}, WrapEngineError(err)
	}

	if opts.IsNodelink() {
		dotOpts := nodelink.Options{Detailed: opts.Detailed, Style: opts.Style}
		return nodelink.Export(nodelink.ToDOT(res, dotOpts), res, dotOpts), nil
	}
	return graph.FromResult(res, opts.Style), nil
}

// BuildHierarchy turns a roster into a hierarchy, reporting the build to
// the pipeline hooks.
func BuildHierarchy(ctx context.Context, members []family.Member) (*lineage.TreeNode, error) {
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnBuildStart(ctx, len(members))
	root, err := lineage.Build(family.ToLineage(members))
	hooks.OnBuildComplete(ctx, len(members), time.Since(start), err)
	if err != nil {
		return nil, WrapEngineError(err)
	}
	return root, nil
}

// Validate checks every record and then the hierarchy they form.
func Validate(ctx context.Context, members []family.Member) error {
	if err := family.ValidateAll(members); err != nil {
		return err
	}
	_, err := BuildHierarchy(ctx, members)
	return err
}

// WrapEngineError attaches the pipeline error code for a lineage engine
// failure. The message is the user-facing description of the failure.
func WrapEngineError(err error) error {
	if err == nil {
		return nil
	}
	code := errors.ErrCodeInvalidHierarchy
	if lineage.KindOf(err) == lineage.KindDegenerateArea {
		code = errors.ErrCodeDegenerateArea
	}
	return errors.Wrap(code, err, "%s", lineage.Describe(err))
}
