// Package tree renders a computed lineage layout as a standalone SVG.
//
// The drawing follows the family hub's tree view: every member is a circle
// of radius [lineage.DefaultNodeRadius] centred on its layout position, with
// the name 45px and the relation 60px below the centre. Parents and children
// are joined by vertical cubic curves whose control points sit halfway
// between the two tiers. A small "Family Lineage" panel is drawn in the top
// left corner.
//
// Two styles are provided: [Simple] (neutral greys) and [Warm] (the hub's
// brown brand palette).
//
//	svg := tree.RenderSVG(result, tree.WithStyle(tree.Warm{}))
//
// When the layout cannot be computed, [RenderErrorSVG] produces a drawing of
// the same size carrying the diagnostic text instead of the tree.
package tree
