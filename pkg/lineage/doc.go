// Package lineage turns a flat family roster into a positioned family tree.
//
// The package has two stages, both pure functions over their input:
//
//  1. [Build] validates the roster and links it into a single-rooted
//     hierarchy of [TreeNode] values.
//  2. [Layout] assigns every node and every parent-child connector a
//     coordinate inside a bounded drawing area described by a [Frame].
//
// [Compute] runs both stages. The result is a plain [Result] value that any
// renderer can draw; nothing in this package knows about SVG, Graphviz or
// terminals.
//
// # Invariants
//
// A roster is accepted only if it has exactly one member without a parent,
// every parent reference resolves, identifiers are unique and non-empty, and
// following parent links from any member reaches the root. Violations are
// reported in a fixed order so that the same invalid roster always fails the
// same way:
//
//	Empty -> InvalidID / DuplicateID -> NoRoot -> MultipleRoots -> DanglingParent -> Cycle
//
// Every failure is a *[HierarchyError] or *[LayoutError]. Each kind also has a
// sentinel (for example [ErrNoRoot]) for use with errors.Is, and [Describe]
// produces a message suitable for showing in place of the drawing.
//
// # Layout
//
// Depth maps linearly onto the vertical axis: the root sits on the top
// margin and the deepest tier on the bottom one. Leaves are spread evenly
// across the available width in left-to-right order and every parent is
// centred over the mean of its children. A separation pass then keeps nodes
// of the same tier at least [DefaultMinSeparation] apart (configurable with
// [WithMinSeparation]) without leaving the drawing area. It runs after the
// centring and does not redo it, so a parent it moves, or whose children it
// moves, is no longer exactly over their mean.
//
// # Concurrency
//
// No state is shared between calls. All functions are safe for concurrent
// use, and a [TreeNode] returned by [Build] may be laid out any number of
// times, including concurrently.
package lineage
