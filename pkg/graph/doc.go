// Package graph provides serialization types for member rosters and layouts.
//
// This package defines the canonical wire format for lineage data, used for
// JSON files, API responses, caching, and cross-tool interoperability.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Roster], [Layout]: Serialization types (this package)
//   - pkg/family.Member: directory record
//   - pkg/lineage.Result: computed layout (positions, connectors)
//
// Use [FromResult]/[ToResult] to convert between layouts.
//
// # Constants
//
// This package is the single source of truth for visualization constants:
//
//	graph.VizTypeTree       // "tree"
//	graph.VizTypeNodelink   // "nodelink"
//	graph.StyleSimple       // "simple"
//	graph.StyleWarm         // "warm"
//
// # Roster Serialization
//
// Rosters are a list of directory records; the object form is written, and
// a bare array is accepted on read:
//
//	{
//	  "members": [
//	    {"id": "1", "name": "Arthur", "relation": "Patriarch"},
//	    {"id": "3", "name": "John", "relation": "Son", "parent_id": "1"}
//	  ]
//	}
//
// Common operations:
//
//	members, _ := graph.ReadRosterFile("family.json")   // File → members
//	graph.WriteRosterFile(members, "out.json")          // members → File
//	data, _ := graph.MarshalRoster(members)             // members → []byte
//
// # Layout Serialization
//
// Layouts are discriminated by VizType:
//
//	layout, _ := graph.UnmarshalLayout(data)
//	if layout.IsTree() {
//	    // Use layout.Nodes and layout.Edges for coordinates
//	} else {
//	    // Use layout.DOT for Graphviz rendering
//	}
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
