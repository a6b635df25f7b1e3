// Package scenetree draws the node tree of a compiled scene.
//
// # Overview
//
// A scene is a tree: groups hold groups and marks, marks hold items. When a
// chart looks wrong it is often quicker to look at that tree than at the
// pixels. This package turns the tree into a Graphviz diagram with one node
// per group and mark:
//
//	dot := scenetree.ToDOT(sc, scenetree.Options{})
//	svg, err := scenetree.RenderSVG(ctx, dot)
//
// Group nodes show their transform. Mark nodes show the mark type and item
// count and take the fill colour of their first item.
//
// # Options
//
//   - Detailed: mark nodes also list the data rows of their first items
//
// # Dependencies
//
// Rendering uses [github.com/goccy/go-graphviz], which runs Graphviz
// in-process through WebAssembly. No dot binary is needed.
package scenetree
