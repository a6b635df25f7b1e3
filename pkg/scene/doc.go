// Package scene defines the renderer-agnostic scene graph that charts compile to.
//
// A [Scene] has a size, an optional background colour and a root [Group].
// Groups nest: each carries a [Transform], an optional clip rectangle and an
// ordered list of children, where every child is either another *Group or a
// *[Mark]. Children are drawn in order, so later children paint over earlier
// ones.
//
// A Mark is a batch of primitives of one [MarkType]. Each [Item] of a mark has
// a [Geometry] in the coordinate space of its enclosing group, plus optional
// fill, stroke, opacity and the data row it was produced from.
//
// # Geometry
//
// Geometry is a closed set of value types:
//
//   - [Rect]: axis-aligned rectangle with optional corner radius
//   - [Circle]: centre and radius
//   - [Line]: polyline through points
//   - [Area]: filled region between a top polyline and a baseline polyline
//   - [Rule]: single segment
//   - [Text]: positioned label with font, anchor, baseline and rotation
//   - [Arc]: annular sector
//   - [Path]: raw SVG path data
//   - [Symbol]: point glyph of a [SymbolShape], sized by area
//
// # Serialization
//
// Scenes encode to JSON and decode back without loss. Geometry objects carry a
// "type" discriminator and group children are wrapped as {"group": ...} or
// {"mark": ...}. The encoding is what the pipeline caches and what the HTTP API
// returns from /v1/compile.
//
// # Traversal
//
// [Walk] visits a group tree depth-first. [Summarize] counts groups, marks and
// items and is what the CLI prints after a compile.
package scene
