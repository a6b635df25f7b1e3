// Package pkg provides the core libraries for vischart chart compilation.
//
// # Overview
//
// vischart turns a declarative chart spec (data, a mark type and encoding
// channels) into a scene graph: a tree of groups and marks with absolute
// geometry and resolved styles. Renderers only ever see the scene graph.
//
// # Architecture
//
// The typical data flow through vischart:
//
//	JSON / YAML / TOML chart spec
//	         ↓
//	    [spec] package (parse, defaults, validation)
//	         ↓
//	    [data/source] package (resolve named datasets)
//	         ↓
//	    [pipeline] package (aggregation, caching, orchestration)
//	         ↓
//	    [compile] package (scales, stacking, marks, axes)
//	         ↓
//	    [scene] package (the scene graph)
//	         ↓
//	    [render/sink] package (SVG, PNG, PDF, JSON)
//
// # Quick Start
//
// Compile and render a bar chart:
//
//	import (
//	    "github.com/matzehuels/vischart/pkg/compile"
//	    "github.com/matzehuels/vischart/pkg/render/sink"
//	    "github.com/matzehuels/vischart/pkg/spec"
//	)
//
//	chart, _ := spec.ParseFile("sales.yaml")
//	sc, _ := compile.Compile(chart)
//	svg := sink.RenderSVG(sc)
//
// # Main Packages
//
// ## Chart Model
//
// [spec] - The chart spec: data, mark, encoding, stack and layout options.
//
// [data] - Rows, field types, value normalization and aggregation.
//
// [scale] - Band and linear scales with nice domains and tick generation.
//
// [stack] - Per-category stacking of quantitative values.
//
// [compile] - The compiler from spec to scene for bar and line charts.
//
// [scene] - The scene graph types, traversal and JSON codec.
//
// ## Output
//
// [render] - rsvg-convert based PDF and PNG conversion.
//
// [render/sink] - Scene renderers for each output format.
//
// [render/scenetree] - Graphviz diagrams of a scene's structure.
//
// ## Infrastructure
//
// [cache] - File, Redis and null caches with key builders and retry helpers.
//
// [data/source] - Named data from files, HTTP and MongoDB.
//
// [pipeline] - End-to-end orchestration with caching and observability.
//
// [observability] - Hooks for metrics and tracing.
//
// [errors] - Coded errors and input validation.
//
// [buildinfo] - Version information set at build time.
package pkg
