// Package render turns compiled scenes into files.
//
// # Overview
//
// The compiler produces a [scene.Scene]: groups of marks with absolute
// geometry and resolved style. Everything that knows about output formats
// lives below this package:
//
//   - [sink]: scene to SVG, JSON, PDF and PNG
//   - [scenetree]: the scene's node tree as a Graphviz diagram, for debugging
//
// # Format Conversion
//
// SVG is the only format drawn directly. [ToPDF] and [ToPNG] convert SVG
// with the external rsvg-convert tool from librsvg:
//
//	svg := sink.RenderSVG(sc)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [Available] reports whether the tool is installed.
//
// [scene.Scene]: github.com/matzehuels/vischart/pkg/scene.Scene
// [sink]: github.com/matzehuels/vischart/pkg/render/sink
// [scenetree]: github.com/matzehuels/vischart/pkg/render/scenetree
package render
