// Package sink writes compiled scenes in output formats.
//
// # SVG
//
// [RenderSVG] walks the scene tree and emits one SVG element per item.
// Groups with a transform become <g transform="...">, every mark becomes a
// <g class="mark-rect"> (or line, text, ...) wrapper, and coordinates are
// printed with two decimals. Lines are drawn as paths without fill; areas
// are closed paths running along the top edge and back along the baseline.
//
//	svg := sink.RenderSVG(sc, sink.WithTitle("Weekly sales"))
//
// # JSON
//
// [RenderJSON] is the scene graph itself, indented. It decodes back into an
// identical scene with [scene.Decode].
//
// # PDF and PNG
//
// [RenderPDF] and [RenderPNG] render SVG first and convert it with
// rsvg-convert (see [render.ToPDF]).
//
// [scene.Decode]: github.com/matzehuels/vischart/pkg/scene.Decode
// [render.ToPDF]: github.com/matzehuels/vischart/pkg/render.ToPDF
package sink
