// Package compile turns a chart specification into a scene graph.
//
// [Compile] is a pure, synchronous function: it reads a [spec.ChartSpec] and
// its inline rows and returns a [scene.Scene], or fails with one of the four
// compile error codes from pkg/errors. It never returns a partial scene.
//
// # Pipeline
//
// Compilation proceeds in fixed steps:
//
//  1. Create a scene of the requested size, with the background colour if it
//     parses.
//  2. Derive the [PlotArea] by insetting the chart by its padding.
//  3. Resolve the mark. A spec with a mark needs an encoding and inline data;
//     a spec with only layers is rejected because layer composition is not
//     compiled; a spec with neither is incomplete.
//  4. Dispatch on the mark type. Bar and line have compilers; every other
//     recognized mark type fails with UNSUPPORTED_MARK.
//
// The root group of the scene is translated to the plot area origin, so every
// coordinate inside it is plot-local.
//
// # Bars
//
// Bars are horizontal when x is quantitative and y is nominal or ordinal;
// otherwise they are vertical. The non-quantitative channel is laid out on a
// band scale with padding 0.2 and the other on a linear value scale. With a
// color field and stacking enabled (the default), one segment per row is
// stacked within its category. With a color field and stack set to false,
// each category band is split into one sub-band per series. Without a color
// field each row becomes one bar spanning the whole band.
//
// # Lines
//
// The x channel is always a band scale with no padding and points sit at band
// centres. Stacked lines produce one filled area and one stroke per series;
// multi-series lines produce one stroke per series; a single series produces
// one stroke with a vertex for every category that has data.
//
// # Axes
//
// [Axis] builds the marks of one axis from pixel-positioned ticks. Value axes
// take their ticks from the value scale and map them back through the same
// scale before drawing.
//
// # Tolerance
//
// Structural problems fail the compile. Individual rows with missing or
// unusable values are skipped (or, when stacking, counted as 0) so
// heterogeneous data still renders.
package compile
