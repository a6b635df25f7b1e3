// Package spec defines the declarative chart specification and its decoding.
//
// A chart is described by a [ChartSpec]: a size, padding, a data source, a
// mark type and an [Encoding] that maps data fields to visual channels. The
// shape is JSON-first:
//
//	{
//	  "data": {"values": [{"day": "Mon", "sales": 28}, {"day": "Tue", "sales": 55}]},
//	  "mark": "bar",
//	  "encoding": {
//	    "x": {"field": "day", "type": "nominal"},
//	    "y": {"field": "sales", "type": "quantitative", "axis": {"title": "Sales"}}
//	  }
//	}
//
// Several fields accept more than one form:
//
//   - data: {"values": [...]} for inline rows or {"name": "..."} for a named
//     dataset resolved by the pipeline
//   - mark: a bare type name ("bar") or an object with "type" and style
//     defaults
//   - channel: a bare field name ("sales") or a full definition object
//   - stack: true, false, or one of "zero", "normalize", "center"
//
// # Formats
//
// [Parse] reads JSON, YAML and TOML. YAML and TOML documents are first turned
// into the equivalent JSON document, so every format accepts exactly the same
// shapes and applies the same defaults.
//
// # Defaults
//
// Missing values default to a 600x400 chart with padding 20 (top), 20
// (right), 40 (bottom) and 50 (left). A padding object that names only some
// sides keeps the defaults for the rest.
package spec
