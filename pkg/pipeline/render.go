package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/vischart/pkg/observability"
	"github.com/matzehuels/vischart/pkg/render/sink"
	"github.com/matzehuels/vischart/pkg/scene"
)

// Render generates output artifacts in the requested formats. A non-empty
// title is embedded in SVG-based outputs.
func Render(ctx context.Context, sc *scene.Scene, title string, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := render(ctx, sc, title, opts)

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func render(ctx context.Context, sc *scene.Scene, title string, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(title)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(sc, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, sc, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.PNGScale))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, sc, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(sc)
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(title string) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(title))
	}
	return svgOpts
}
