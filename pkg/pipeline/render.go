package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/hierview/pkg/graph"
	"github.com/matzehuels/hierview/pkg/render"
	"github.com/matzehuels/hierview/pkg/render/nodelink"
	"github.com/matzehuels/hierview/pkg/render/sink"
	"github.com/matzehuels/hierview/pkg/tree"
)

// Render generates output artifacts in the requested formats. root is the
// display root used by the dot and outline formats.
func Render(ctx context.Context, l graph.Layout, root *tree.Node, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte)

	var svg []byte
	svgBytes := func() []byte {
		if svg == nil {
			svg = sink.RenderSVG(l, buildSVGOptions(opts)...)
		}
		return svg
	}
	dotOpts := nodelink.Options{Detailed: opts.Detailed}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svgBytes()
		case FormatPNG:
			data, err = render.ToPNG(svgBytes(), opts.PNGScale)
		case FormatPDF:
			data, err = render.ToPDF(svgBytes())
		case FormatJSON:
			data, err = sink.RenderJSON(l)
		case FormatDOT:
			data = []byte(nodelink.ToDOT(root, dotOpts))
		case FormatOutline:
			data, err = nodelink.RenderSVG(ctx, nodelink.ToDOT(root, dotOpts))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Labels {
		svgOpts = append(svgOpts, sink.WithLabels())
	}
	if opts.Background != "" {
		svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
	}
	return svgOpts
}

// RenderFromLayoutData renders output from serialized layout data.
// This is useful when the layout was computed elsewhere (e.g., cached).
// The dot and outline formats need the tree and are rendered empty.
func RenderFromLayoutData(ctx context.Context, layoutData []byte, opts Options) (map[string][]byte, error) {
	parsed, err := graph.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	return Render(ctx, parsed, nil, opts)
}
