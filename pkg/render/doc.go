// Package render provides the reference renderers for laid-out hierarchies.
//
// # Overview
//
// Layout packages only compute geometry. This package turns that geometry
// into files:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Sunburst and treemap drawings (in [sink] subpackage)
//   - Tree outlines as node-link diagrams (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(layout)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
package render
