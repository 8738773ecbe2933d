package cli

import (
	"github.com/spf13/pflag"

	"github.com/matzehuels/hierview/pkg/pipeline"
)

// viewFlags binds the document and layout flags shared by the commands that
// build a view.
type viewFlags struct {
	opts pipeline.Options

	hidden   string
	expanded string
	isolated string
}

// register adds the flags to fs.
func (f *viewFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.opts.VizType, "type", "t", "", "visualization type: sunburst (default), treemap")
	fs.Float64Var(&f.opts.Width, "width", pipeline.DefaultWidth, "frame width")
	fs.Float64Var(&f.opts.Height, "height", pipeline.DefaultHeight, "frame height")
	fs.StringVar(&f.opts.Strategy, "strategy", "", "treemap strategy: squarify (default), slice-and-dice")
	fs.StringVar(&f.opts.Gap, "gap", "", "treemap gaps: all (default), outer, none")
	fs.Float64Var(&f.opts.GapSize, "gap-size", 0, "treemap gap size in pixels")
	fs.BoolVar(&f.opts.Sort, "sort", false, "order siblings by size, largest first")
	fs.BoolVar(&f.opts.Mirror, "mirror", false, "lay out siblings in reverse order")
	fs.IntVar(&f.opts.MaxDepth, "depth", 0, "maximum tree depth (0: document setting)")
	fs.StringVar(&f.hidden, "hide", "", "categories to hide (comma-separated)")
	f.registerState(fs, "")
	fs.BoolVar(&f.opts.Refresh, "refresh", false, "recompute even when cached")
}

// registerState adds the view state flags. diff binds a second set with the
// "to-" prefix for the target state.
func (f *viewFlags) registerState(fs *pflag.FlagSet, prefix string) {
	fs.StringVar(&f.expanded, prefix+"expanded", "", "disclosed node ids (comma-separated; default: all)")
	fs.StringVar(&f.opts.RootID, prefix+"root", "", "drill into this node id")
	fs.StringVar(&f.isolated, prefix+"isolate", "", "treemap isolate stack, outermost first (comma-separated)")
	fs.StringVar(&f.opts.Session, prefix+"session", "", "session id to restore the view state from")
}

// options returns the pipeline options for the document at path.
func (f *viewFlags) options(path string) pipeline.Options {
	opts := f.opts
	opts.Path = path
	opts.Hidden = parseList(f.hidden)
	if f.expanded != "" {
		opts.Expanded = parseList(f.expanded)
	}
	if f.isolated != "" {
		opts.Isolated = parseList(f.isolated)
	}
	return opts
}

// renderFlags binds the artifact flags.
type renderFlags struct {
	formats  string
	output   string
	noCache  bool
	opts     pipeline.Options
	allowAll bool
}

func (f *renderFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	if f.allowAll {
		fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot, outline (comma-separated)")
	} else {
		fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	}
	fs.BoolVar(&f.opts.Labels, "labels", false, "draw node labels")
	fs.StringVar(&f.opts.Background, "background", "", "background colour (default: transparent)")
	fs.Float64Var(&f.opts.PNGScale, "png-scale", pipeline.DefaultPNGScale, "PNG scale factor")
	if f.allowAll {
		fs.BoolVar(&f.opts.Detailed, "detailed", false, "show size and depth in dot and outline output")
	}
}

// apply copies the render flags onto opts.
func (f *renderFlags) apply(opts *pipeline.Options) {
	opts.Formats = parseFormats(f.formats)
	opts.Labels = f.opts.Labels
	opts.Background = f.opts.Background
	opts.PNGScale = f.opts.PNGScale
	opts.Detailed = f.opts.Detailed
}
