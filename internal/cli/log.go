package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hierview/pkg/pipeline"
)

// newLogger returns the CLI logger. Timestamps only appear at debug level,
// where stage timings matter.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		TimeFormat: "15:04:05.000",
		Level:      level,
	})
	setVerbosity(l, level)
	return l
}

func setVerbosity(l *log.Logger, level log.Level) {
	l.SetLevel(level)
	l.SetReportTimestamp(level <= log.DebugLevel)
}

// runLog logs the outcome of a pipeline run with its wall time.
type runLog struct {
	logger *log.Logger
	start  time.Time
}

func startRun(l *log.Logger) runLog {
	return runLog{logger: l, start: time.Now()}
}

// done logs msg with the document, viz type and stage details of res.
func (r runLog) done(msg string, res *pipeline.Result) {
	kv := []any{"elapsed", time.Since(r.start).Round(time.Millisecond)}
	if res != nil {
		kv = append(kv,
			"type", res.Layout.VizType,
			"nodes", res.Stats.NodeCount,
			"layout_cached", res.CacheInfo.LayoutHit,
		)
		if len(res.Artifacts) > 0 {
			kv = append(kv, "render_cached", res.CacheInfo.RenderHit)
		}
		if res.Session != nil {
			kv = append(kv, "session", res.Session.ID)
		}
	}
	r.logger.Info(msg, kv...)
}
