package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hierview/pkg/graph"
	"github.com/matzehuels/hierview/pkg/pipeline"
	"github.com/matzehuels/hierview/pkg/session"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		debug   bool
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, false, true},
		{"debug at info level", log.InfoLevel, true, false},
		{"debug at debug level", log.DebugLevel, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := newLogger(&buf, tt.level)
			if tt.debug {
				l.Debug("probe")
			} else {
				l.Info("probe")
			}
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("logged = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestSetLogLevelTimestamps(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Info("quiet")
	quiet := buf.String()
	buf.Reset()

	c.SetLogLevel(LogDebug)
	c.Logger.Info("loud")
	loud := buf.String()

	if len(loud)-len("loud") <= len(quiet)-len("quiet") {
		t.Errorf("debug output %q should carry a timestamp that info output %q lacks", loud, quiet)
	}
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}

func TestRunLogDone(t *testing.T) {
	var buf bytes.Buffer
	run := startRun(newLogger(&buf, log.InfoLevel))

	run.done("Rendered tree.json", &pipeline.Result{
		Layout:    graph.Layout{VizType: graph.VizTypeTreemap},
		Artifacts: map[string][]byte{pipeline.FormatSVG: nil},
		Session:   &session.ViewState{ID: "s-1"},
		Stats:     pipeline.Stats{NodeCount: 4},
		CacheInfo: pipeline.CacheInfo{LayoutHit: true},
	})

	out := buf.String()
	for _, want := range []string{"Rendered tree.json", "elapsed=", "type=treemap", "nodes=4", "layout_cached=true", "render_cached=false", "session=s-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("done() output %q missing %q", out, want)
		}
	}
}

func TestRunLogDoneWithoutResult(t *testing.T) {
	var buf bytes.Buffer
	startRun(newLogger(&buf, log.InfoLevel)).done("Cancelled", nil)
	if out := buf.String(); !strings.Contains(out, "Cancelled") || strings.Contains(out, "nodes=") {
		t.Errorf("done(nil) output = %q", out)
	}
}
