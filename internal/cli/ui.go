package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/hierview/pkg/pipeline"
)

// Terminal palette. Values are ANSI 256 colour indices.
var (
	colorAccent = lipgloss.Color("73")
	colorOK     = lipgloss.Color("71")
	colorWarn   = lipgloss.Color("179")
	colorFail   = lipgloss.Color("167")
	colorLink   = lipgloss.Color("111")
	colorText   = lipgloss.Color("254")
	colorMuted  = lipgloss.Color("244")
	colorFaint  = lipgloss.Color("239")
)

// Exported styles are shared with the explore and diff views.
var (
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue     = lipgloss.NewStyle().Foreground(colorText)
	StyleNumber    = lipgloss.NewStyle().Foreground(colorAccent)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)
)

var (
	styleOK          = lipgloss.NewStyle().Foreground(colorOK)
	styleFail        = lipgloss.NewStyle().Foreground(colorFail)
	styleMuted       = lipgloss.NewStyle().Foreground(colorMuted)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleCommand     = lipgloss.NewStyle().Foreground(colorLink)
	styleLabel       = lipgloss.NewStyle().Foreground(colorMuted).Width(10)
)

const statSep = " · "

func printSuccess(format string, args ...any) {
	fmt.Println(styleOK.Render("✓") + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleFail.Render("✗") + " " + fmt.Sprintf(format, args...))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleMuted.Render("›") + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a written artifact.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleLabel.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep suggests the command to run after this one.
func printNextStep(description, cmd string) {
	fmt.Println()
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// stageHit records whether one pipeline stage was served from the cache.
type stageHit struct {
	stage string
	hit   bool
}

// layoutHits lists the cache outcome of the stages a run went through.
func layoutHits(info pipeline.CacheInfo, rendered bool) []stageHit {
	hits := []stageHit{{"layout", info.LayoutHit}}
	if rendered {
		hits = append(hits, stageHit{"render", info.RenderHit})
	}
	return hits
}

// printStats prints the run summary line: tree size, cache outcome per stage
// and the time spent in the stages that actually ran.
func printStats(stats pipeline.Stats, hits ...stageHit) {
	fmt.Println("  " + statsLine(stats, hits...))
}

func statsLine(stats pipeline.Stats, hits ...stageHit) string {
	var parts []string
	if stats.NodeCount > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d nodes", stats.NodeCount)))
	}
	if stats.PlacedCount > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d placed", stats.PlacedCount)))
	}
	for _, h := range hits {
		if h.hit {
			parts = append(parts, styleOK.Render(h.stage+" cached"))
		} else {
			parts = append(parts, styleMuted.Render(h.stage+" fresh"))
		}
	}
	if d := stats.BuildTime + stats.LayoutTime + stats.RenderTime; d > 0 {
		parts = append(parts, StyleDim.Render(d.Round(time.Millisecond).String()))
	}
	return strings.Join(parts, StyleDim.Render(statSep))
}
