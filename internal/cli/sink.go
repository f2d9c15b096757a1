package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/nguyentantai21042004/docsquad/internal/pipeline"
)

// Theme holds the colors of the status display.
type Theme struct {
	Start   lipgloss.Color
	Ingest  lipgloss.Color
	Analyze lipgloss.Color
	Write   lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
}

var defaultTheme = Theme{
	Start:   lipgloss.Color("#5FAFD7"), // light blue
	Ingest:  lipgloss.Color("#AF87FF"), // purple
	Analyze: lipgloss.Color("#FFAF00"), // amber
	Write:   lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
}

var stageIcons = map[pipeline.Stage]string{
	pipeline.StageStart:   "🚀",
	pipeline.StageIngest:  "📥",
	pipeline.StageAnalyze: "🧠",
	pipeline.StageWrite:   "✍️",
}

func (t Theme) stageStyle(stage pipeline.Stage) lipgloss.Style {
	c := t.Hint
	switch stage {
	case pipeline.StageStart:
		c = t.Start
	case pipeline.StageIngest:
		c = t.Ingest
	case pipeline.StageAnalyze:
		c = t.Analyze
	case pipeline.StageWrite:
		c = t.Write
	}
	return lipgloss.NewStyle().Foreground(c).Bold(stage == pipeline.StageWrite)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// terminalSink prints pipeline events as styled lines.
type terminalSink struct {
	out   io.Writer
	theme Theme
}

func newTerminalSink(out io.Writer) *terminalSink {
	return &terminalSink{out: out, theme: defaultTheme}
}

func (s *terminalSink) Report(_ context.Context, ev pipeline.Event) {
	icon, ok := stageIcons[ev.Stage]
	if !ok {
		icon = "•"
	}
	fmt.Fprintf(s.out, "%s %s\n", icon, s.theme.stageStyle(ev.Stage).Render(ev.Message))
}

func (s *terminalSink) failed(err error) {
	fmt.Fprintf(s.out, "❌ %s\n", s.theme.errorStyle().Render(err.Error()))
}

func (s *terminalSink) hint(format string, args ...any) {
	fmt.Fprintln(s.out, s.theme.hintStyle().Render(fmt.Sprintf(format, args...)))
}
