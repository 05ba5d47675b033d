// Package report renders the wizard's console output: the banner, task
// progress lines, and the final success or failure summary. Core logic only
// calls into the Sink interface and never consumes a return value.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"sprout/internal/status"
	"sprout/internal/task"
)

// Row is one label/value pair in a summary table.
type Row struct {
	Label string
	Value string
}

// Sink receives presentation events from the run-loop and setup tasks.
type Sink interface {
	task.Publisher
	Banner(text string)
	Table(rows []Row)
	StatusLine(msg status.Message)
	Failure(msg status.Message)
	SuccessSummary(rows []Row, msgs []status.Message)
}

// NullSink discards everything. Used in tests.
type NullSink struct{}

func (NullSink) TaskState(string, task.State, string)   {}
func (NullSink) Banner(string)                          {}
func (NullSink) Table([]Row)                            {}
func (NullSink) StatusLine(status.Message)              {}
func (NullSink) Failure(status.Message)                 {}
func (NullSink) SuccessSummary([]Row, []status.Message) {}

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("202")).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)
	tableStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Bold(true)
)

// ConsoleSink writes human-readable output to a writer (normally stdout).
type ConsoleSink struct {
	out io.Writer
}

func NewConsoleSink(out io.Writer) *ConsoleSink {
	return &ConsoleSink{out: out}
}

// Banner prints the framed program banner.
func (s *ConsoleSink) Banner(text string) {
	fmt.Fprintln(s.out, bannerStyle.Render(text))
}

// Table prints label/value rows with aligned labels.
func (s *ConsoleSink) Table(rows []Row) {
	width := 0
	for _, r := range rows {
		if len(r.Label) > width {
			width = len(r.Label)
		}
	}
	body := ""
	for i, r := range rows {
		if i > 0 {
			body += "\n"
		}
		body += fmt.Sprintf("%s  %s", labelStyle.Render(fmt.Sprintf("%-*s", width, r.Label)), r.Value)
	}
	fmt.Fprintln(s.out, tableStyle.Render(body))
}

// TaskState renders one pre-flight check's transition. Running prints the
// title with an ellipsis; the terminal states complete the same line's story
// with a colored outcome suffix.
func (s *ConsoleSink) TaskState(title string, state task.State, detail string) {
	switch state {
	case task.Running:
		fmt.Fprintf(s.out, "%s...", title)
	case task.Succeeded:
		fmt.Fprintf(s.out, " %s\n", color.GreenString("Found!"))
	case task.Failed:
		fmt.Fprintf(s.out, " %s\n", color.RedString("Not Found!"))
		if detail != "" {
			fmt.Fprintf(s.out, "  %s\n", color.RedString(detail))
		}
	case task.Skipped:
		fmt.Fprintf(s.out, "%s... %s\n", title, color.YellowString("Skipped"))
	}
}

// StatusLine prints one informational status message.
func (s *ConsoleSink) StatusLine(msg status.Message) {
	fmt.Fprintf(s.out, "%s %s\n", s.tag(msg.Type), msg.Message)
}

// Failure prints the run's single terminal failure message.
func (s *ConsoleSink) Failure(msg status.Message) {
	fmt.Fprintf(s.out, "\n%s %s\n", color.New(color.FgRed, color.Bold).Sprint(msg.Title+":"), msg.Message)
}

// SuccessSummary prints the summary table followed by every accumulated
// message in the order it was added.
func (s *ConsoleSink) SuccessSummary(rows []Row, msgs []status.Message) {
	fmt.Fprintln(s.out)
	s.Table(rows)
	for _, m := range msgs {
		s.StatusLine(m)
	}
}

func (s *ConsoleSink) tag(t status.MessageType) string {
	switch t {
	case status.Success:
		return color.GreenString("✔")
	case status.Warning:
		return color.YellowString("!")
	case status.Error:
		return color.RedString("✘")
	default:
		return "-"
	}
}
