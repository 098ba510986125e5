// Package cliui renders faberc's build output.
package cliui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary   = lipgloss.Color("#7D56F4")
	colorSecondary = lipgloss.Color("#04B575")
	colorSuccess   = lipgloss.Color("#04B575")
	colorWarning   = lipgloss.Color("#F4BF75")
	colorError     = lipgloss.Color("#F25D94")
	colorMuted     = lipgloss.Color("#626262")
	colorText      = lipgloss.Color("#FAFAFA")
	colorSubtle    = lipgloss.Color("#858585")
	colorBorder    = lipgloss.Color("#383838")
	colorHighlight = lipgloss.Color("#00D9FF")
)

var (
	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	styleTarget = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorHighlight)

	styleFile = lipgloss.NewStyle().
			Foreground(colorText)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorSubtle).
			Italic(true)

	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
)

// StepStatus is the outcome of one build step (read, compile, write).
type StepStatus int

const (
	StepSuccess StepStatus = iota
	StepSkipped
	StepWarning
	StepError
)

// Step is one reported stage of a faberc build.
type Step struct {
	Name     string
	Status   StepStatus
	Duration time.Duration
	Message  string
}

// BuildOutput accumulates and prints the progress of a faberc invocation.
type BuildOutput struct {
	startTime time.Time
	unit      string
	target    string
}

// NewBuildOutput starts timing a build of unit for the given target.
func NewBuildOutput(unit, target string) *BuildOutput {
	return &BuildOutput{startTime: time.Now(), unit: unit, target: target}
}

// PrintHeader prints the faberc banner line.
func (b *BuildOutput) PrintHeader(version string) {
	fmt.Println(styleHeader.Render(fmt.Sprintf("faberc %s", version)))
}

// PrintBuildStart announces which unit is being compiled to which target.
func (b *BuildOutput) PrintBuildStart() {
	fmt.Printf("%s %s %s %s\n",
		styleMuted.Render("compiling"),
		styleFile.Render(b.unit),
		styleMuted.Render("->"),
		styleTarget.Render(b.target))
}

func stepGlyph(status StepStatus) string {
	switch status {
	case StepSuccess:
		return styleSuccess.Render("✓")
	case StepSkipped:
		return styleMuted.Render("-")
	case StepWarning:
		return styleWarning.Render("!")
	case StepError:
		return styleError.Render("✗")
	default:
		return " "
	}
}

// PrintStep reports one pipeline stage (read, compile, write).
func (b *BuildOutput) PrintStep(step Step) {
	line := fmt.Sprintf("  %s %-12s", stepGlyph(step.Status), step.Name)
	if step.Duration > 0 {
		line += styleMuted.Render(fmt.Sprintf(" (%s)", formatDuration(step.Duration)))
	}
	if step.Message != "" {
		line += "  " + styleSubtle.Render(step.Message)
	}
	fmt.Println(line)
}

// PrintSummary prints the final pass/fail line with total elapsed time.
func (b *BuildOutput) PrintSummary(success bool, errorMsg string) {
	elapsed := time.Since(b.startTime)
	if success {
		fmt.Println(styleSuccess.Render(fmt.Sprintf("done in %s", formatDuration(elapsed))))
		return
	}
	fmt.Println(styleError.Render("build failed"))
	if errorMsg != "" {
		fmt.Println(styleBox.Render(errorMsg))
	}
}

// PrintError prints a standalone error line, outside of a step.
func PrintError(msg string) {
	fmt.Println(styleError.Render("error: ") + msg)
}

// PrintWarning prints a standalone warning line, outside of a step.
func PrintWarning(msg string) {
	fmt.Println(styleWarning.Render("warning: ") + msg)
}

// PrintInfo prints a muted informational line.
func PrintInfo(msg string) {
	fmt.Println(styleMuted.Render(msg))
}

// Table renders rows as a simple aligned, bordered table.
func Table(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	var b strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			fmt.Fprintf(&b, "%-*s  ", widths[i], cell)
		}
		b.WriteString("\n")
	}
	return styleBox.Render(strings.TrimRight(b.String(), "\n"))
}

// Divider renders a horizontal rule sized for an 80-column terminal.
func Divider() string {
	return styleMuted.Render(strings.Repeat("─", 80))
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
