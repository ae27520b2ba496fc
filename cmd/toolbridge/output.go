package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"toolbridge/internal/tools"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	nameStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printDescriptors(w io.Writer, descs []tools.Descriptor) {
	width := 0
	for _, d := range descs {
		if len(d.Name) > width {
			width = len(d.Name)
		}
	}
	for _, d := range descs {
		fmt.Fprintf(w, "  %s  %s\n", nameStyle.Width(width).Render(d.Name), d.Description)
	}
}

// printSummary writes a one-line status for a result.
func printSummary(w io.Writer, res tools.ToolResult) {
	label := fmt.Sprintf("[%s] %s", res.Call.ID, res.Call.Name)
	if res.IsSuccess() {
		fmt.Fprintf(w, "%s %s %s %s\n", successStyle.Render("ok  "), label, res.Result, mutedStyle.Render(fmt.Sprintf("(%dms)", res.DurationMs)))
		return
	}
	fmt.Fprintf(w, "%s %s %s\n", errorStyle.Render("fail"), label, res.Error)
}
