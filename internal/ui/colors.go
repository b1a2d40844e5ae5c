package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Base styles - will be initialized based on terminal support
	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	warningStyle lipgloss.Style
	infoStyle    lipgloss.Style
	dimStyle     lipgloss.Style
	labelStyle   lipgloss.Style
	titleStyle   lipgloss.Style
	numberStyle  lipgloss.Style
	tagStyle     lipgloss.Style
	boxStyle     lipgloss.Style
)

func init() {
	initStyles()
}

func initStyles() {
	if !IsTerminal() {
		// Plain styles for non-terminal
		successStyle = lipgloss.NewStyle()
		errorStyle = lipgloss.NewStyle()
		warningStyle = lipgloss.NewStyle()
		infoStyle = lipgloss.NewStyle()
		dimStyle = lipgloss.NewStyle()
		labelStyle = lipgloss.NewStyle()
		titleStyle = lipgloss.NewStyle()
		numberStyle = lipgloss.NewStyle()
		tagStyle = lipgloss.NewStyle()
		boxStyle = lipgloss.NewStyle()
		return
	}

	// Colored styles for terminal
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	numberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	tagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	boxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
}

// Success prints success text
func Success(text string) string {
	return successStyle.Render(text)
}

// Error prints error text
func Error(text string) string {
	return errorStyle.Render(text)
}

// Warning prints warning text
func Warning(text string) string {
	return warningStyle.Render(text)
}

// Info prints info text
func Info(text string) string {
	return infoStyle.Render(text)
}

// Dim prints dim text
func Dim(text string) string {
	return dimStyle.Render(text)
}

// SuccessMsg writes a line prefixed with a check mark.
func SuccessMsg(w io.Writer, format string, args ...any) {
	writeMsg(w, Success("✓"), format, args...)
}

// ErrorMsg writes a line prefixed with a cross.
func ErrorMsg(w io.Writer, format string, args ...any) {
	writeMsg(w, Error("✗"), format, args...)
}

// WarningMsg writes a line prefixed with a warning sign.
func WarningMsg(w io.Writer, format string, args ...any) {
	writeMsg(w, Warning("⚠"), format, args...)
}

// InfoMsg writes a line prefixed with an info sign.
func InfoMsg(w io.Writer, format string, args ...any) {
	writeMsg(w, Info("ℹ"), format, args...)
}

func writeMsg(w io.Writer, icon, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", icon, fmt.Sprintf(format, args...))
}
