package terminal

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Colors for terminal output.
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
)

var colorEnabled = term.IsTerminal(int(os.Stdout.Fd())) && os.Getenv("NO_COLOR") == ""

// paint wraps s in the given codes when stdout is a terminal.
func paint(s string, codes ...string) string {
	if !colorEnabled {
		return s
	}
	return strings.Join(codes, "") + s + Reset
}

// Success prints a green success message.
func Success(msg string) {
	fmt.Printf("%s %s\n", paint("✓", Bold, Green), msg)
}

// Error prints a red error message.
func Error(msg string) {
	fmt.Printf("%s %s\n", paint("✗", Bold, Red), msg)
}

// Info prints a blue info message.
func Info(msg string) {
	fmt.Printf("%s %s\n", paint("i", Bold, Blue), msg)
}

// Warning prints a yellow warning message.
func Warning(msg string) {
	fmt.Printf("%s %s\n", paint("!", Bold, Yellow), msg)
}

// Header prints a bold header.
func Header(msg string) {
	fmt.Printf("\n%s\n", paint(msg, Bold))
}

// Detail prints an indented detail line.
func Detail(label, value string) {
	fmt.Printf("  %s %s\n", paint(label+":", Dim), value)
}

// Divider prints a horizontal line.
func Divider() {
	fmt.Println(paint(strings.Repeat("─", 60), Dim))
}

// Diagnostic prints a validation diagnostic line, colored by severity.
func Diagnostic(severity, line string) {
	switch severity {
	case "error":
		fmt.Printf("  %s %s\n", paint("✗", Red), line)
	case "warning":
		fmt.Printf("  %s %s\n", paint("!", Yellow), line)
	default:
		fmt.Printf("    %s\n", line)
	}
}
