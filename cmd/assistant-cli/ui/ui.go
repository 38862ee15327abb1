// Package ui formats assistant-cli output.
package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

var (
	labelColor     = color.New(color.FgCyan, color.Bold)
	assistantColor = color.New(color.FgGreen)
	warnColor      = color.New(color.FgYellow, color.Bold)
	dimColor       = color.New(color.Faint)
)

// Init applies the color setting.
func Init(noColor bool) {
	if noColor {
		color.NoColor = true
	}
}

// Field prints an aligned "label: value" line.
func Field(w io.Writer, label string, value interface{}) {
	fmt.Fprintf(w, "%s %v\n", labelColor.Sprintf("%-12s", label+":"), value)
}

// Assistant prints an assistant reply.
func Assistant(w io.Writer, text string) {
	fmt.Fprintf(w, "%s %s\n", assistantColor.Sprint("assistant>"), text)
}

// Warn prints a highlighted notice.
func Warn(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, warnColor.Sprintf(format, args...))
}

// Dim prints secondary detail.
func Dim(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, dimColor.Sprintf(format, args...))
}

// Prompt prints the REPL prompt without a newline.
func Prompt(w io.Writer) {
	fmt.Fprint(w, labelColor.Sprint("you> "))
}

// Table displays rows under headers.
func Table(w io.Writer, headers []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	separator := make([]string, len(headers))
	for i := range separator {
		separator[i] = strings.Repeat("-", len(headers[i]))
	}
	fmt.Fprintln(tw, strings.Join(separator, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	_ = tw.Flush()
}
