package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

var (
	colorHeading = color.New(color.FgBlue, color.Bold).SprintFunc()
	colorWarn    = color.New(color.FgYellow, color.Bold).SprintFunc()
	colorError   = color.New(color.FgHiRed, color.Bold).SprintFunc()
	colorGood    = color.New(color.FgGreen).SprintFunc()
	colorFrame   = color.New(color.FgHiBlack).SprintFunc()
)

// Printer writes operator-facing text, colored only when w is a terminal.
type Printer struct {
	w        io.Writer
	useColor bool
}

func New(w io.Writer) *Printer {
	return &Printer{w: w, useColor: IsTerminal(w)}
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// Heading prints a section title preceded by a blank line.
func (p *Printer) Heading(title string) {
	text := fmt.Sprintf("=== %s ===", title)
	if p.useColor {
		text = colorHeading(text)
	}
	fmt.Fprintf(p.w, "\n%s\n", text)
}

func (p *Printer) Warn(format string, a ...any) {
	p.styled(colorWarn, format, a...)
}

func (p *Printer) Success(format string, a ...any) {
	p.styled(colorGood, format, a...)
}

func (p *Printer) Error(format string, a ...any) {
	p.styled(colorError, format, a...)
}

func (p *Printer) styled(style func(...any) string, format string, a ...any) {
	text := fmt.Sprintf(format, a...)
	if p.useColor {
		text = style(text)
	}
	fmt.Fprintln(p.w, text)
}

// Box frames lines so they stand out from installer and prompt output.
func (p *Printer) Box(lines ...string) {
	width := 0
	for _, line := range lines {
		width = max(width, runewidth.StringWidth(line))
	}
	rule := strings.Repeat("─", width+2)
	frame := func(s string) string {
		if p.useColor {
			return colorFrame(s)
		}
		return s
	}
	fmt.Fprintln(p.w, frame("┌"+rule+"┐"))
	for _, line := range lines {
		fmt.Fprintf(p.w, "%s %s %s\n", frame("│"), runewidth.FillRight(line, width), frame("│"))
	}
	fmt.Fprintln(p.w, frame("└"+rule+"┘"))
}
