// Package diag implements the single diagnostic emission channel spec.md
// section 7 requires: every lexical, syntactic, and semantic error the core
// raises flows through an Emitter, each call carrying a source.Span (or the
// source.NoLocation sentinel for errors the core cannot attribute to a
// position, such as a bad --target flag).
//
// This is a distinct channel from the developer-facing logrus trace the CLI
// layer uses (pkg/cmd): logrus never emits compiler diagnostics, and the
// Emitter never goes through logrus, mirroring the teacher's separation
// between "log.Debug plumbing" and its own *sexp.SyntaxError-carrying error
// type (pkg/sexp/error.go).
package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ashn-dot-dev/sunder/pkg/source"
)

// Severity classifies a diagnostic message.
type Severity int

const (
	// Info is a purely informational line, used for the chain prints that
	// follow a circular-dependency or template-instantiation error.
	Info Severity = iota
	// Warning is a non-fatal diagnostic.
	Warning
	// Error is a non-fatal diagnostic that still indicates the current
	// compilation cannot be considered successful.
	Error
	// Fatal is unrecoverable: the emitter prints the message and
	// terminates the process (spec.md section 7: "the core does not
	// attempt partial recovery for parse/lex errors; each is fatal").
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Link is one entry in a template-instantiation chain: spec.md section 6
// requires that, when a template-instantiation chain is active, each link is
// printed above the primary diagnostic, showing the instantiation location
// and fully qualified template name.
type Link struct {
	Site source.Span
	File *source.File
	Name string
}

// Emitter is the sole diagnostic emission channel for the compiler core. The
// zero value is not usable; construct with New.
type Emitter struct {
	out       io.Writer
	color     bool
	width     int
	errored   bool
	exitOnFatal bool
}

// New constructs an Emitter writing to w, auto-detecting color/width support
// via golang.org/x/term the way pkg/util/termio/terminal.go does
// (term.IsTerminal gating ANSI output, term.GetSize bounding excerpt width).
func New(w io.Writer) *Emitter {
	e := &Emitter{out: w, width: 100, exitOnFatal: true}

	if f, ok := w.(*os.File); ok {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			e.color = true

			if width, _, err := term.GetSize(fd); err == nil && width > 0 {
				e.width = width
			}
		}
	}

	return e
}

// SetExitOnFatal controls whether Fatal calls os.Exit(1). Tests disable this
// so a fatal diagnostic can be observed instead of terminating the test
// process.
func (e *Emitter) SetExitOnFatal(exit bool) {
	e.exitOnFatal = exit
}

// Errored reports whether any Error or Fatal diagnostic has been emitted.
func (e *Emitter) Errored() bool {
	return e.errored
}

// Info emits an informational diagnostic.
func (e *Emitter) Info(file *source.File, span source.Span, format string, args ...any) {
	e.emit(Info, file, span, fmt.Sprintf(format, args...))
}

// Warning emits a non-fatal warning diagnostic.
func (e *Emitter) Warning(file *source.File, span source.Span, format string, args ...any) {
	e.emit(Warning, file, span, fmt.Sprintf(format, args...))
}

// Error emits a non-fatal error diagnostic. The run as a whole is not
// considered successful once Errored() becomes true.
func (e *Emitter) Error(file *source.File, span source.Span, format string, args ...any) {
	e.errored = true
	e.emit(Error, file, span, fmt.Sprintf(format, args...))
}

// Fatal emits a fatal diagnostic with an optional template-instantiation
// chain printed above it, then terminates the process (unless
// SetExitOnFatal(false) was used, in which case it panics with *FatalError
// so callers under test can recover it).
func (e *Emitter) Fatal(file *source.File, span source.Span, chain []Link, format string, args ...any) {
	e.errored = true

	for _, link := range chain {
		e.emit(Info, link.File, link.Site, fmt.Sprintf("in instantiation of %q", link.Name))
	}

	msg := fmt.Sprintf(format, args...)
	e.emit(Fatal, file, span, msg)

	if e.exitOnFatal {
		os.Exit(1)
	}

	panic(&FatalError{Message: msg})
}

// FatalError is recovered by callers that disabled exitOnFatal (tests).
type FatalError struct {
	Message string
}

func (f *FatalError) Error() string {
	return f.Message
}

func (e *Emitter) emit(sev Severity, file *source.File, span source.Span, msg string) {
	header := sev.String() + ":"
	if e.color {
		header = colorFor(sev) + header + resetColor
	}

	if file == nil {
		fmt.Fprintf(e.out, "%s %s\n", header, msg)
		return
	}

	loc := source.LocationOf(file, span)
	fmt.Fprintf(e.out, "%s:%d:%d: %s %s\n", loc.Module, loc.Line, loc.Column, header, msg)

	line := file.FindFirstEnclosingLine(span)
	text := excerpt(line.String(), e.width)
	fmt.Fprintf(e.out, "  %s\n", text)

	col := span.Start() - line.Span().Start()
	if col >= 0 && col < len(text) {
		caret := strings.Repeat(" ", col) + "^"
		fmt.Fprintf(e.out, "  %s\n", caret)
	}
}

func excerpt(line string, width int) string {
	if width <= 0 || len(line) <= width {
		return line
	}

	return line[:width]
}

const resetColor = "\x1b[0m"

func colorFor(sev Severity) string {
	switch sev {
	case Warning:
		return "\x1b[33m"
	case Error, Fatal:
		return "\x1b[31m"
	default:
		return "\x1b[36m"
	}
}
