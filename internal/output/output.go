// Package output handles CLI output formatting for refile.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"refile/internal/config"
)

// DryRunTag prefixes every line logged for a simulated action.
const DryRunTag = "[DRY RUN]"

// Config holds output configuration.
type Config struct {
	Verbose   bool      // Enable verbose output
	Writer    io.Writer // Output destination (default: os.Stdout)
	ErrWriter io.Writer // Error output destination (default: os.Stderr)
	Color     bool      // Colorize tags
}

// Output writes user-facing lines.
type Output struct {
	config Config
	tag    *color.Color
	warn   *color.Color
	fail   *color.Color
}

// New creates a new Output instance with the given configuration.
func New(config Config) *Output {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}
	if config.ErrWriter == nil {
		config.ErrWriter = os.Stderr
	}
	o := &Output{
		config: config,
		tag:    color.New(color.FgCyan, color.Bold),
		warn:   color.New(color.FgYellow),
		fail:   color.New(color.FgRed),
	}
	for _, c := range []*color.Color{o.tag, o.warn, o.fail} {
		if config.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return o
}

// DefaultConfig returns a Config writing to stdout and stderr, with TTY
// detection and color resolved from mode.
func DefaultConfig(mode config.ColorMode) Config {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	return Config{
		Verbose:   false,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Color:     ColorEnabled(mode, isTTY),
	}
}

// ColorEnabled resolves a color mode. Auto enables color on a terminal
// unless NO_COLOR is set.
func ColorEnabled(mode config.ColorMode, isTTY bool) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return isTTY && os.Getenv("NO_COLOR") == ""
	}
}

// Log writes a single line describing an action. Lines for simulated
// actions carry the dry-run tag.
func (o *Output) Log(dryRun bool, message string) {
	if dryRun {
		message = o.tag.Sprint(DryRunTag) + " " + message
	}
	o.println(o.config.Writer, message)
}

// Verbose prints a message only when verbose mode is enabled.
func (o *Output) Verbose(format string, args ...interface{}) {
	if !o.config.Verbose {
		return
	}
	o.println(o.config.Writer, fmt.Sprintf(format, args...))
}

// Warn prints a warning to stderr.
func (o *Output) Warn(format string, args ...interface{}) {
	o.println(o.config.ErrWriter, o.warn.Sprint("Warning:")+" "+fmt.Sprintf(format, args...))
}

// Error prints an error message to stderr.
func (o *Output) Error(format string, args ...interface{}) {
	o.println(o.config.ErrWriter, o.fail.Sprint("Error:")+" "+fmt.Sprintf(format, args...))
}

func (o *Output) println(w io.Writer, msg string) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprint(w, msg)
}
