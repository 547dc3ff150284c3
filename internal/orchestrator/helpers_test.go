package orchestrator

import (
	"errors"
	"fmt"

	"refile/internal/config"
)

type logLine struct {
	dryRun  bool
	message string
}

// recordingLogger keeps every logged line.
type recordingLogger struct {
	lines []logLine
}

func (l *recordingLogger) Log(dryRun bool, message string) {
	l.lines = append(l.lines, logLine{dryRun: dryRun, message: message})
}

func (l *recordingLogger) messages() []string {
	out := make([]string, len(l.lines))
	for i, line := range l.lines {
		out[i] = line.message
	}
	return out
}

// scriptedConfirmer answers from a fixed list and records the questions.
type scriptedConfirmer struct {
	answers   []bool
	err       error
	questions []string
}

func (c *scriptedConfirmer) Confirm(question string) (bool, error) {
	c.questions = append(c.questions, question)
	if c.err != nil {
		return false, c.err
	}
	if len(c.answers) == 0 {
		return false, errors.New("no scripted answer left")
	}
	answer := c.answers[0]
	c.answers = c.answers[1:]
	return answer, nil
}

func rules(pairs ...string) (config.Rule, []config.Rule) {
	if len(pairs)%2 != 0 {
		panic(fmt.Sprintf("rules needs find/replace pairs, got %d strings", len(pairs)))
	}
	var all []config.Rule
	for i := 0; i < len(pairs); i += 2 {
		all = append(all, config.Rule{Find: pairs[i], Replace: pairs[i+1]})
	}
	return all[0], all[1:]
}

func options(files []string, pairs ...string) config.Options {
	opts := config.DefaultOptions()
	opts.Pattern, opts.Patterns = rules(pairs...)
	opts.Files = files
	return opts
}
