// Package orchestrator decides and performs the renames for refile.
package orchestrator

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"refile/internal/config"
	"refile/internal/fsys"
	"refile/internal/logging"
	"refile/internal/matcher"
)

// Confirmer asks the operator a yes/no question and blocks until answered.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Logger writes a single line. dryRun marks lines describing simulated
// actions.
type Logger interface {
	Log(dryRun bool, message string)
}

// Dependencies are the collaborators an Orchestrator calls out to. Nil
// fields get defaults: the real filesystem, a Confirmer that always
// declines, a Logger that discards, and a disabled trace.
type Dependencies struct {
	FS        fsys.FileSystem
	Confirmer Confirmer
	Logger    Logger
	Trace     *zerolog.Logger
}

// Orchestrator applies a compiled rule set to a list of paths.
type Orchestrator struct {
	opts      config.Options
	set       *matcher.Set
	fs        fsys.FileSystem
	confirmer Confirmer
	logger    Logger
	trace     zerolog.Logger
}

// New checks the options and compiles the rules. Both checks happen before
// any path is looked at, so a failure here leaves the filesystem untouched.
func New(opts config.Options, deps Dependencies) (*Orchestrator, error) {
	if opts.Force && opts.Interactive {
		return nil, &Error{Kind: ConflictingOptions}
	}

	set, err := matcher.Compile(opts.Rules(), opts.Global)
	if err != nil {
		return nil, &Error{Kind: PatternCompile, Err: err}
	}

	o := &Orchestrator{
		opts:      opts,
		set:       set,
		fs:        deps.FS,
		confirmer: deps.Confirmer,
		logger:    deps.Logger,
		trace:     zerolog.Nop(),
	}
	if o.fs == nil {
		o.fs = fsys.OS{}
	}
	if o.confirmer == nil {
		o.confirmer = declineAll{}
	}
	if o.logger == nil {
		o.logger = discard{}
	}
	if deps.Trace != nil {
		o.trace = logging.Component(*deps.Trace, "orchestrator")
	}
	return o, nil
}

// Set returns the compiled rule set.
func (o *Orchestrator) Set() *matcher.Set {
	return o.set
}

// Run handles every file in the options, in order. The first error stops the
// run; renames already done are kept. The returned Summary is never nil.
func (o *Orchestrator) Run() (*Summary, error) {
	start := time.Now()
	summary := newSummary()
	defer func() { summary.Duration = time.Since(start) }()

	o.trace.Debug().
		Int("files", len(o.opts.Files)).
		Int("rules", o.set.Len()).
		Bool("global", o.set.ReplaceAll()).
		Bool("dry_run", o.opts.DryRun).
		Msg("run started")

	for _, path := range o.opts.Files {
		plan, err := o.process(path)
		if err != nil {
			o.trace.Debug().Err(err).Str("path", path).Msg("run aborted")
			return summary, err
		}
		o.trace.Debug().
			Str("source", plan.Source).
			Str("target", plan.Target).
			Str("outcome", string(plan.Outcome)).
			Msg("candidate done")
		summary.add(plan)
	}

	return summary, nil
}

// process takes one candidate from Pending to its Outcome.
func (o *Orchestrator) process(path string) (Plan, error) {
	plan := Plan{Source: path}

	kind, srcInfo := fsys.Classify(o.fs, path)
	if kind != fsys.File {
		if o.opts.IgnoreDir {
			if o.opts.Verbose {
				o.logger.Log(o.opts.DryRun, fmt.Sprintf("Ignoring directory %q", path))
			}
			plan.Outcome = SkippedIgnored
			return plan, nil
		}
		return plan, &Error{Kind: NotAFile, Path: o.absolute(path)}
	}

	target, changed := o.targetFor(path)
	plan.Target = target
	if !changed {
		if o.opts.Verbose {
			o.logger.Log(o.opts.DryRun, fmt.Sprintf("No patterns match %q", path))
		}
		plan.Outcome = SkippedUnchanged
		return plan, nil
	}

	switch targetKind, targetInfo := fsys.Classify(o.fs, target); targetKind {
	case fsys.Directory:
		return plan, &Error{Kind: TargetIsDirectory, Path: path, Target: target}
	case fsys.File:
		if caseOnly(path, target) && o.fs.SameFile(srcInfo, targetInfo) {
			// Case-only rename on a case-insensitive filesystem. Links to
			// the source under another name still count as existing files.
			break
		}
		if o.opts.Interactive {
			ok, err := o.confirmer.Confirm(fmt.Sprintf("Overwrite %q?", target))
			if err != nil {
				return plan, fmt.Errorf("confirm overwrite of %q: %w", target, err)
			}
			if !ok {
				plan.Outcome = SkippedDeclined
				return plan, nil
			}
		} else if !o.opts.Force {
			return plan, &Error{Kind: OverwriteRefused, Path: path, Target: target}
		}
	}

	if o.opts.Verbose || o.opts.DryRun {
		o.logger.Log(o.opts.DryRun, fmt.Sprintf("%q -> %q", path, target))
	}

	if o.opts.DryRun {
		plan.Outcome = SimulatedRenamed
		return plan, nil
	}

	if err := o.fs.Rename(path, target); err != nil {
		return plan, &Error{Kind: FilesystemOperation, Path: path, Target: target, Err: err}
	}
	plan.Outcome = Renamed
	return plan, nil
}

// targetFor transforms the filename of path and rejoins it with the parent
// directory. changed is false when no rule altered the name.
func (o *Orchestrator) targetFor(path string) (string, bool) {
	name := filepath.Base(path)

	if e := o.trace.Debug(); e.Enabled() {
		steps := zerolog.Arr()
		for _, step := range o.set.Trace(name) {
			steps.Str(step.Pattern + ": " + step.Before + " -> " + step.After)
		}
		e.Str("path", path).Array("steps", steps).Msg("transform")
	}

	newName := o.set.Transform(name)
	if newName == name {
		return path, false
	}
	return filepath.Join(filepath.Dir(path), newName), true
}

// caseOnly reports whether target differs from path only in the letter case
// of its last element.
func caseOnly(path, target string) bool {
	from, to := filepath.Base(path), filepath.Base(target)
	return from != to && strings.EqualFold(from, to)
}

// absolute resolves path against the working directory for error messages.
func (o *Orchestrator) absolute(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	cwd, err := o.fs.Getwd()
	if err != nil {
		return path
	}
	return filepath.Join(cwd, path)
}

type declineAll struct{}

func (declineAll) Confirm(string) (bool, error) { return false, nil }

type discard struct{}

func (discard) Log(bool, string) {}
