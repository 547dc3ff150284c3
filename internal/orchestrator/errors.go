package orchestrator

import (
	"errors"
	"fmt"
)

// ErrorKind identifies which safety rule stopped a run.
type ErrorKind string

const (
	// ConflictingOptions means force and interactive were both set.
	ConflictingOptions ErrorKind = "CONFLICTING_OPTIONS"
	// PatternCompile means a rule could not be compiled.
	PatternCompile ErrorKind = "PATTERN_COMPILE"
	// NotAFile means a listed path is not a regular file.
	NotAFile ErrorKind = "NOT_A_FILE"
	// TargetIsDirectory means the new name is taken by a directory.
	TargetIsDirectory ErrorKind = "TARGET_IS_DIRECTORY"
	// OverwriteRefused means the new name is taken by a file and overwriting
	// was not allowed.
	OverwriteRefused ErrorKind = "OVERWRITE_REFUSED"
	// FilesystemOperation means the rename itself failed.
	FilesystemOperation ErrorKind = "FILESYSTEM_OPERATION"
)

// Error is returned for every condition that aborts a run.
type Error struct {
	Kind   ErrorKind
	Path   string // Source path; absolute for NotAFile
	Target string
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ConflictingOptions:
		return "received --force and --interactive, which cannot be used together"
	case PatternCompile:
		return e.Err.Error()
	case NotAFile:
		return fmt.Sprintf("%q is not a file. If this is intentional, pass --ignore-dir", e.Path)
	case TargetIsDirectory:
		return fmt.Sprintf("cannot rename %q: %q is already a directory", e.Path, e.Target)
	case OverwriteRefused:
		return fmt.Sprintf("not overwriting %q without --interactive or --force", e.Target)
	case FilesystemOperation:
		return fmt.Sprintf("failed to rename %q to %q: %v", e.Path, e.Target, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is, or wraps, an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
