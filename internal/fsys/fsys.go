// Package fsys provides the filesystem primitives used by the rename engine.
package fsys

import (
	"io/fs"
	"os"
)

// FileSystem is the set of filesystem operations the rename engine needs.
type FileSystem interface {
	// Stat follows symlinks.
	Stat(path string) (fs.FileInfo, error)
	Rename(source, target string) error
	Getwd() (string, error)
	// SameFile reports whether two results of Stat describe the same file.
	SameFile(a, b fs.FileInfo) bool
}

// Kind classifies what a path refers to.
type Kind int

const (
	// Missing means the path could not be stat'ed. Permission errors land
	// here too; the rename itself reports them.
	Missing Kind = iota
	// File is a regular file.
	File
	// Directory is a directory.
	Directory
	// Other is anything else: device, socket, named pipe.
	Other
)

func (k Kind) String() string {
	switch k {
	case Missing:
		return "missing"
	case File:
		return "file"
	case Directory:
		return "directory"
	default:
		return "other"
	}
}

// Classify stats path and reports its Kind along with the FileInfo, which
// is nil when the path is Missing.
func Classify(fsys FileSystem, path string) (Kind, fs.FileInfo) {
	info, err := fsys.Stat(path)
	if err != nil {
		return Missing, nil
	}
	switch {
	case info.Mode().IsRegular():
		return File, info
	case info.IsDir():
		return Directory, info
	default:
		return Other, info
	}
}

// OS is the real filesystem.
type OS struct{}

func (OS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// Rename moves source to target with a single rename(2). Cross-device moves
// fail rather than falling back to copy and delete.
func (OS) Rename(source, target string) error {
	return os.Rename(source, target)
}

func (OS) Getwd() (string, error) {
	return os.Getwd()
}

func (OS) SameFile(a, b fs.FileInfo) bool {
	return os.SameFile(a, b)
}
