package orchestrator

import (
	"os"
	"path/filepath"
	"testing"

	"refile/internal/fsys"
)

// These tests run against the real filesystem in a temp directory.

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestRenameOnDisk(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "notes.txt")
	target := filepath.Join(dir, "notes.md")
	writeFile(t, source, "my notes")

	o, err := New(options([]string{source}, `\.txt$`, ".md"), Dependencies{FS: fsys.OS{}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	summary, err := o.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if _, err := os.Stat(source); !os.IsNotExist(err) {
		t.Error("notes.txt should no longer exist")
	}
	content, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("notes.md should exist: %v", err)
	}
	if string(content) != "my notes" {
		t.Errorf("content changed during rename: %q", content)
	}
	if summary.Renamed != 1 {
		t.Errorf("expected 1 rename, got %d", summary.Renamed)
	}
}

func TestDryRunDoesNotRenameOnDisk(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "notes.txt")
	writeFile(t, source, "my notes")

	opts := options([]string{source}, `\.txt$`, ".md")
	opts.DryRun = true
	logger := &recordingLogger{}

	o, _ := New(opts, Dependencies{FS: fsys.OS{}, Logger: logger})
	summary, err := o.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if _, err := os.Stat(source); err != nil {
		t.Error("source should NOT have been renamed in dry-run mode")
	}
	if _, err := os.Stat(filepath.Join(dir, "notes.md")); !os.IsNotExist(err) {
		t.Error("target should not exist after a dry run")
	}
	if summary.Simulated != 1 {
		t.Errorf("expected 1 simulated rename, got %d", summary.Simulated)
	}
	if len(logger.lines) != 1 || !logger.lines[0].dryRun {
		t.Errorf("expected one dry-run log line, got %+v", logger.lines)
	}
}

func TestOverwriteRefusedLeavesSourceOnDisk(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "notes.txt")
	target := filepath.Join(dir, "notes.md")
	writeFile(t, source, "new")
	writeFile(t, target, "old")

	o, _ := New(options([]string{source}, `\.txt$`, ".md"), Dependencies{FS: fsys.OS{}})
	_, err := o.Run()
	if !IsKind(err, OverwriteRefused) {
		t.Fatalf("expected OverwriteRefused, got %v", err)
	}

	if got, _ := os.ReadFile(source); string(got) != "new" {
		t.Errorf("source changed: %q", got)
	}
	if got, _ := os.ReadFile(target); string(got) != "old" {
		t.Errorf("target changed: %q", got)
	}
}

func TestForceOverwritesOnDisk(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "notes.txt")
	target := filepath.Join(dir, "notes.md")
	writeFile(t, source, "new")
	writeFile(t, target, "old")

	opts := options([]string{source}, `\.txt$`, ".md")
	opts.Force = true

	o, _ := New(opts, Dependencies{FS: fsys.OS{}})
	if _, err := o.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if got, _ := os.ReadFile(target); string(got) != "new" {
		t.Errorf("target should hold the source content, got %q", got)
	}
}

func TestTargetDirectoryOnDisk(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "photos.txt")
	writeFile(t, source, "x")
	if err := os.Mkdir(filepath.Join(dir, "photos"), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}

	opts := options([]string{source}, `\.txt$`, "")
	opts.Force = true

	o, _ := New(opts, Dependencies{FS: fsys.OS{}})
	_, err := o.Run()
	if !IsKind(err, TargetIsDirectory) {
		t.Fatalf("expected TargetIsDirectory, got %v", err)
	}
	if _, err := os.Stat(source); err != nil {
		t.Error("source should be untouched")
	}
}

func TestSymlinkToFileIsRenamed(t *testing.T) {
	dir := t.TempDir()
	orig := filepath.Join(dir, "real.txt")
	link := filepath.Join(dir, "link.txt")
	writeFile(t, orig, "x")
	if err := os.Symlink(orig, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	o, _ := New(options([]string{link}, "^link", "alias"), Dependencies{FS: fsys.OS{}})
	if _, err := o.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	info, err := os.Lstat(filepath.Join(dir, "alias.txt"))
	if err != nil {
		t.Fatalf("alias.txt should exist: %v", err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Error("the link itself should be renamed, not its target")
	}
}

func TestHardLinkTargetIsRefused(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "a.txt")
	target := filepath.Join(dir, "b.txt")
	writeFile(t, source, "shared")
	if err := os.Link(source, target); err != nil {
		t.Skipf("hard links unavailable: %v", err)
	}

	o, _ := New(options([]string{source}, "^a", "b"), Dependencies{FS: fsys.OS{}})
	summary, err := o.Run()
	if !IsKind(err, OverwriteRefused) {
		t.Fatalf("expected OverwriteRefused, got %v", err)
	}
	if summary.Renamed != 0 {
		t.Errorf("expected no renames, got %d", summary.Renamed)
	}
	for _, path := range []string{source, target} {
		if got, err := os.ReadFile(path); err != nil || string(got) != "shared" {
			t.Errorf("%s should be untouched, got %q (%v)", filepath.Base(path), got, err)
		}
	}
}

func TestSymlinkTargetIsRefused(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "a.txt")
	target := filepath.Join(dir, "b.txt")
	writeFile(t, source, "x")
	if err := os.Symlink(source, target); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	o, _ := New(options([]string{source}, "^a", "b"), Dependencies{FS: fsys.OS{}})
	if _, err := o.Run(); !IsKind(err, OverwriteRefused) {
		t.Fatalf("expected OverwriteRefused, got %v", err)
	}

	if got, err := os.ReadFile(source); err != nil || string(got) != "x" {
		t.Errorf("source should be untouched, got %q (%v)", got, err)
	}
	info, err := os.Lstat(target)
	if err != nil {
		t.Fatalf("b.txt should still exist: %v", err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Error("b.txt should still be a symlink")
	}
}
