package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunBatchWritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.my")
	outPath := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(inPath, []byte("print 1 + 2\n"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	if code := run([]string{inPath, outPath}); code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}

	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(got) != "3\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRunBatchExitsOneOnRuntimeError(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.my")
	outPath := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(inPath, []byte("print undefined_name\n"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	if code := run([]string{inPath, outPath}); code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
}

func TestRunWithNoArgsPrintsUsage(t *testing.T) {
	if code := run(nil); code != 1 {
		t.Fatalf("run(nil) = %d, want 1", code)
	}
}

func TestRunWithBadArgCountPrintsUsage(t *testing.T) {
	if code := run([]string{"only-one-arg"}); code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
}

func TestRunMissingInputFileExitsOne(t *testing.T) {
	dir := t.TempDir()
	if code := run([]string{filepath.Join(dir, "missing.my"), filepath.Join(dir, "out.txt")}); code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
}
