package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/vellum/pkg/analysis"
	"github.com/yaklabco/vellum/pkg/runner"
)

func TestRun_NoFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	result, err := runner.Run(context.Background(), runner.Options{
		Paths:      []string{dir},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Stats.FilesDiscovered != 0 {
		t.Errorf("FilesDiscovered = %d, want 0", result.Stats.FilesDiscovered)
	}
	if len(result.Files) != 0 {
		t.Errorf("expected no outcomes, got %d", len(result.Files))
	}
	if result.HasParseErrors() {
		t.Error("empty run should not report parse errors")
	}
}

func TestRun_SingleDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := "# Title\n\nSome text.\n"
	mdFile := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(mdFile, []byte(content), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	result, err := runner.Run(context.Background(), runner.Options{
		Paths:      []string{mdFile},
		WorkingDir: dir,
		Flavor:     "commonmark",
		Analysis:   analysis.Options{IncludeErrors: true},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesProcessed != 1 {
		t.Fatalf("FilesProcessed = %d, want 1", result.Stats.FilesProcessed)
	}
	if result.Stats.BytesTotal != len(content) {
		t.Errorf("BytesTotal = %d, want %d", result.Stats.BytesTotal, len(content))
	}

	outcome := result.Files[0]
	if outcome.Error != nil {
		t.Fatalf("outcome error = %v", outcome.Error)
	}
	if outcome.Report == nil {
		t.Fatal("outcome has no report")
	}
	if outcome.Report.Path != mdFile {
		t.Errorf("report path = %s, want %s", outcome.Report.Path, mdFile)
	}
	if outcome.Report.Flavor != "commonmark" {
		t.Errorf("report flavor = %s, want commonmark", outcome.Report.Flavor)
	}
	if outcome.Report.Totals.Bytes != len(content) {
		t.Errorf("report bytes = %d, want %d", outcome.Report.Totals.Bytes, len(content))
	}
}

func TestRun_DeterministicOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	names := []string{"a.md", "b.md", "c.md", "d.md", "e.md", "f.md", "g.md", "h.md"}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("# "+name+"\n"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	// Run twice with maximum concurrency; order must not depend on
	// worker completion order.
	for run := range 2 {
		result, err := runner.Run(context.Background(), runner.Options{
			Paths:      []string{dir},
			WorkingDir: dir,
			Jobs:       len(names),
		})
		if err != nil {
			t.Fatalf("Run() #%d error = %v", run, err)
		}
		if len(result.Files) != len(names) {
			t.Fatalf("Run() #%d got %d outcomes, want %d", run, len(result.Files), len(names))
		}
		for i, name := range names {
			want := filepath.Join(dir, name)
			if result.Files[i].Path != want {
				t.Errorf("Run() #%d files[%d] = %s, want %s", run, i, result.Files[i].Path, want)
			}
		}
	}
}

func TestRun_CountsParseErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "clean.md"), []byte("# Fine\n"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.md"), []byte("```go\ncode\n"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	result, err := runner.Run(context.Background(), runner.Options{
		Paths:      []string{dir},
		WorkingDir: dir,
		Analysis:   analysis.Options{IncludeErrors: true},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesProcessed != 2 {
		t.Fatalf("FilesProcessed = %d, want 2", result.Stats.FilesProcessed)
	}
	if result.Stats.FilesWithParseErrors != 1 {
		t.Errorf("FilesWithParseErrors = %d, want 1", result.Stats.FilesWithParseErrors)
	}
	if result.Stats.ParseErrorsTotal != 1 {
		t.Errorf("ParseErrorsTotal = %d, want 1", result.Stats.ParseErrorsTotal)
	}
	if !result.HasParseErrors() {
		t.Error("HasParseErrors() = false, want true")
	}

	reports := result.Reports()
	if len(reports) != 2 {
		t.Fatalf("Reports() returned %d, want 2", len(reports))
	}
}

func TestRun_SingleWorker(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"x.md", "y.md", "z.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("text\n"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	result, err := runner.Run(context.Background(), runner.Options{
		Paths:      []string{dir},
		WorkingDir: dir,
		Jobs:       1,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Stats.FilesProcessed != 3 {
		t.Errorf("FilesProcessed = %d, want 3", result.Stats.FilesProcessed)
	}
	if result.FirstError() != nil {
		t.Errorf("FirstError() = %v, want nil", result.FirstError())
	}
}

func TestRun_CancelledContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "doc.md"), []byte("text\n"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, runner.Options{
		Paths:      []string{dir},
		WorkingDir: dir,
	})
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestResult_NilReceivers(t *testing.T) {
	t.Parallel()

	var result *runner.Result
	if result.HasParseErrors() {
		t.Error("nil result should not report parse errors")
	}
	if result.Reports() != nil {
		t.Error("nil result should return nil reports")
	}
	if result.FirstError() != nil {
		t.Error("nil result should return nil error")
	}
}
