package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/vellum/internal/logging"
	"github.com/yaklabco/vellum/pkg/analysis"
	"github.com/yaklabco/vellum/pkg/document"
	"github.com/yaklabco/vellum/pkg/fsutil"
	goldmarkparser "github.com/yaklabco/vellum/pkg/parser/goldmark"
	"github.com/yaklabco/vellum/pkg/syntax"
)

// Run discovers documents under opts.Paths and analyzes them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate
// stats. Outcomes appear in sorted path order regardless of which worker
// finished first. Respects context cancellation.
func Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, workCh, outCh, opts)
		}()
	}

	// Feed work in a separate goroutine.
	go func() {
		defer close(workCh)
		for _, filePath := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- filePath:
			}
		}
	}()

	// Close outCh when all workers are done.
	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers may complete out of order; index outcomes by path and
	// reassemble in discovery order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, filePath := range files {
		if outcome, ok := outcomes[filePath]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker analyzes files from workCh and sends outcomes to outCh. Each
// worker carries its own parser instance. The logger rides in on the
// context so callers control where worker diagnostics go.
func worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, opts Options) {
	logger := logging.FromContext(ctx)
	parser := goldmarkparser.New(opts.Flavor)

	for filePath := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := FileOutcome{Path: filePath}

		content, _, err := fsutil.ReadFile(ctx, filePath)
		if err != nil {
			logger.Debug("skipping unreadable file", logging.FieldPath, filePath, logging.FieldError, err)
			outcome.Error = err
		} else {
			doc := document.New(syntax.Intern(filePath), string(content), parser)
			outcome.Report = analyzeDocument(doc, filePath, parser.Flavor(), opts.Analysis)
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// analyzeDocument builds the per-document report with the path and flavor
// filled in.
func analyzeDocument(doc *document.Snapshot, filePath, flavor string, opts analysis.Options) *analysis.Report {
	opts.Path = filePath
	opts.Flavor = flavor
	return analysis.Analyze(doc, opts)
}
