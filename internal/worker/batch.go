package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bojo24/contentforge/internal/model"
	"github.com/bojo24/contentforge/internal/pipeline"
)

// Processor runs the pipeline for one (record, content type) pair.
type Processor interface {
	Process(ctx context.Context, recordID string, ct model.ContentType) pipeline.Result
}

// RecordJob is one (record, content type) unit of batch work.
type RecordJob struct {
	RecordID    string
	ContentType model.ContentType
	Processor   Processor
}

// Execute runs the pipeline for the job's record.
func (j *RecordJob) Execute(ctx context.Context) Result {
	res := j.Processor.Process(ctx, j.RecordID, j.ContentType)
	return &JobResult{Result: res}
}

// JobResult adapts a pipeline result to the pool's Result interface.
type JobResult struct {
	Result pipeline.Result
}

// GetError returns the pipeline error, if any.
func (r *JobResult) GetError() error {
	return r.Result.Err
}

// PacedProcessor spaces Process calls through a shared service limiter.
// It is the coarse between-records pacing; the assembler separately
// rate-limits individual generative calls within a record.
type PacedProcessor struct {
	inner   Processor
	limiter *Limiter
	service string
	delay   time.Duration
}

// NewPacedProcessor wraps a processor with pacing. A nil limiter returns
// the inner processor unchanged.
func NewPacedProcessor(inner Processor, limiter *Limiter, service string, delay time.Duration) Processor {
	if limiter == nil {
		return inner
	}
	return &PacedProcessor{inner: inner, limiter: limiter, service: service, delay: delay}
}

// Process waits for pacing clearance, then delegates.
func (p *PacedProcessor) Process(ctx context.Context, recordID string, ct model.ContentType) pipeline.Result {
	if err := p.limiter.WaitWithDelay(ctx, p.service, p.delay); err != nil {
		return pipeline.Result{RecordID: recordID, ContentType: ct, Err: err}
	}
	return p.inner.Process(ctx, recordID, ct)
}

// Tally is the per-batch outcome count reported to the operator. Duplicates
// and skips are successes from the batch's point of view: the pipeline did
// its job, publication was just not warranted.
type Tally struct {
	Processed  int
	Succeeded  int
	Duplicates int
	Skipped    int
	Failed     int
}

func (t Tally) String() string {
	return fmt.Sprintf("processed=%d succeeded=%d duplicates=%d skipped=%d failed=%d",
		t.Processed, t.Succeeded, t.Duplicates, t.Skipped, t.Failed)
}

// BatchProcessor fans records out over a worker pool. Failures stay on
// their record: one broken record never aborts the batch.
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a batch processor with bounded concurrency.
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessRecords runs every (record, content type) combination and returns
// the individual results.
func (b *BatchProcessor) ProcessRecords(ctx context.Context, recordIDs []string, types []model.ContentType) []pipeline.Result {
	if len(recordIDs) == 0 || len(types) == 0 {
		return nil
	}

	pool := NewPool(b.concurrency, len(recordIDs)*len(types))
	pool.Start()

	// Propagate caller cancellation into the pool, and reap the watcher
	// once the batch drains.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			pool.Shutdown()
		case <-done:
		}
	}()

	for _, id := range recordIDs {
		for _, ct := range types {
			pool.Submit(&RecordJob{RecordID: id, ContentType: ct, Processor: b.processor})
		}
	}

	results := pool.Wait()
	out := make([]pipeline.Result, 0, len(results))
	for _, r := range results {
		out = append(out, r.(*JobResult).Result)
	}
	return out
}

// ProcessFile reads record ids from a file and processes them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string, types []model.ContentType) ([]pipeline.Result, error) {
	ids, err := ReadIDsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read record ids: %w", err)
	}
	return b.ProcessRecords(ctx, ids, types), nil
}

// Summarize folds results into a tally.
func Summarize(results []pipeline.Result) Tally {
	t := Tally{Processed: len(results)}
	for _, r := range results {
		switch {
		case r.Err != nil:
			t.Failed++
		case r.Duplicate:
			t.Duplicates++
		case r.Skipped:
			t.Skipped++
		default:
			t.Succeeded++
		}
	}
	return t
}

// ReadIDsFromFile reads record ids, one per line. Blank lines and
// #-comments are skipped; duplicates are dropped keeping first position.
func ReadIDsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var ids []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			ids = append(ids, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return ids, nil
}
