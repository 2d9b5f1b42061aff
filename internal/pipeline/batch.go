package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/snapdiff/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used when no positive concurrency is configured.
const DefaultConcurrency = 4

// BatchProcessor processes many pages concurrently with a fresh pipeline
// per page.
type BatchProcessor struct {
	pipelineFactory func() *Pipeline
	concurrency     int
	logger          *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of pages processed at once.
// Non-positive values are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(bp)
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}
	return bp
}

// ProcessBatch runs every page through its own pipeline.
// Page failures are recorded on the page and do not stop the batch.
// The returned error is non-nil only when ctx was cancelled.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, pages []*model.Page) error {
	return bp.ProcessBatchWithCallback(ctx, pages, nil)
}

// ProcessBatchWithCallback is ProcessBatch calling callback after each
// page completes. callback runs on the worker goroutine and must be safe
// for concurrent use. It may be nil.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	pages []*model.Page,
	callback func(page *model.Page, index int),
) error {
	bp.logger.Debug("starting batch processing",
		"total_pages", len(pages),
		"concurrency", bp.concurrency,
	)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, page := range pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				page.Err = err
				return err
			}

			if err := bp.pipelineFactory().Execute(ctx, page); err != nil {
				bp.logger.Warn("page failed", "url", page.URL, "error", err)
			}
			if callback != nil {
				callback(page, i)
			}
			return nil
		})
	}

	err := g.Wait()
	bp.logger.Debug("batch processing complete",
		"total_pages", len(pages),
		"elapsed", time.Since(start),
	)
	return err
}
