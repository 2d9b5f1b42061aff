package snapshot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/morikuni/failure/v2"
	"github.com/nao1215/snapdiff/internal/archive"
	"github.com/nao1215/snapdiff/internal/model"
	"github.com/nao1215/snapdiff/internal/pipeline"
)

// Producer converts a page list into a snapshot archive.
type Producer struct {
	fetcher     *Fetcher
	concurrency int
	logger      *slog.Logger
	stdout      io.Writer
	stderr      io.Writer
	now         func() time.Time
}

// Option configures a Producer.
type Option func(*Producer)

// WithFetcher sets the document fetcher.
func WithFetcher(f *Fetcher) Option {
	return func(p *Producer) {
		p.fetcher = f
	}
}

// WithConcurrency sets the number of pages processed at once.
func WithConcurrency(n int) Option {
	return func(p *Producer) {
		p.concurrency = n
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Producer) {
		p.logger = logger
	}
}

// WithOutput sets where progress lines and per-page failures are printed.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(p *Producer) {
		p.stdout = stdout
		p.stderr = stderr
	}
}

// WithClock sets the time source used to name the archive.
func WithClock(now func() time.Time) Option {
	return func(p *Producer) {
		p.now = now
	}
}

// New creates a Producer.
func New(opts ...Option) *Producer {
	p := &Producer{
		concurrency: pipeline.DefaultConcurrency,
		logger:      slog.Default(),
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.fetcher == nil {
		p.fetcher = NewFetcher(WithFetcherLogger(p.logger))
	}
	return p
}

// Run converts every page listed in csvPath and bundles the results into a
// new archive in outputDir, named after the current local time.
// Invalid rows and pages that fail are reported and skipped. Run fails
// when no page could be converted.
func (p *Producer) Run(ctx context.Context, csvPath, outputDir string) (archive.Ref, error) {
	entries, err := ReadEntries(csvPath)
	if err != nil {
		return archive.Ref{}, err
	}

	pages := p.pages(entries)
	p.logger.Debug("converting pages", "pages", len(pages), "concurrency", p.concurrency)

	batch := pipeline.NewBatchProcessor(p.newPipeline,
		pipeline.WithConcurrency(p.concurrency),
		pipeline.WithBatchLogger(p.logger),
	)
	if err := batch.ProcessBatch(ctx, pages); err != nil {
		return archive.Ref{}, failure.Wrap(err)
	}

	files := make([]archive.File, 0, len(pages))
	for _, page := range pages {
		if !page.Converted() {
			p.logger.Debug("page failed", "title", page.Title, "completed_steps", page.Steps)
			fmt.Fprintf(p.stderr, "Failed: %s (%s): %s\n", page.Title, page.URL, errorMessage(page.Err))
			continue
		}
		fmt.Fprintf(p.stdout, "Converted: %s -> %s\n", page.Title, page.FileName)
		files = append(files, archive.File{Name: page.FileName, Content: []byte(page.Markdown)})
	}

	if len(files) == 0 {
		return archive.Ref{}, failure.New(ErrNoPages,
			failure.Message("no pages were converted"),
			failure.Context{"listed": strconv.Itoa(len(entries))},
		)
	}

	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return archive.Ref{}, failure.Wrap(err, failure.WithCode(archive.ErrArchiveWrite),
			failure.Message("cannot create output directory"))
	}

	ref, err := archive.Create(outputDir, p.now(), files)
	if err != nil {
		return archive.Ref{}, err
	}
	fmt.Fprintf(p.stdout, "Archive created: %s\n", ref.Path)
	return ref, nil
}

// pages turns valid entries into pages, reporting invalid ones.
func (p *Producer) pages(entries []Entry) []*model.Page {
	namer := newFileNamer()
	pages := make([]*model.Page, 0, len(entries))
	for _, e := range entries {
		if e.Err != nil {
			fmt.Fprintf(p.stderr, "Skipped line %d: %s\n", e.Line, errorMessage(e.Err))
			continue
		}
		pages = append(pages, model.NewPage(e.Title, e.URL, namer.name(e.Title)))
	}
	return pages
}

// newPipeline builds the fetch, convert and render steps for one page.
func (p *Producer) newPipeline() *pipeline.Pipeline {
	pl := pipeline.New(pipeline.WithLogger(p.logger))
	pl.AddSteps(
		pipeline.NewStepFunc("fetch", func(ctx context.Context, page *model.Page) error {
			doc, err := p.fetcher.Fetch(ctx, page.URL)
			if err != nil {
				return err
			}
			page.HTML = doc
			return nil
		}),
		pipeline.NewStepFunc("convert", func(_ context.Context, page *model.Page) error {
			body, err := Convert(page.URL, page.HTML)
			if err != nil {
				return err
			}
			page.Markdown = body
			return nil
		}),
		pipeline.NewStepFunc("render", func(_ context.Context, page *model.Page) error {
			page.Markdown = Render(page.Title, page.URL, page.Markdown)
			page.ComputeHash()
			p.logger.Debug("page rendered", "file", page.FileName, "sha256", page.Hash)
			return nil
		}),
	)
	return pl
}

// errorMessage prefers the user-facing failure message.
func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	if msg := failure.MessageOf(err); msg != "" {
		return msg.String()
	}
	return err.Error()
}
