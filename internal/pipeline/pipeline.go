package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/snapdiff/internal/model"
)

// Step defines the interface that all pipeline steps must implement.
type Step interface {
	// Do executes the step on page. A returned error stops the pipeline
	// unless the pipeline continues on error.
	Do(ctx context.Context, page *model.Page) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// StepFunc adapts a function to the Step interface.
type StepFunc struct {
	name string
	fn   func(ctx context.Context, page *model.Page) error
}

// NewStepFunc creates a named Step from fn.
func NewStepFunc(name string, fn func(ctx context.Context, page *model.Page) error) *StepFunc {
	return &StepFunc{name: name, fn: fn}
}

// Do calls the wrapped function.
func (s *StepFunc) Do(ctx context.Context, page *model.Page) error {
	return s.fn(ctx, page)
}

// Name returns the step name.
func (s *StepFunc) Name() string {
	return s.name
}

// Pipeline executes steps in order on a single page.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger

	// continueOnError runs the remaining steps after a failure.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to run the remaining steps
// even when a step fails.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
// Steps are added with AddStep or AddSteps.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in sequence on page.
// Cancellation is checked before each step. The first step error is
// stored in page.Err and returned.
func (p *Pipeline) Execute(ctx context.Context, page *model.Page) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled", "step", step.Name(), "url", page.URL, "reason", err)
			if page.Err == nil {
				page.Err = err
			}
			return err
		}

		p.logger.Debug("executing step", "step", step.Name(), "url", page.URL)

		if err := step.Do(ctx, page); err != nil {
			p.logger.Debug("step failed", "step", step.Name(), "url", page.URL, "error", err)
			if page.Err == nil {
				page.Err = err
			}
			if !p.continueOnError {
				return err
			}
			continue
		}

		page.Steps = append(page.Steps, step.Name())
	}
	return page.Err
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
