package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/pdfoutline/layout"
	"github.com/tsawler/pdfoutline/model"
)

// Config bounds a document run.
type Config struct {
	// MaxPages is the longest document accepted. Longer documents fail
	// before any page is extracted.
	// Default: 50
	MaxPages int

	// Workers is the number of pages processed at once.
	// Default: runtime.NumCPU()
	Workers int

	// Timeout is the wall-clock budget for the whole document.
	// Default: 10s
	Timeout time.Duration
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		MaxPages: 50,
		Workers:  runtime.NumCPU(),
		Timeout:  10 * time.Second,
	}
}

// Scheduler runs the two-pass page pipeline for one document at a time:
// pass 1 acquires every page in parallel, a barrier collects them for the
// cross-page analysis, and pass 2 classifies every page in parallel.
type Scheduler struct {
	config   Config
	acquirer *Acquirer
	analyzer *layout.Analyzer
	logger   *zap.Logger
}

// NewScheduler creates a scheduler. Zero config fields take their defaults.
func NewScheduler(config Config, acquirer *Acquirer, analyzer *layout.Analyzer, logger *zap.Logger) *Scheduler {
	def := DefaultConfig()
	if config.MaxPages <= 0 {
		config.MaxPages = def.MaxPages
	}
	if config.Workers <= 0 {
		config.Workers = def.Workers
	}
	if config.Timeout <= 0 {
		config.Timeout = def.Timeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if acquirer == nil {
		acquirer = NewAcquirer(DefaultAcquireConfig(), nil, logger)
	}
	if analyzer == nil {
		analyzer = layout.NewAnalyzer()
	}
	return &Scheduler{config: config, acquirer: acquirer, analyzer: analyzer, logger: logger}
}

// Run produces the outline of doc, or an error result. Run takes ownership
// of doc and closes it once every page task has returned; after a timeout
// that happens in the background, after Run has already returned.
func (s *Scheduler) Run(ctx context.Context, doc Document) model.Result {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)

	done := make(chan model.Result, 1)
	go func() {
		done <- s.run(ctx, doc)
	}()

	select {
	case res := <-done:
		cancel()
		s.release(doc)
		s.logger.Debug("document finished",
			zap.Duration("duration", time.Since(start)),
			zap.Bool("ok", res.OK()))
		return res
	case <-ctx.Done():
		err := ctx.Err()
		go func() {
			<-done
			cancel()
			s.release(doc)
		}()
		return model.Failure(s.interrupted(err))
	}
}

// interrupted reports a context error; an expired deadline becomes
// ErrTimeoutExceeded.
func (s *Scheduler) interrupted(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: no result within %s", ErrTimeoutExceeded, s.config.Timeout)
	}
	return err
}

func (s *Scheduler) release(doc Document) {
	if err := doc.Close(); err != nil {
		s.logger.Warn("failed to close document", zap.Error(err))
	}
}

func (s *Scheduler) run(ctx context.Context, doc Document) model.Result {
	n := doc.NumPage()
	if n > s.config.MaxPages {
		return model.Failure(fmt.Errorf("%w: document has %d pages, limit is %d", ErrPageCountExceeded, n, s.config.MaxPages))
	}
	if n <= 0 {
		return model.Failure(fmt.Errorf("%w: document has no pages", ErrMalformedDocument))
	}

	// Pass 1. Each task writes only its own slot.
	pages := make([]model.Page, n)
	if err := s.forEachPage(ctx, n, func(ctx context.Context, i int) {
		pages[i] = s.acquirer.Acquire(ctx, doc, i)
	}); err != nil {
		return model.Failure(s.interrupted(err))
	}

	failed := 0
	for _, p := range pages {
		if p.Err != nil {
			failed++
			s.logger.Warn("page degraded", zap.Int("page", p.Number), zap.Error(p.Err))
		}
	}
	if failed == n && len(model.AllSpans(pages)) == 0 {
		return model.Failure(fmt.Errorf("%w: no text on any of %d pages", ErrExtractionFailure, n))
	}

	// Cross-page step, sequential.
	an := s.analyzer.Analyze(doc.Title(), pages)
	if err := ctx.Err(); err != nil {
		return model.Failure(s.interrupted(err))
	}

	// Pass 2.
	perPage := make([][]model.HeadingCandidate, n)
	if err := s.forEachPage(ctx, n, func(_ context.Context, i int) {
		perPage[i] = an.ClassifyPage(i)
	}); err != nil {
		return model.Failure(s.interrupted(err))
	}

	outline := an.Outline(perPage)
	s.logger.Debug("outline assembled",
		zap.Int("pages", n),
		zap.Int("entries", len(outline.Entries)),
		zap.Bool("structured", an.Profile.Structured),
		zap.Float64("body_size", an.Profile.BodySize))
	return model.Success(outline)
}

// forEachPage runs fn for every page index on the bounded pool and waits
// for all of them. Tasks not yet started when ctx ends are skipped.
func (s *Scheduler) forEachPage(ctx context.Context, n int, fn func(ctx context.Context, i int)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(gctx, i)
			return nil
		})
	}
	return g.Wait()
}
