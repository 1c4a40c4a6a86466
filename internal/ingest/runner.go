package ingest

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/verte-zerg/passlab/internal/engine"
	"golang.org/x/sync/errgroup"
)

// Default runner settings.
const (
	DefaultProgressEvery = 100000
	DefaultBatchSize     = 4096
)

// Runner drives one pass over an input stream.
type Runner struct {
	shards        int
	batchSize     int
	progressEvery int
	logger        *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithShards sets the number of accumulators fed in parallel. Values below
// 2 process the input sequentially.
func WithShards(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.shards = n
		}
	}
}

// WithBatchSize sets how many lines are handed to a shard at a time.
func WithBatchSize(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

// WithProgressEvery logs progress every n lines. Zero disables progress.
func WithProgressEvery(n int) RunnerOption {
	return func(r *Runner) {
		if n >= 0 {
			r.progressEvery = n
		}
	}
}

// WithLogger sets the logger used for progress.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		shards:    1,
		batchSize: DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Result describes a finished pass.
type Result struct {
	Lines   int
	Elapsed time.Duration
}

// Run reads src line by line into acc. On cancellation it stops reading and
// returns ctx.Err(); acc then holds every line read so far. A read error is
// returned as is.
func (r *Runner) Run(ctx context.Context, src io.Reader, acc *engine.Accumulator) (Result, error) {
	start := time.Now()
	var (
		res Result
		err error
	)
	if r.shards < 2 {
		res.Lines, err = r.runSequential(ctx, src, acc)
	} else {
		res.Lines, err = r.runSharded(ctx, src, acc)
	}
	res.Elapsed = time.Since(start)
	r.logger.Debug("input pass finished", "lines", res.Lines, "elapsed", res.Elapsed, "shards", r.shards)
	return res, err
}

func (r *Runner) runSequential(ctx context.Context, src io.Reader, acc *engine.Accumulator) (int, error) {
	lines := NewLineReader(src)
	n := 0
	for {
		if n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return n, err
			}
		}
		line, ok := lines.Next()
		if !ok {
			break
		}
		acc.Add(line)
		n++
		r.progress(n)
	}
	return n, lines.Err()
}

// runSharded hands batches of lines to forks of acc and merges the forks
// back in shard order once the input is exhausted.
func (r *Runner) runSharded(ctx context.Context, src io.Reader, acc *engine.Accumulator) (int, error) {
	shards := make([]*engine.Accumulator, r.shards)
	for i := range shards {
		shards[i] = acc.Fork()
	}
	batches := make(chan []string, r.shards)
	n := 0

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(batches)
		lines := NewLineReader(src)
		batch := make([]string, 0, r.batchSize)
		for {
			line, ok := lines.Next()
			if !ok {
				break
			}
			batch = append(batch, line)
			n++
			r.progress(n)
			if len(batch) == r.batchSize {
				select {
				case batches <- batch:
				case <-gctx.Done():
					return gctx.Err()
				}
				batch = make([]string, 0, r.batchSize)
			}
		}
		if err := lines.Err(); err != nil {
			return err
		}
		if len(batch) > 0 {
			select {
			case batches <- batch:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})
	for _, shard := range shards {
		shard := shard
		g.Go(func() error {
			for batch := range batches {
				for _, line := range batch {
					shard.Add(line)
				}
			}
			return nil
		})
	}
	err := g.Wait()

	for _, shard := range shards {
		acc.Merge(shard)
	}
	if err == nil {
		err = ctx.Err()
	}
	return n, err
}

func (r *Runner) progress(n int) {
	if r.progressEvery > 0 && n%r.progressEvery == 0 {
		r.logger.Info("processed passwords", "count", n)
	}
}
