package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/passlab/internal/config"
	"github.com/verte-zerg/passlab/internal/engine"
	"github.com/verte-zerg/passlab/internal/ingest"
	plog "github.com/verte-zerg/passlab/internal/log"
	"github.com/verte-zerg/passlab/internal/model"
	"github.com/verte-zerg/passlab/internal/report"
	"github.com/verte-zerg/passlab/internal/reportui"
	"github.com/verte-zerg/passlab/internal/store"
	"github.com/verte-zerg/passlab/internal/wordlist"
)

const (
	stdinName     = "-"
	storedPattern = 100
)

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	configPath := analyzeConfigPath
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err := buildConfig(cmd, args[0], fileCfg.Analyze)
	if err != nil {
		return err
	}
	logger := plog.New(cmd.ErrOrStderr(), cfg.Verbose)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run, err := analyze(ctx, cfg, cmd.InOrStdin(), logger)
	if err != nil {
		return err
	}

	rep := report.Build(run.snapshot, report.Meta{
		Input:       run.input,
		GeneratedAt: run.endedAt,
		Elapsed:     run.result.Elapsed,
		Options:     cfg.Options,
	}, reportLimits(cfg))

	if cfg.Interactive {
		if err := reportui.Run(rep); err != nil {
			return fmt.Errorf("failed to run report UI: %w", err)
		}
	} else if err := report.NewConsole(cmd.OutOrStdout()).Render(rep, cfg.Sections); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.OutputDir != "" {
		bundle := report.Bundle{Snapshot: run.snapshot, Report: rep, RunID: run.id}
		paths, err := report.Export(cfg.OutputDir, bundle, cfg.Formats, run.endedAt)
		if err != nil {
			return fmt.Errorf("failed to export results: %w", err)
		}
		logger.Debug("exported results", "dir", cfg.OutputDir, "files", len(paths))
		logErrf("Results exported to %s\n", cfg.OutputDir)
	}

	if cfg.Save {
		if err := saveRun(ctx, config.DefaultDBPath(), run, cfg.Options); err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		logErrf("Saved run %s\n", run.id)
	}
	return nil
}

type analysisRun struct {
	id        string
	input     string
	startedAt time.Time
	endedAt   time.Time
	result    ingest.Result
	snapshot  *engine.Snapshot
}

// analyze streams the input named by cfg.Input through a fresh accumulator.
// An interrupted run keeps what was read so far; a read failure is an error.
func analyze(ctx context.Context, cfg model.Config, stdin io.Reader, logger *slog.Logger) (analysisRun, error) {
	run := analysisRun{id: uuid.NewString(), input: cfg.Input, startedAt: time.Now()}

	var options []engine.Option
	options = append(options, engine.WithLogger(logger))
	if cfg.Options.Enhanced && cfg.Dictionary != "" {
		dict, err := wordlist.LoadDictionary(cfg.Dictionary, cfg.Encoding, wordlist.Matchable, wordlist.SingleWord)
		if err != nil {
			logger.Warn("continuing without dictionary", "path", cfg.Dictionary, "error", err)
		} else {
			logger.Debug("loaded dictionary", "path", cfg.Dictionary, "words", dict.Len())
			options = append(options, engine.WithDictionary(dict))
		}
	}
	acc := engine.New(cfg.Options, options...)

	src, closeInput, err := openInput(cfg.Input, stdin)
	if err != nil {
		return run, err
	}
	defer closeInput()
	if cfg.Input == stdinName {
		run.input = "<stdin>"
	}

	decoded, err := ingest.NewDecoder(src, cfg.Encoding)
	if err != nil {
		return run, err
	}
	runner := ingest.NewRunner(
		ingest.WithShards(cfg.Shards),
		ingest.WithProgressEvery(ingest.DefaultProgressEvery),
		ingest.WithLogger(logger),
	)
	run.result, err = runner.Run(ctx, decoded, acc)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Warn("analysis interrupted, reporting partial results", "lines", run.result.Lines)
	case err != nil:
		return run, err
	}
	run.endedAt = time.Now()
	run.snapshot = acc.Snapshot()
	return run, nil
}

func openInput(name string, stdin io.Reader) (io.Reader, func(), error) {
	if name == stdinName {
		return stdin, func() {}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close input: %v\n", cerr)
		}
	}, nil
}

func saveRun(ctx context.Context, dbPath string, run analysisRun, opts model.Options) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	record, lengths, patterns := runRecord(run, opts)
	return st.InsertRun(ctx, record, lengths, patterns)
}

func runRecord(run analysisRun, opts model.Options) (model.RunRecord, []model.LengthCount, []model.PatternCount) {
	snap := run.snapshot
	minEntropy, maxEntropy := snap.EntropyRange()
	record := model.RunRecord{
		ID:          run.id,
		StartedAt:   run.startedAt,
		EndedAt:     run.endedAt,
		Input:       run.input,
		Options:     opts,
		Total:       snap.Total,
		Valid:       snap.Valid,
		Filtered:    snap.Filtered,
		MeanLength:  snap.MeanLength(),
		MeanEntropy: snap.MeanEntropy(),
		MinEntropy:  minEntropy,
		MaxEntropy:  maxEntropy,
		DurationMs:  run.endedAt.Sub(run.startedAt).Milliseconds(),
	}
	lengths := make([]model.LengthCount, 0, snap.Lengths.Len())
	for _, length := range snap.Lengths.Keys() {
		lengths = append(lengths, model.LengthCount{Length: length, Count: snap.Lengths.Get(length)})
	}
	top := snap.Patterns.Top(storedPattern)
	patterns := make([]model.PatternCount, len(top))
	for i, e := range top {
		patterns[i] = model.PatternCount{Pattern: e.Key, Count: e.Count}
	}
	return record, lengths, patterns
}
