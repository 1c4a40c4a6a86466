package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/passlab/internal/config"
	"github.com/verte-zerg/passlab/internal/engine"
	"github.com/verte-zerg/passlab/internal/model"
	"github.com/verte-zerg/passlab/internal/store"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List saved runs or show one run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLimit, "limit", defaultHistoryMax, "number of runs to list (0 lists all)")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if len(args) == 1 {
		return showRun(ctx, cmd.OutOrStdout(), st, args[0])
	}
	runs, err := st.ListRuns(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		logErrf("No saved runs. Save one with: passlab <file> --save\n")
		return nil
	}
	return writeRuns(cmd.OutOrStdout(), runs)
}

func writeRuns(w io.Writer, runs []model.RunRecord) error {
	rows := make([][]string, len(runs))
	for i, run := range runs {
		rows[i] = []string{
			run.ID,
			run.EndedAt.Local().Format("2006-01-02 15:04:05"),
			run.Input,
			strconv.Itoa(run.Valid),
			strconv.Itoa(run.Filtered),
			fmt.Sprintf("%.2f", run.MeanLength),
			fmt.Sprintf("%.2f", run.MeanEntropy),
		}
	}
	t := historyTable("ID", "Finished", "Input", "Valid", "Filtered", "Avg Length", "Avg Entropy").Rows(rows...)
	_, err := fmt.Fprintln(w, t.String())
	return err
}

func showRun(ctx context.Context, w io.Writer, st *store.Store, id string) error {
	lengths, err := st.RunLengths(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load run lengths: %w", err)
	}
	patterns, err := st.RunPatterns(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load run patterns: %w", err)
	}
	if len(lengths) == 0 && len(patterns) == 0 {
		return fmt.Errorf("run %s not found", id)
	}

	valid := 0
	for _, lc := range lengths {
		valid += lc.Count
	}
	lt := historyTable("Length", "Count", "Percentage")
	for _, lc := range lengths {
		lt.Row(strconv.Itoa(lc.Length), strconv.Itoa(lc.Count), fmt.Sprintf("%.2f%%", engine.Percent(lc.Count, valid)))
	}
	pt := historyTable("Pattern", "Count", "Percentage")
	for _, pc := range patterns {
		pt.Row(pc.Pattern, strconv.Itoa(pc.Count), fmt.Sprintf("%.2f%%", engine.Percent(pc.Count, valid)))
	}
	_, err = fmt.Fprintf(w, "Run %s\n\nLength Distribution:\n%s\n\nPattern Signatures:\n%s\n", id, lt.String(), pt.String())
	return err
}

func historyTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}
