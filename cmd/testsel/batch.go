package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/testsel/bnb"
	"github.com/katalvlaran/testsel/instance"
	"github.com/katalvlaran/testsel/report"
)

func newBatchCmd(stdout, stderr io.Writer, o *options) *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "batch [--jobs N] <instance-file>...",
		Short: "Solve several instances concurrently, one JSON record per file in input order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, opts, err := o.setup(cmd, stderr)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("jobs") {
				cfg.Batch.Jobs = jobs
			}
			if cfg.Batch.Jobs < 1 {
				return fmt.Errorf("--jobs must be >= 1, got %d", cfg.Batch.Jobs)
			}

			return runBatch(cmd.Context(), stdout, args, opts, cfg.Batch.Jobs)
		},
	}
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "instances solved in parallel (default from config)")

	return cmd
}

// runBatch solves every file with at most jobs searches in flight. A file that
// fails to parse or solve yields an error record; the batch still completes
// and reports the failure count.
func runBatch(ctx context.Context, w io.Writer, paths []string, opts bnb.Options, jobs int) error {
	records := make([]report.Record, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			records[i] = solveRecord(gctx, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var failed int
	for _, r := range records {
		if r.Error != "" {
			failed++
		}
		if err := report.Write(w, r); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("batch: %d of %d instances failed", failed, len(paths))
	}

	return nil
}

func solveRecord(ctx context.Context, path string, opts bnb.Options) report.Record {
	start := time.Now()
	inst, err := instance.ParseFile(path)
	if err != nil {
		opts.Logger.WithError(err).Warn("skipping instance")
		return report.Failed(path, time.Since(start), err)
	}
	res, err := solve(ctx, path, inst, opts)
	if err != nil {
		opts.Logger.WithError(err).Error("search failed")
		return report.Failed(path, time.Since(start), err)
	}

	return report.New(path, inst, res)
}
