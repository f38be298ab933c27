package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/testsel/bnb"
	"github.com/katalvlaran/testsel/instance"
	"github.com/katalvlaran/testsel/report"
)

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:   "testsel [flags] <instance-file>",
		Short: "Select a minimum-cost set of tests that tells every pair of diseases apart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			_, opts, err := o.setup(cmd, stderr)
			if err != nil {
				return err
			}

			return runSolve(cmd.Context(), stdout, args[0], opts, o.quiet)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	o.addFlags(cmd)

	cmd.AddCommand(newBatchCmd(stdout, stderr, o))
	cmd.AddCommand(newGenCmd(stdout))

	return cmd
}

// runSolve parses one instance, prints its summary unless quiet, solves it,
// lists the selected tests unless quiet and prints the JSON record.
func runSolve(ctx context.Context, w io.Writer, path string, opts bnb.Options, quiet bool) error {
	inst, err := instance.ParseFile(path)
	if err != nil {
		return err
	}
	if !quiet {
		if _, err = fmt.Fprintln(w, inst.String()); err != nil {
			return err
		}
	}
	res, err := solve(ctx, path, inst, opts)
	if err != nil {
		return err
	}
	if !quiet && res.Found() {
		if _, err = fmt.Fprint(w, inst.FormatSelection(res.Assignment)); err != nil {
			return err
		}
	}

	return report.Write(w, report.New(path, inst, res))
}

// solve runs the search on inst with a logger scoped to path.
func solve(ctx context.Context, path string, inst *instance.Instance, opts bnb.Options) (bnb.Result, error) {
	log := opts.Logger.WithFields(logrus.Fields{
		"instance": path,
		"tests":    inst.NumTests(),
		"diseases": inst.NumDiseases(),
	})
	opts.Logger = log
	log.Debug("solving")

	res, err := bnb.Solve(ctx, inst, opts)
	if err != nil {
		return res, fmt.Errorf("solve %s: %w", path, err)
	}
	if res.Found() && !instance.Validate(res.Assignment, inst.Coverage()) {
		log.WithField("assignment", res.Assignment).Error("search returned an invalid selection")
	}
	log.WithFields(logrus.Fields{
		"status":  res.Status.String(),
		"nodes":   res.Stats.Nodes,
		"elapsed": res.Elapsed.Round(time.Millisecond).String(),
	}).Debug("solved")

	return res, nil
}
