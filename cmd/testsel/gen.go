package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/testsel/instance"
)

func newGenCmd(stdout io.Writer) *cobra.Command {
	var (
		tests, diseases int
		seed            int64
		output          string
	)

	cmd := &cobra.Command{
		Use:   "gen --tests N --diseases M [--seed S] [-o file]",
		Short: "Write a reproducible random instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			inst, err := instance.Generate(tests, diseases, seed)
			if err != nil {
				return err
			}
			if output == "" {
				return instance.Write(stdout, inst)
			}

			return instance.WriteFile(output, inst)
		},
	}
	cmd.Flags().IntVar(&tests, "tests", 0, "number of tests (rows)")
	cmd.Flags().IntVar(&diseases, "diseases", 0, "number of diseases (columns)")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed (0 selects a fixed default)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("tests")
	_ = cmd.MarkFlagRequired("diseases")

	return cmd
}
