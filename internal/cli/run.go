package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		input     string
		operation string
		format    string
		grainsize int
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reduce the numbers of a file once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reduce, err := lookupOp(operation)
			if err != nil {
				return err
			}
			data, err := readInput(input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("grainsize") {
				grainsize = a.cfg.Grainsize
			}
			g, err := a.engine.Grainsize(len(data), grainsize)
			if err != nil {
				return err
			}

			start := time.Now()
			result, slices, err := reduce(cmd.Context(), a.engine, data, g)
			if err != nil {
				return err
			}
			return writeReports(cmd.OutOrStdout(), format, []Report{{
				Operation: operation,
				N:         len(data),
				Grainsize: g,
				Workers:   a.engine.Workers(),
				Slices:    slices,
				Result:    result,
				Duration:  time.Since(start),
			}})
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&input, "input", "i", "-", "file with whitespace-separated numbers (- for stdin)")
	flags.StringVarP(&operation, "op", "o", "sum", "operation (sum, max, count-positive)")
	flags.StringVarP(&format, "format", "f", "text", "output format (text, json, yaml)")
	flags.IntVarP(&grainsize, "grainsize", "g", 0, "grain size (0 chooses automatically)")
	return cmd
}
