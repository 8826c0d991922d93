package cli

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newBenchCmd(a *app) *cobra.Command {
	var (
		input      string
		operation  string
		format     string
		grainsizes []int
		repeat     int
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Reduce the numbers of a file concurrently with several grain sizes",
		Long: `bench runs the same reduction repeatedly for each grain size, all
concurrently on the shared worker pool, and fails if any two runs with the
same grain size disagree. For each grain size, the fastest run is reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reduce, err := lookupOp(operation)
			if err != nil {
				return err
			}
			if len(grainsizes) == 0 {
				return fmt.Errorf("no grain sizes")
			}
			if repeat < 1 {
				return fmt.Errorf("repeat must be positive: %v", repeat)
			}
			data, err := readInput(input, cmd.InOrStdin())
			if err != nil {
				return err
			}

			effective := make([]int, len(grainsizes))
			for i, grainsize := range grainsizes {
				if effective[i], err = a.engine.Grainsize(len(data), grainsize); err != nil {
					return err
				}
			}

			runs := make([][]Report, len(effective))
			g, ctx := errgroup.WithContext(cmd.Context())
			for i, eff := range effective {
				eff := eff
				runs[i] = make([]Report, repeat)
				for j := range runs[i] {
					report := &runs[i][j]
					g.Go(func() error {
						start := time.Now()
						result, slices, err := reduce(ctx, a.engine, data, eff)
						if err != nil {
							return fmt.Errorf("grain size %v: %w", eff, err)
						}
						*report = Report{
							Operation: operation,
							N:         len(data),
							Grainsize: eff,
							Workers:   a.engine.Workers(),
							Slices:    slices,
							Result:    result,
							Duration:  time.Since(start),
						}
						return nil
					})
				}
			}
			if err := g.Wait(); err != nil {
				return err
			}

			reports := make([]Report, len(runs))
			for i, rs := range runs {
				best := rs[0]
				for _, r := range rs[1:] {
					if math.Float64bits(r.Result) != math.Float64bits(best.Result) {
						return fmt.Errorf("grain size %v: nondeterministic result %v != %v", r.Grainsize, r.Result, best.Result)
					}
					if r.Duration < best.Duration {
						best = r
					}
				}
				reports[i] = best
				a.log.WithFields(logrus.Fields{
					"grainsize": best.Grainsize,
					"duration":  best.Duration,
				}).Info("benchmark finished")
			}
			return writeReports(cmd.OutOrStdout(), format, reports)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&input, "input", "i", "-", "file with whitespace-separated numbers (- for stdin)")
	flags.StringVarP(&operation, "op", "o", "sum", "operation (sum, max, count-positive)")
	flags.StringVarP(&format, "format", "f", "text", "output format (text, json, yaml)")
	flags.IntSliceVarP(&grainsizes, "grainsizes", "g", []int{0, 1, 16, 256}, "grain sizes to compare (0 chooses automatically)")
	flags.IntVarP(&repeat, "repeat", "r", 3, "runs per grain size")
	return cmd
}
