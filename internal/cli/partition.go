package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/exascience/reducesum"
)

func newPartitionCmd(a *app) *cobra.Command {
	var n, grainsize int
	cmd := &cobra.Command{
		Use:   "partition",
		Short: "Print the slices of a reduction over n elements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := a.engine.Grainsize(n, grainsize)
			if err != nil {
				return err
			}
			slices, err := reducesum.Partition(n, g)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "grainsize %v, %v slices\n", g, len(slices))
			for _, s := range slices {
				fmt.Fprintf(out, "%v:%v\n", s.Start, s.End)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&n, "n", 0, "number of elements")
	cmd.Flags().IntVarP(&grainsize, "grainsize", "g", 0, "grain size (0 chooses automatically)")
	return cmd
}
