// Package cli implements the reducesum command, which drives reductions over
// numbers read from a file, and owns the lifecycle of the worker pool.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/exascience/reducesum/config"
	"github.com/exascience/reducesum/logger"
	"github.com/exascience/reducesum/parallel"
	"github.com/exascience/reducesum/pool"
)

// app holds the state shared by all subcommands of one invocation.
type app struct {
	cfgFile  string
	logLevel string
	workers  int

	cfg     *config.Config
	log     *logrus.Logger
	logFile *os.File
	pool    *pool.Pool
	engine  *parallel.Engine
}

// NewRootCommand creates the reducesum command. Reports are written to out,
// log entries to errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "reducesum",
		Short: "Parallel divide-and-conquer reductions over numeric data",
		Long: `reducesum partitions a sequence of numbers into contiguous slices,
evaluates the slices on a fixed-size worker pool, and combines the partial
results left before right, so that results do not depend on scheduling.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, errOut)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.teardown()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (YAML or JSON)")
	flags.StringVarP(&a.logLevel, "log-level", "v", "", "log level (debug, info, warn, error)")
	flags.IntVarP(&a.workers, "workers", "w", 0, "number of pool workers (default from config)")

	root.AddCommand(newRunCmd(a))
	root.AddCommand(newBenchCmd(a))
	root.AddCommand(newPartitionCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command, errOut io.Writer) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	out := errOut
	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		a.logFile = file
		out = io.MultiWriter(errOut, file)
	}
	a.log = logger.New(cfg.LogLevel, out, !color.NoColor)

	a.pool = pool.New(cfg.PoolWorkers(), a.log)
	a.engine = parallel.NewEngine(
		parallel.WithPool(a.pool),
		parallel.WithGrainStrategy(grainStrategy(cfg)),
		parallel.WithLogger(a.log),
	)
	a.log.WithField("workers", cfg.Workers).Debug("configuration loaded")
	return nil
}

func (a *app) teardown() {
	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
	}
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}

// Execute runs the reducesum command with the process arguments.
func Execute() error {
	return NewRootCommand(os.Stdout, os.Stderr).Execute()
}
