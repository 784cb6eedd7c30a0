package main

import (
	"log"
	"os"

	"github.com/beka-birhanu/cavern-quest/config"
	"github.com/beka-birhanu/cavern-quest/display"
	"github.com/beka-birhanu/cavern-quest/game"
	"github.com/beka-birhanu/cavern-quest/service"
	"github.com/beka-birhanu/cavern-quest/solver"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var (
		seed       int64
		count      int
		useDisplay bool
	)

	cmd := &cobra.Command{
		Use:   "cavern-quest",
		Short: "Simulate the two-phase cavern exploration game",
		Long: `cavern-quest digs a pair of weighted cavern graphs from a seed and drives
the reference solver through both phases: explore until the target is found,
then scram to the exit under a step budget while collecting gold. Scores and
their average across repeats are reported per run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.New(os.Stdout, "", log.LstdFlags)

			var sink game.Display
			if useDisplay {
				sink = display.NewConsole(logger)
			}

			runner, err := service.NewRunner(&service.Config{
				Solver:  solver.NewGreedy(),
				Display: sink,
				Logger:  logger,
			})
			if err != nil {
				return err
			}

			_, _, err = runner.RunAll(seed, count)
			return err
		},
	}

	cmd.Flags().Int64VarP(&seed, "seed", "s", 0, "seed for cavern generation, 0 picks one at random")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of games to run")
	cmd.Flags().BoolVar(&useDisplay, "display", config.Envs.DisplayOn, "render run progress to the console")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
