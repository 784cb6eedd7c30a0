/*
Package service drives repeated game runs and aggregates their scores. It
is the outer invocation loop: every run resolves to a score, possibly
zero, regardless of how the solver fared.
*/
package service

import (
	"errors"
	"log"
	"math/rand"

	"github.com/beka-birhanu/cavern-quest/config"
	"github.com/beka-birhanu/cavern-quest/game"
)

// ErrNoSolver reports a runner configured without solver logic.
var ErrNoSolver = errors.New("runner requires a solver")

// Runner plays a series of games with one solver and reports scores.
type Runner struct {
	solver  game.Solver
	display game.Display
	logger  *log.Logger
}

// Config holds the collaborators for creating a new Runner instance.
type Config struct {
	Solver  game.Solver
	Display game.Display // optional; nil means no display
	Logger  *log.Logger
}

// NewRunner creates a Runner with the given configuration.
func NewRunner(c *Config) (*Runner, error) {
	if c.Solver == nil {
		return nil, ErrNoSolver
	}
	logger := c.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		solver:  c.Solver,
		display: c.Display,
		logger:  logger,
	}, nil
}

// RunAll plays count games and returns the per-run scores and their
// average. Seed zero draws a fresh random seed for every game; a non-zero
// seed plays the first game with it and derives each following seed from
// the previous one, so a fixed seed and count reproduce the same series.
func (r *Runner) RunAll(seed int64, count int) ([]int, int, error) {
	if count < 1 {
		count = 1
	}

	scores := make([]int, 0, count)
	total := 0
	for i := 0; i < count; i++ {
		runSeed := seed
		if runSeed == 0 {
			runSeed = rand.Int63()
		}

		outcome, err := r.runOne(runSeed)
		if err != nil {
			return nil, 0, err
		}
		scores = append(scores, outcome.Score)
		total += outcome.Score

		if seed != 0 {
			seed = rand.New(rand.NewSource(seed)).Int63()
		}
	}

	average := total / count
	r.logger.Printf("%s[INFO]%s average score : %d", config.LogInfoColor, config.LogColorReset, average)
	return scores, average, nil
}

func (r *Runner) runOne(seed int64) (game.Outcome, error) {
	r.logger.Printf("%s[INFO]%s seed : %d", config.LogInfoColor, config.LogColorReset, seed)

	run, err := game.NewRun(seed, game.Config{
		Solver:  r.solver,
		Display: r.display,
		Logger:  r.logger,
	})
	if err != nil {
		return game.Outcome{}, err
	}

	outcome := run.Play()
	r.logger.Printf("%s[INFO]%s score : %d", config.LogInfoColor, config.LogColorReset, outcome.Score)
	return outcome, nil
}
