package game_test

import (
	"errors"
	"io"
	"log"
	"testing"

	"github.com/beka-birhanu/cavern-quest/cavern"
	"github.com/beka-birhanu/cavern-quest/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSolver runs arbitrary per-phase callbacks so tests can drive the
// state machine move by move.
type scriptedSolver struct {
	explore func(game.FindView) error
	scram   func(game.ScramView) error
}

func (s *scriptedSolver) ExploreForTarget(v game.FindView) error {
	if s.explore == nil {
		return nil
	}
	return s.explore(v)
}

func (s *scriptedSolver) ScramToExit(v game.ScramView) error {
	if s.scram == nil {
		return nil
	}
	return s.scram(v)
}

// walkToTarget greedily follows the heuristic; enough for the fixtures.
func walkToTarget(v game.FindView) error {
	for v.DistanceToTarget() != 0 {
		neighbors := v.Neighbors()
		best := neighbors[0]
		for _, ns := range neighbors[1:] {
			if ns.Distance < best.Distance {
				best = ns
			}
		}
		if err := v.MoveTo(best.ID); err != nil {
			return err
		}
	}
	return nil
}

// findFixture is a two-tile hunt: one move from entrance to target.
func findFixture(t *testing.T) *cavern.Cavern {
	t.Helper()
	c, err := cavern.Deserialize([]string{
		"1 2",
		"entrance 0 0",
		"target 0 1",
		"0 0",
		"edge 0 0 0 1 1",
	})
	require.NoError(t, err)
	return c
}

// scramFixture starts at (0,1) with gold piles on both sides and the exit
// at (0,2). Budget: 2 minimum + 7 slack = 9.
func scramFixture(t *testing.T) *cavern.Cavern {
	t.Helper()
	c, err := cavern.Deserialize([]string{
		"1 3",
		"entrance 0 1",
		"target 0 2",
		"5 0 7",
		"edge 0 0 0 1 1",
		"edge 0 1 0 2 2",
	})
	require.NoError(t, err)
	return c
}

// tightScramFixture has a single weight-15 corridor and a budget of 19, so
// one crossing leaves too few steps to cross back.
func tightScramFixture(t *testing.T) *cavern.Cavern {
	t.Helper()
	c, err := cavern.Deserialize([]string{
		"1 2",
		"entrance 0 1",
		"target 0 0",
		"0 0",
		"edge 0 0 0 1 15",
	})
	require.NoError(t, err)
	return c
}

func nodeAt(t *testing.T, v game.ScramView, row, col int) *cavern.Node {
	t.Helper()
	for _, n := range v.AllNodes() {
		if n.Tile().Row() == row && n.Tile().Col() == col {
			return n
		}
	}
	t.Fatalf("no node at (%d,%d)", row, col)
	return nil
}

func newRun(t *testing.T, find, scram *cavern.Cavern, s game.Solver) *game.Run {
	t.Helper()
	run, err := game.NewRunFromCaverns(find, scram, game.Config{
		Solver: s,
		Logger: log.New(io.Discard, "", 0),
	})
	require.NoError(t, err)
	return run
}

func TestRunSuccess(t *testing.T) {
	solver := &scriptedSolver{
		explore: walkToTarget,
		scram: func(v game.ScramView) error {
			for _, step := range [][2]int{{0, 0}, {0, 1}, {0, 2}} {
				if err := v.MoveTo(nodeAt(t, v, step[0], step[1])); err != nil {
					return err
				}
			}
			return nil
		},
	}

	outcome := newRun(t, findFixture(t), scramFixture(t), solver).Play()

	assert.True(t, outcome.FindSucceeded)
	assert.True(t, outcome.ScramSucceeded)
	assert.False(t, outcome.FindErrored)
	assert.False(t, outcome.ScramErrored)
	assert.False(t, outcome.FindTimedOut)
	assert.False(t, outcome.ScramTimedOut)
	assert.False(t, outcome.ScramOutOfSteps)
	assert.Equal(t, 1, outcome.StepsTaken)
	assert.Equal(t, 12, outcome.GoldCollected)
	assert.InDelta(t, game.MaxBonus, outcome.BonusFactor, 1e-9)
	assert.Equal(t, 15, outcome.Score)
}

func TestFindWrongLocation(t *testing.T) {
	scramCalled := false
	solver := &scriptedSolver{
		explore: func(game.FindView) error { return nil },
		scram: func(game.ScramView) error {
			scramCalled = true
			return nil
		},
	}

	outcome := newRun(t, findFixture(t), scramFixture(t), solver).Play()

	assert.False(t, outcome.FindSucceeded)
	assert.False(t, outcome.FindErrored)
	assert.False(t, outcome.FindTimedOut)
	assert.False(t, scramCalled, "scram must not run after a failed hunt")
	assert.Zero(t, outcome.Score)
}

func TestFindSolverError(t *testing.T) {
	solver := &scriptedSolver{
		explore: func(game.FindView) error { return errors.New("boom") },
	}

	outcome := newRun(t, findFixture(t), scramFixture(t), solver).Play()

	assert.True(t, outcome.FindErrored)
	assert.False(t, outcome.FindSucceeded)
	assert.False(t, outcome.FindTimedOut)
}

func TestFindSolverPanic(t *testing.T) {
	solver := &scriptedSolver{
		explore: func(game.FindView) error { panic("lost in the dark") },
	}

	outcome := newRun(t, findFixture(t), scramFixture(t), solver).Play()

	assert.True(t, outcome.FindErrored)
	assert.False(t, outcome.FindTimedOut)
	assert.False(t, outcome.FindSucceeded)
}

func TestFindMoveToNotAdjacent(t *testing.T) {
	solver := &scriptedSolver{
		explore: func(v game.FindView) error {
			err := v.MoveTo(12345)
			assert.ErrorIs(t, err, game.ErrNotAdjacent)
			return err
		},
	}

	outcome := newRun(t, findFixture(t), scramFixture(t), solver).Play()

	assert.True(t, outcome.FindErrored)
	assert.False(t, outcome.FindSucceeded)
}

func TestScramOutOfSteps(t *testing.T) {
	solver := &scriptedSolver{
		explore: walkToTarget,
		scram: func(v game.ScramView) error {
			exit := v.Exit()
			if err := v.MoveTo(exit); err != nil {
				return err
			}

			stepsBefore := v.StepsLeft()
			positionBefore := v.CurrentNode()
			back := nodeAt(t, v, 0, 1)

			err := v.MoveTo(back)
			assert.ErrorIs(t, err, game.ErrOutOfSteps)
			assert.Equal(t, stepsBefore, v.StepsLeft(), "rejected move must not spend steps")
			assert.Same(t, positionBefore, v.CurrentNode(), "rejected move must not change position")
			assert.GreaterOrEqual(t, v.StepsLeft(), 0)
			return err
		},
	}

	outcome := newRun(t, findFixture(t), tightScramFixture(t), solver).Play()

	assert.True(t, outcome.FindSucceeded)
	assert.True(t, outcome.ScramOutOfSteps)
	assert.False(t, outcome.ScramErrored)
	assert.False(t, outcome.ScramTimedOut)
	assert.False(t, outcome.ScramSucceeded)
}

func TestScramGoldCollectedOncePerTile(t *testing.T) {
	solver := &scriptedSolver{
		explore: walkToTarget,
		scram: func(v game.ScramView) error {
			// Revisit the 5-gold tile before leaving; it must pay once.
			for _, step := range [][2]int{{0, 0}, {0, 1}, {0, 0}, {0, 1}, {0, 2}} {
				if err := v.MoveTo(nodeAt(t, v, step[0], step[1])); err != nil {
					return err
				}
				assert.GreaterOrEqual(t, v.StepsLeft(), 0)
			}
			return nil
		},
	}

	outcome := newRun(t, findFixture(t), scramFixture(t), solver).Play()

	assert.True(t, outcome.ScramSucceeded)
	assert.Equal(t, 12, outcome.GoldCollected, "revisits contribute nothing")
}

func TestScramCollectsGoldUnderStart(t *testing.T) {
	scram, err := cavern.Deserialize([]string{
		"1 3",
		"entrance 0 1",
		"target 0 2",
		"5 3 7",
		"edge 0 0 0 1 1",
		"edge 0 1 0 2 2",
	})
	require.NoError(t, err)

	solver := &scriptedSolver{
		explore: walkToTarget,
		scram: func(v game.ScramView) error {
			return v.MoveTo(v.Exit())
		},
	}

	outcome := newRun(t, findFixture(t), scram, solver).Play()

	assert.True(t, outcome.ScramSucceeded)
	assert.Equal(t, 10, outcome.GoldCollected, "start tile gold plus exit tile gold")
}

func TestScramWrongLocation(t *testing.T) {
	solver := &scriptedSolver{
		explore: walkToTarget,
		scram:   func(game.ScramView) error { return nil },
	}

	outcome := newRun(t, findFixture(t), scramFixture(t), solver).Play()

	assert.True(t, outcome.FindSucceeded)
	assert.False(t, outcome.ScramSucceeded)
	assert.False(t, outcome.ScramErrored)
	assert.False(t, outcome.ScramTimedOut)
	assert.False(t, outcome.ScramOutOfSteps)
}

func TestStaleViewsGoInertAfterPhase(t *testing.T) {
	var staleFind game.FindView
	var staleScram game.ScramView
	var scramStart *cavern.Node

	solver := &scriptedSolver{
		explore: func(v game.FindView) error {
			staleFind = v
			return walkToTarget(v)
		},
		scram: func(v game.ScramView) error {
			staleScram = v
			scramStart = v.CurrentNode()
			return v.MoveTo(v.Exit())
		},
	}

	outcome := newRun(t, findFixture(t), scramFixture(t), solver).Play()
	require.True(t, outcome.ScramSucceeded)

	assert.ErrorIs(t, staleFind.MoveTo(0), game.ErrPhaseOver)
	assert.ErrorIs(t, staleScram.MoveTo(scramStart), game.ErrPhaseOver)
}

func TestNewRunFromCavernsValidation(t *testing.T) {
	t.Run("nil solver", func(t *testing.T) {
		_, err := game.NewRunFromCaverns(findFixture(t), scramFixture(t), game.Config{})
		assert.ErrorIs(t, err, game.ErrNoSolver)
	})

	t.Run("scram cavern missing the find target tile", func(t *testing.T) {
		scram, err := cavern.Deserialize([]string{
			"1 2",
			"entrance 0 0",
			"target 0 0",
			"0 *",
		})
		require.NoError(t, err)

		_, err = game.NewRunFromCaverns(findFixture(t), scram, game.Config{Solver: &scriptedSolver{}})
		assert.ErrorIs(t, err, game.ErrCavernMismatch)
	})

	t.Run("disconnected find cavern", func(t *testing.T) {
		find, err := cavern.Deserialize([]string{
			"1 3",
			"entrance 0 0",
			"target 0 1",
			"0 0 *",
		})
		require.NoError(t, err)

		_, err = game.NewRunFromCaverns(find, scramFixture(t), game.Config{Solver: &scriptedSolver{}})
		assert.ErrorIs(t, err, cavern.ErrUnreachable)
	})
}

func TestNewRunIsReproducible(t *testing.T) {
	solver := &scriptedSolver{explore: walkToTarget}

	first, err := game.NewRun(99, game.Config{Solver: solver, Logger: log.New(io.Discard, "", 0)})
	require.NoError(t, err)
	second, err := game.NewRun(99, game.Config{Solver: solver, Logger: log.New(io.Discard, "", 0)})
	require.NoError(t, err)

	assert.Equal(t, first.FindCavern().Serialize(), second.FindCavern().Serialize())
	assert.Equal(t, first.ScramCavern().Serialize(), second.ScramCavern().Serialize())
}
