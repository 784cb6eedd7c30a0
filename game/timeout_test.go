package game_test

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/beka-birhanu/cavern-quest/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRunWithTimeouts(t *testing.T, s game.Solver, find, scram time.Duration) *game.Run {
	t.Helper()
	run, err := game.NewRunFromCaverns(findFixture(t), scramFixture(t), game.Config{
		Solver:       s,
		Logger:       log.New(io.Discard, "", 0),
		FindTimeout:  find,
		ScramTimeout: scram,
	})
	require.NoError(t, err)
	return run
}

func TestFindTimeout(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	solver := &scriptedSolver{
		explore: func(game.FindView) error {
			<-block
			return nil
		},
	}

	outcome := newRunWithTimeouts(t, solver, 50*time.Millisecond, time.Second).Play()

	assert.True(t, outcome.FindTimedOut)
	assert.False(t, outcome.FindErrored, "a timeout is not an error")
	assert.False(t, outcome.FindSucceeded)
	assert.Zero(t, outcome.Score)
}

func TestScramTimeout(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	solver := &scriptedSolver{
		explore: walkToTarget,
		scram: func(game.ScramView) error {
			<-block
			return nil
		},
	}

	outcome := newRunWithTimeouts(t, solver, time.Second, 50*time.Millisecond).Play()

	assert.True(t, outcome.FindSucceeded)
	assert.True(t, outcome.ScramTimedOut)
	assert.False(t, outcome.ScramErrored, "a timeout is not an error")
	assert.False(t, outcome.ScramSucceeded)
}

func TestAbandonedCallbackCannotMoveAfterTimeout(t *testing.T) {
	moveErr := make(chan error, 1)
	release := make(chan struct{})

	solver := &scriptedSolver{
		explore: func(v game.FindView) error {
			// Outlive the deadline, then try to keep playing.
			<-release
			moveErr <- v.MoveTo(1)
			return nil
		},
	}

	outcome := newRunWithTimeouts(t, solver, 50*time.Millisecond, time.Second).Play()
	require.True(t, outcome.FindTimedOut)

	close(release)
	assert.ErrorIs(t, <-moveErr, game.ErrPhaseOver)
}
