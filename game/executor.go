package game

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"
)

// ErrCallbackFault wraps a panic recovered from solver logic.
var ErrCallbackFault = errors.New("solver callback fault")

// callbackResult classifies how a deadline-bounded callback ended. The
// three outcomes are disjoint: a callback either completed (possibly with
// an error of its own), faulted with a panic, or overran the deadline.
type callbackResult int

const (
	callbackCompleted callbackResult = iota
	callbackFaulted
	callbackTimedOut
)

// runWithDeadline invokes fn on its own goroutine and blocks until fn
// finishes or the deadline elapses. Panics are recovered and reported as
// callbackFaulted with the stack attached. On timeout the goroutine is
// abandoned, never awaited or resumed; callers must mark the run's phase
// over before acting on the result, after which the abandoned callback can
// no longer mutate run state through its view.
func runWithDeadline(deadline time.Duration, fn func() error) (callbackResult, error) {
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("%w: %v\n%s", ErrCallbackFault, r, debug.Stack())
			}
		}()
		done <- fn()
	}()

	timer := time.NewTimer(deadline)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil && errors.Is(err, ErrCallbackFault) {
			return callbackFaulted, err
		}
		return callbackCompleted, err
	case <-timer.C:
		return callbackTimedOut, nil
	}
}
