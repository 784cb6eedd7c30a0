/*
Package game owns the two-phase exploration run: the phase state machine,
the capability-restricted views handed to solver logic, the deadline-bounded
executor those callbacks run under, and the scoring model.

A run plays the FIND phase first, where the solver searches for the target
with only local heuristic information, and enters the SCRAM phase only if
FIND ended on the target. During SCRAM the solver sees the whole graph but
spends a weighted step budget on every move and must return standing on the
exit. Every failure mode, including solver panics and deadline overruns,
resolves locally into outcome flags; nothing propagates past the run.
*/
package game

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/beka-birhanu/cavern-quest/cavern"
	"github.com/beka-birhanu/cavern-quest/config"
	"github.com/google/uuid"
)

// Phase identifies which of the two game phases a run is in. Transitions
// are one-directional: FIND then SCRAM, never back.
type Phase int

const (
	PhaseFind Phase = iota
	PhaseScram
)

func (p Phase) String() string {
	if p == PhaseFind {
		return "FIND"
	}
	return "SCRAM"
}

// Run errors surfaced to solver logic and to run constructors.
var (
	// ErrNotAdjacent reports a move to a node that shares no edge with
	// the current position. A solver causing it has a logic bug.
	ErrNotAdjacent = errors.New("destination is not adjacent to the current position")

	// ErrOutOfSteps reports a scram move whose edge weight exceeds the
	// remaining budget. The move is rejected with state unchanged; it is
	// an expected in-play condition, not a fault.
	ErrOutOfSteps = errors.New("not enough steps remaining for that move")

	// ErrPhaseOver reports a view call after its phase has ended, e.g.
	// from a callback that was abandoned on timeout.
	ErrPhaseOver = errors.New("phase is over")

	// ErrNoSolver reports a run configured without solver logic.
	ErrNoSolver = errors.New("run requires a solver")

	// ErrCavernMismatch reports a scram cavern with no open tile at the
	// find cavern's target coordinates, so the scram phase has nowhere
	// to start.
	ErrCavernMismatch = errors.New("scram cavern has no open tile at the find target's coordinates")
)

// Config carries the collaborators and tunables of a run. Display, Logger,
// and the timeouts fall back to defaults when unset.
type Config struct {
	Solver       Solver
	Display      Display
	Logger       *log.Logger
	FindTimeout  time.Duration
	ScramTimeout time.Duration
}

// Outcome is the resolved result of one run. Every failure mode collapses
// into these flags; the run boundary never raises.
type Outcome struct {
	ID   uuid.UUID
	Seed int64

	FindSucceeded bool
	FindErrored   bool
	FindTimedOut  bool

	ScramSucceeded  bool
	ScramErrored    bool
	ScramTimedOut   bool
	ScramOutOfSteps bool

	StepsTaken    int
	GoldCollected int
	BonusFactor   float64
	Score         int
}

// Run is the mutable state of one game: two caverns, the current position,
// step counters, collected gold, and the per-phase outcome flags. The
// engine owns the run; solver logic touches it only through the phase
// views, which serialize access and go inert once their phase ends.
type Run struct {
	id          uuid.UUID
	seed        int64
	findCavern  *cavern.Cavern
	scramCavern *cavern.Cavern
	scramStart  *cavern.Node

	solver       Solver
	display      Display
	logger       *log.Logger
	findTimeout  time.Duration
	scramTimeout time.Duration

	minStepsToFind int
	minScramSteps  int

	mu             sync.Mutex
	phase          Phase
	phaseOver      bool
	position       *cavern.Node
	stepsTaken     int
	stepsRemaining int
	goldCollected  int

	outcome Outcome
}

// NewRun digs the two caverns for one game from seed and prepares the FIND
// phase. Dimensions are drawn uniformly from the legal range, and the scram
// cavern is rooted at the find target's coordinates, so a single seed
// reproduces the entire game.
func NewRun(seed int64, cfg Config) (*Run, error) {
	rng := rand.New(rand.NewSource(seed))
	rows := cavern.MinRows + rng.Intn(cavern.MaxRows-cavern.MinRows+1)
	cols := cavern.MinCols + rng.Intn(cavern.MaxCols-cavern.MinCols+1)

	findCavern, err := cavern.Dig(rows, cols, rng)
	if err != nil {
		return nil, err
	}
	orb := findCavern.Target().Tile()
	scramCavern, err := cavern.DigFrom(rows, cols, orb.Row(), orb.Col(), rng)
	if err != nil {
		return nil, err
	}

	r, err := NewRunFromCaverns(findCavern, scramCavern, cfg)
	if err != nil {
		return nil, err
	}
	r.seed = seed
	r.outcome.Seed = seed
	return r, nil
}

// NewRunFromCaverns builds a run over pre-built caverns, e.g. layouts
// parsed by cavern.Deserialize. The scram cavern must have an open tile at
// the find target's coordinates, and both caverns must reach their targets
// from where their phase starts.
func NewRunFromCaverns(find, scram *cavern.Cavern, cfg Config) (*Run, error) {
	if cfg.Solver == nil {
		return nil, ErrNoSolver
	}

	orb := find.Target().Tile()
	scramStart, ok := scram.NodeAt(orb.Row(), orb.Col())
	if !ok {
		return nil, ErrCavernMismatch
	}

	minStepsToFind, err := find.MinPathLengthToTarget(find.Entrance())
	if err != nil {
		return nil, fmt.Errorf("find cavern: %w", err)
	}
	minScramSteps, err := scram.MinPathLengthToTarget(scramStart)
	if err != nil {
		return nil, fmt.Errorf("scram cavern: %w", err)
	}

	r := &Run{
		id:             uuid.New(),
		findCavern:     find,
		scramCavern:    scram,
		scramStart:     scramStart,
		solver:         cfg.Solver,
		display:        cfg.Display,
		logger:         cfg.Logger,
		findTimeout:    cfg.FindTimeout,
		scramTimeout:   cfg.ScramTimeout,
		minStepsToFind: minStepsToFind,
		minScramSteps:  minScramSteps,
	}
	if r.display == nil {
		r.display = noopDisplay{}
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard, "", 0)
	}
	if r.findTimeout <= 0 {
		r.findTimeout = config.Envs.FindTimeout
	}
	if r.scramTimeout <= 0 {
		r.scramTimeout = config.Envs.ScramTimeout
	}
	r.outcome.ID = r.id
	return r, nil
}

// ID returns the run's unique identifier.
func (r *Run) ID() uuid.UUID {
	return r.id
}

// FindCavern returns the cavern the FIND phase is played on.
func (r *Run) FindCavern() *cavern.Cavern {
	return r.findCavern
}

// ScramCavern returns the cavern the SCRAM phase is played on.
func (r *Run) ScramCavern() *cavern.Cavern {
	return r.scramCavern
}

// Play drives the full game: the FIND phase under its deadline and then,
// only if FIND succeeded, the SCRAM phase under its own deadline. It always
// returns a resolved Outcome.
func (r *Run) Play() Outcome {
	r.playFind()
	if r.outcome.FindSucceeded {
		r.playScram()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcome.StepsTaken = r.stepsTaken
	r.outcome.GoldCollected = r.goldCollected
	r.outcome.BonusFactor = BonusFactor(r.stepsTaken, r.minStepsToFind)
	r.outcome.Score = Score(r.outcome.BonusFactor, r.goldCollected)

	r.logger.Printf("%s[INFO]%s run %s gold collected   : %d", config.LogInfoColor, config.LogColorReset, r.id, r.outcome.GoldCollected)
	r.logger.Printf("%s[INFO]%s run %s bonus multiplier : %.2f", config.LogInfoColor, config.LogColorReset, r.id, r.outcome.BonusFactor)
	r.logger.Printf("%s[INFO]%s run %s score            : %d", config.LogInfoColor, config.LogColorReset, r.id, r.outcome.Score)
	return r.outcome
}

func (r *Run) playFind() {
	r.mu.Lock()
	r.phase = PhaseFind
	r.phaseOver = false
	r.position = r.findCavern.Entrance()
	r.stepsTaken = 0
	r.mu.Unlock()

	r.display.PhaseStarted(PhaseFind, r.findCavern, 0)
	r.display.MovedTo(r.findCavern.Entrance())

	view := &findView{run: r}
	result, err := runWithDeadline(r.findTimeout, func() error {
		return r.solver.ExploreForTarget(view)
	})
	r.settleFind(result, err)
}

func (r *Run) settleFind(result callbackResult, err error) {
	r.mu.Lock()
	r.phaseOver = true
	position := r.position
	r.mu.Unlock()

	switch result {
	case callbackTimedOut:
		r.outcome.FindTimedOut = true
		r.failf("the explore phase timed out after %s", r.findTimeout)
	case callbackFaulted:
		r.outcome.FindErrored = true
		r.failf("the solver faulted during the explore phase: %v", err)
	case callbackCompleted:
		switch {
		case err != nil:
			r.outcome.FindErrored = true
			r.failf("the solver errored during the explore phase: %v", err)
		case position == r.findCavern.Target():
			r.outcome.FindSucceeded = true
		default:
			r.failf("the solver returned from the explore phase at the wrong location")
		}
	}
}

func (r *Run) playScram() {
	r.mu.Lock()
	r.phase = PhaseScram
	r.phaseOver = false
	r.position = r.scramStart
	r.stepsRemaining = r.stepsToScram()
	budget := r.stepsRemaining
	r.mu.Unlock()

	r.display.PhaseStarted(PhaseScram, r.scramCavern, budget)
	r.display.MovedTo(r.scramStart)

	// Gold under the starting tile is picked up before the solver runs.
	r.mu.Lock()
	r.collectGold()
	r.mu.Unlock()

	view := &scramView{run: r}
	result, err := runWithDeadline(r.scramTimeout, func() error {
		return r.solver.ScramToExit(view)
	})
	r.settleScram(result, err)
}

func (r *Run) settleScram(result callbackResult, err error) {
	r.mu.Lock()
	r.phaseOver = true
	position := r.position
	r.mu.Unlock()

	switch result {
	case callbackTimedOut:
		r.outcome.ScramTimedOut = true
		r.failf("the scram phase timed out after %s", r.scramTimeout)
	case callbackFaulted:
		r.outcome.ScramErrored = true
		r.failf("the solver faulted during the scram phase: %v", err)
	case callbackCompleted:
		switch {
		case errors.Is(err, ErrOutOfSteps):
			r.outcome.ScramOutOfSteps = true
			r.failf("the solver ran out of steps before reaching the exit")
		case err != nil:
			r.outcome.ScramErrored = true
			r.failf("the solver errored during the scram phase: %v", err)
		case position == r.scramCavern.Target():
			r.outcome.ScramSucceeded = true
		default:
			r.failf("the solver returned from the scram phase at the wrong location")
		}
	}
}

// stepsToScram grants the minimum escape cost plus slack proportional to
// the cavern size; the slack is what makes greedy gold routes viable.
func (r *Run) stepsToScram() int {
	slack := extraStepsFactor * float64(cavern.MaxEdgeWeight+1) * float64(r.scramCavern.NumOpenTiles()) / 2
	return r.minScramSteps + int(slack)
}

// failf records an unsuccessful phase end on the console and the display.
func (r *Run) failf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.logger.Printf("%s[ERROR]%s run %s: %s", config.LogErrorColor, config.LogColorReset, r.id, msg)
	r.display.ShowError(msg)
}

// findMoveTo moves the FIND position to the adjacent node with the given
// id and counts the step.
func (r *Run) findMoveTo(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhaseFind || r.phaseOver {
		return ErrPhaseOver
	}
	for _, n := range r.position.Neighbors() {
		if n.ID() == id {
			r.position = n
			r.stepsTaken++
			r.display.BonusUpdated(BonusFactor(r.stepsTaken, r.minStepsToFind))
			r.display.MovedTo(n)
			return nil
		}
	}
	return fmt.Errorf("%w: node %d", ErrNotAdjacent, id)
}

// scramMoveTo moves the SCRAM position to an adjacent node, spending the
// edge weight and collecting any gold on arrival. A move that would drive
// the budget negative is rejected before anything changes.
func (r *Run) scramMoveTo(n *cavern.Node) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhaseScram || r.phaseOver {
		return ErrPhaseOver
	}
	edge, ok := r.position.Edge(n)
	if !ok {
		return fmt.Errorf("%w: node %d", ErrNotAdjacent, n.ID())
	}
	if r.stepsRemaining-edge.Weight() < 0 {
		return ErrOutOfSteps
	}
	r.position = n
	r.stepsRemaining -= edge.Weight()
	r.display.StepsUpdated(r.stepsRemaining)
	r.display.MovedTo(n)
	r.collectGold()
	return nil
}

// collectGold takes the gold under the current position, if any. The
// caller must hold r.mu.
func (r *Run) collectGold() {
	if r.position.Tile().Gold() <= 0 {
		return
	}
	r.goldCollected += r.position.Tile().TakeGold()
	score := Score(BonusFactor(r.stepsTaken, r.minStepsToFind), r.goldCollected)
	r.display.GoldUpdated(r.goldCollected, score)
}

func (r *Run) findCurrentLoc() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.position.ID()
}

func (r *Run) findNeighbors() []NodeStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	target := r.findCavern.Target().Tile()
	neighbors := r.position.Neighbors()
	result := make([]NodeStatus, 0, len(neighbors))
	for _, n := range neighbors {
		result = append(result, NodeStatus{
			ID:       n.ID(),
			Distance: cavern.Manhattan(n.Tile(), target),
		})
	}
	return result
}

func (r *Run) findDistanceToTarget() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cavern.Manhattan(r.position.Tile(), r.findCavern.Target().Tile())
}

func (r *Run) scramCurrentNode() *cavern.Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.position
}

func (r *Run) scramStepsLeft() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stepsRemaining
}
