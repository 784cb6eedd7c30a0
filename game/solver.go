package game

import "github.com/beka-birhanu/cavern-quest/cavern"

// NodeStatus pairs a FIND-phase node handle with the Manhattan distance
// from that node's tile to the target's tile. The distance ignores walls
// and edge weights; it is a deliberately imperfect heuristic, not a
// traversal cost.
type NodeStatus struct {
	ID       int64
	Distance int
}

// FindView is the restricted window a solver gets during the FIND phase:
// only the current node's id, its neighbors, and heuristic distances. There
// is no step budget; FIND is step-counted but unlimited.
type FindView interface {
	// CurrentLoc returns the id of the current node.
	CurrentLoc() int64

	// Neighbors returns the nodes adjacent to the current position along
	// with their heuristic distance to the target.
	Neighbors() []NodeStatus

	// DistanceToTarget returns the heuristic distance from the current
	// position. It is zero exactly when standing on the target.
	DistanceToTarget() int

	// MoveTo moves to the adjacent node with the given id. It fails with
	// ErrNotAdjacent for any other id and with ErrPhaseOver once the
	// phase has ended.
	MoveTo(id int64) error
}

// ScramView is the full-visibility window a solver gets during the SCRAM
// phase. The whole graph is exposed because the solver must plan ahead
// under a decaying weighted-step budget.
type ScramView interface {
	// CurrentNode returns the node the solver is standing on.
	CurrentNode() *cavern.Node

	// Exit returns the node the solver must reach before the budget runs out.
	Exit() *cavern.Node

	// AllNodes returns every node of the scram cavern.
	AllNodes() []*cavern.Node

	// StepsLeft returns the remaining step budget.
	StepsLeft() int

	// MoveTo moves to an adjacent node, spending the edge weight from the
	// budget and collecting any gold on the destination tile. A move whose
	// weight exceeds the budget fails with ErrOutOfSteps and changes
	// nothing; moves to non-adjacent nodes fail with ErrNotAdjacent.
	MoveTo(n *cavern.Node) error
}

// Solver supplies the decision logic the engine drives. Each callback is
// invoked at most once per run, under a hard wall-clock deadline. A solver
// must propagate errors returned by MoveTo: returning ErrOutOfSteps ends
// the scram phase as a clean unsuccessful run, any other non-nil error
// marks the phase errored, and a nil return triggers the final-location
// check against the target or exit.
type Solver interface {
	ExploreForTarget(FindView) error
	ScramToExit(ScramView) error
}
