package game

import "github.com/beka-birhanu/cavern-quest/cavern"

// findView is the FindView handed to solver logic. It only ever delegates
// to the owning run, which serializes access and rejects mutation once the
// phase is over.
type findView struct {
	run *Run
}

func (v *findView) CurrentLoc() int64 {
	return v.run.findCurrentLoc()
}

func (v *findView) Neighbors() []NodeStatus {
	return v.run.findNeighbors()
}

func (v *findView) DistanceToTarget() int {
	return v.run.findDistanceToTarget()
}

func (v *findView) MoveTo(id int64) error {
	return v.run.findMoveTo(id)
}

// scramView is the ScramView handed to solver logic.
type scramView struct {
	run *Run
}

func (v *scramView) CurrentNode() *cavern.Node {
	return v.run.scramCurrentNode()
}

func (v *scramView) Exit() *cavern.Node {
	return v.run.scramCavern.Target()
}

func (v *scramView) AllNodes() []*cavern.Node {
	return v.run.scramCavern.Nodes()
}

func (v *scramView) StepsLeft() int {
	return v.run.scramStepsLeft()
}

func (v *scramView) MoveTo(n *cavern.Node) error {
	return v.run.scramMoveTo(n)
}
