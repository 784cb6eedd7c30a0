/*
Package solver provides the reference decision logic for the cavern game.

The engine drives any game.Solver; this one explores depth-first guided by
the heuristic distance and escapes by repeatedly detouring to the gold tile
with the best gold-to-distance ratio that still leaves enough budget to
reach the exit.
*/
package solver

import (
	"sort"

	"github.com/beka-birhanu/cavern-quest/cavern"
	"github.com/beka-birhanu/cavern-quest/game"
)

// Greedy is the reference solver.
type Greedy struct{}

// NewGreedy creates the reference solver.
func NewGreedy() *Greedy {
	return &Greedy{}
}

// ExploreForTarget walks depth-first, always trying the unvisited neighbor
// the heuristic says is closest to the target and backtracking out of dead
// ends. It returns once the distance reads zero.
func (g *Greedy) ExploreForTarget(v game.FindView) error {
	return g.dfsWalk(v, make(map[int64]bool))
}

func (g *Greedy) dfsWalk(v game.FindView, visited map[int64]bool) error {
	if v.DistanceToTarget() == 0 {
		return nil
	}

	here := v.CurrentLoc()
	visited[here] = true

	neighbors := v.Neighbors()
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Distance != neighbors[j].Distance {
			return neighbors[i].Distance < neighbors[j].Distance
		}
		return neighbors[i].ID < neighbors[j].ID
	})

	for _, ns := range neighbors {
		if visited[ns.ID] {
			continue
		}
		if err := v.MoveTo(ns.ID); err != nil {
			return err
		}
		if err := g.dfsWalk(v, visited); err != nil {
			return err
		}
		if v.DistanceToTarget() == 0 {
			return nil
		}
		if err := v.MoveTo(here); err != nil {
			return err
		}
	}
	return nil
}

// ScramToExit repeatedly walks to the gold tile with the highest
// gold-to-distance ratio whose detour still fits the remaining budget, and
// takes the shortest path out once no gold stop fits.
func (g *Greedy) ScramToExit(v game.ScramView) error {
	nodes := v.AllNodes()
	for {
		current := v.CurrentNode()
		exit := v.Exit()
		stop := g.bestGoldStop(nodes, current, exit, v.StepsLeft())
		if stop == nil {
			return g.moveAlong(v, current, exit)
		}
		if err := g.moveAlong(v, current, stop); err != nil {
			return err
		}
	}
}

// bestGoldStop picks the gold tile with the highest gold-to-distance ratio
// whose round trip (to it, then on to the exit) fits the budget. Returns
// nil when no gold stop fits, which also ends the loop: gold is consumed
// on arrival, so every iteration removes a stop.
func (g *Greedy) bestGoldStop(nodes []*cavern.Node, current, exit *cavern.Node, stepsLeft int) *cavern.Node {
	var best *cavern.Node
	var bestRatio float64

	for _, n := range nodes {
		gold := n.Tile().Gold()
		if gold == 0 || n == current {
			continue
		}
		toGold, err := cavern.ShortestPath(current, n)
		if err != nil {
			continue
		}
		onToExit, err := cavern.ShortestPath(n, exit)
		if err != nil {
			continue
		}
		cost := cavern.PathWeight(toGold)
		if cost == 0 || cost+cavern.PathWeight(onToExit) > stepsLeft {
			continue
		}
		ratio := float64(gold) / float64(cost)
		if best == nil || ratio > bestRatio {
			best, bestRatio = n, ratio
		}
	}
	return best
}

// moveAlong walks the shortest path from from to to, one move at a time.
func (g *Greedy) moveAlong(v game.ScramView, from, to *cavern.Node) error {
	path, err := cavern.ShortestPath(from, to)
	if err != nil {
		return err
	}
	for _, step := range path[1:] {
		if err := v.MoveTo(step); err != nil {
			return err
		}
	}
	return nil
}
