package cavern

import (
	"container/heap"
	"errors"
	"fmt"
	"slices"
)

// ErrUnreachable reports a shortest-path query between nodes with no
// connecting path. Generated caverns are connected, so this only surfaces
// for hand-built or deserialized graphs; callers must still check for it.
var ErrUnreachable = errors.New("no path between nodes")

// ShortestPath returns a minimum total-weight path from from to to,
// inclusive of both endpoints, computed with Dijkstra's algorithm (all
// weights are positive). Ties are broken by node id, so the result is
// stable for a fixed cavern. A query from a node to itself returns a
// single-element path.
func ShortestPath(from, to *Node) ([]*Node, error) {
	if from == to {
		return []*Node{from}, nil
	}

	dist := map[int64]int{from.id: 0}
	prev := make(map[int64]*Node)
	visited := make(map[int64]bool)

	pq := pathQueue{{node: from, dist: 0}}
	heap.Init(&pq)

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*pathItem)
		u := item.node
		if visited[u.id] {
			// Stale entry from the lazy decrease-key strategy.
			continue
		}
		visited[u.id] = true
		if u == to {
			break
		}

		for _, e := range u.edges {
			v := e.Other(u)
			if visited[v.id] {
				continue
			}
			alt := item.dist + e.weight
			if d, seen := dist[v.id]; !seen || alt < d {
				dist[v.id] = alt
				prev[v.id] = u
				heap.Push(&pq, &pathItem{node: v, dist: alt})
			}
		}
	}

	if !visited[to.id] {
		return nil, fmt.Errorf("%w: %d -> %d", ErrUnreachable, from.id, to.id)
	}

	path := []*Node{to}
	for n := to; n != from; {
		n = prev[n.id]
		path = append(path, n)
	}
	slices.Reverse(path)
	return path, nil
}

// PathWeight sums the edge weights along path. Consecutive nodes must be
// adjacent; paths with fewer than two nodes weigh zero.
func PathWeight(path []*Node) int {
	total := 0
	for i := 1; i < len(path); i++ {
		if e, ok := path[i-1].Edge(path[i]); ok {
			total += e.weight
		}
	}
	return total
}

// MinPathLengthToTarget returns the minimum total edge weight from from to
// the cavern's designated target.
func (c *Cavern) MinPathLengthToTarget(from *Node) (int, error) {
	path, err := ShortestPath(from, c.target)
	if err != nil {
		return 0, err
	}
	return PathWeight(path), nil
}

// pathItem pairs a node with its current best-known distance from the
// source. Duplicates are pushed instead of decreasing keys in place; stale
// entries are skipped when popped.
type pathItem struct {
	node *Node
	dist int
}

// pathQueue is a min-heap of *pathItem ordered by distance, then node id.
type pathQueue []*pathItem

func (pq pathQueue) Len() int { return len(pq) }

func (pq pathQueue) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].node.id < pq[j].node.id
}

func (pq pathQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *pathQueue) Push(x any) { *pq = append(*pq, x.(*pathItem)) }

func (pq *pathQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
