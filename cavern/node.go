package cavern

// Node is a vertex of a cavern. It owns one tile and an ordered set of
// incident edges. Node equality is identity: two handles refer to the same
// node only when they are the same pointer, and ids are unique within the
// owning cavern and never reused.
type Node struct {
	id    int64
	tile  *Tile
	edges []*Edge
}

// ID returns the node's unique identifier within its cavern.
func (n *Node) ID() int64 {
	return n.id
}

// Tile returns the tile the node sits on.
func (n *Node) Tile() *Tile {
	return n.tile
}

// Neighbors returns the nodes sharing an edge with n, in a stable order.
func (n *Node) Neighbors() []*Node {
	result := make([]*Node, 0, len(n.edges))
	for _, e := range n.edges {
		result = append(result, e.Other(n))
	}
	return result
}

// Edge returns the edge joining n and other, if one exists.
func (n *Node) Edge(other *Node) (*Edge, bool) {
	for _, e := range n.edges {
		if e.Other(n) == other {
			return e, true
		}
	}
	return nil, false
}

// Edge is an undirected connection between two nodes carrying a positive
// weight in [1, MaxEdgeWeight].
type Edge struct {
	a      *Node
	b      *Node
	weight int
}

// Weight returns the cost of traversing the edge.
func (e *Edge) Weight() int {
	return e.weight
}

// Other returns the endpoint of e that is not n.
func (e *Edge) Other(n *Node) *Node {
	if e.a == n {
		return e.b
	}
	return e.a
}
