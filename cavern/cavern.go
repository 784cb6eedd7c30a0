/*
Package cavern provides the weighted cavern graphs the exploration game is
played on.

It defines the Cavern structure, composed of Node objects that own a Tile
with coordinates and optional gold. The package includes functionality for
seeded random cavern generation, shortest-path queries, gold assignment, a
line-oriented serialization format, and ASCII visualization of the grid.

Generation is fully deterministic for a given random source: the same seed
and dimensions always reproduce an identical cavern.
*/
package cavern

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// Dimension bounds for generated caverns and the maximum corridor weight.
const (
	MinRows = 8
	MaxRows = 25
	MinCols = 12
	MaxCols = 40

	// MaxEdgeWeight is the largest weight a corridor between two open
	// tiles can carry.
	MaxEdgeWeight = 15
)

// Generation errors.
var (
	ErrInvalidDimensions = errors.New("cavern dimensions out of range")
	ErrStartOutOfBounds  = errors.New("start position outside the cavern")
)

// directions lists the four orthogonal deltas in a fixed order so that
// generation consumes the random source reproducibly.
var directions = [4]struct{ dRow, dCol int }{
	{-1, 0}, // north
	{1, 0},  // south
	{0, 1},  // east
	{0, -1}, // west
}

// goldModel describes how gold is scattered over open tiles: each
// non-entrance tile receives gold with probability goldProb, and the
// denomination leans toward largeGold near the middle of the cavern.
type goldModel struct {
	smallGold int
	largeGold int
	goldProb  float64
}

var defaultGoldModel = goldModel{smallGold: 10, largeGold: 50, goldProb: 0.4}

// Cavern is the weighted graph for one phase of play. It owns every node
// and edge, and designates one node as entrance and one as target. Grid
// positions without a node are walls.
type Cavern struct {
	rows     int
	cols     int
	grid     [][]*Node // nil entries are walls
	nodes    []*Node   // open tiles in id order
	entrance *Node
	target   *Node
}

// Dig generates a connected cavern of the given dimensions, entered at a
// random open tile. All randomness is drawn from rng.
func Dig(rows, cols int, rng *rand.Rand) (*Cavern, error) {
	if err := checkDimensions(rows, cols); err != nil {
		return nil, err
	}
	return DigFrom(rows, cols, rng.Intn(rows), rng.Intn(cols), rng)
}

// DigFrom generates a connected cavern whose entrance sits at the given
// start coordinates. It is used to root the scram cavern at the find
// cavern's target, so the two phases share spatial scale but not layout.
func DigFrom(rows, cols, startRow, startCol int, rng *rand.Rand) (*Cavern, error) {
	if err := checkDimensions(rows, cols); err != nil {
		return nil, err
	}
	if startRow < 0 || startRow >= rows || startCol < 0 || startCol >= cols {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrStartOutOfBounds, startRow, startCol)
	}

	c := newCavern(rows, cols)
	c.dig(startRow, startCol, rng)
	c.connect(rng)
	c.placeTarget()
	c.placeGold(defaultGoldModel, rng)
	return c, nil
}

func checkDimensions(rows, cols int) error {
	if rows < MinRows || rows > MaxRows || cols < MinCols || cols > MaxCols {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	return nil
}

func newCavern(rows, cols int) *Cavern {
	grid := make([][]*Node, rows)
	for i := range grid {
		grid[i] = make([]*Node, cols)
	}
	return &Cavern{rows: rows, cols: cols, grid: grid}
}

// open creates the node for an open tile. Ids are assigned in creation
// order and never reused.
func (c *Cavern) open(row, col int) *Node {
	n := &Node{id: int64(len(c.nodes)), tile: &Tile{row: row, col: col}}
	c.grid[row][col] = n
	c.nodes = append(c.nodes, n)
	return n
}

// dig carves the open tiles by randomized growth from the start tile. Only
// tiles adjacent to an already-open tile are ever opened, so the result is
// connected by construction; everything left unopened is a wall.
func (c *Cavern) dig(startRow, startCol int, rng *rand.Rand) {
	type pos struct{ row, col int }

	const (
		closed = iota
		queued
		opened
	)
	state := make([][]int, c.rows)
	for i := range state {
		state[i] = make([]int, c.cols)
	}

	gridSize := c.rows * c.cols
	goal := gridSize/2 + rng.Intn(gridSize/4)

	frontier := []pos{{startRow, startCol}}
	state[startRow][startCol] = queued

	for len(c.nodes) < goal && len(frontier) > 0 {
		i := rng.Intn(len(frontier))
		p := frontier[i]
		frontier[i] = frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		c.open(p.row, p.col)
		state[p.row][p.col] = opened

		for _, d := range directions {
			row, col := p.row+d.dRow, p.col+d.dCol
			if row < 0 || row >= c.rows || col < 0 || col >= c.cols {
				continue
			}
			if state[row][col] == closed {
				state[row][col] = queued
				frontier = append(frontier, pos{row, col})
			}
		}
	}

	c.entrance = c.grid[startRow][startCol]
}

// connect joins every pair of orthogonally adjacent open tiles with an edge
// of uniform random weight. Scanning row-major keeps the draw order, and so
// the weights, deterministic.
func (c *Cavern) connect(rng *rand.Rand) {
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			n := c.grid[row][col]
			if n == nil {
				continue
			}
			if row+1 < c.rows && c.grid[row+1][col] != nil {
				c.addEdge(n, c.grid[row+1][col], 1+rng.Intn(MaxEdgeWeight))
			}
			if col+1 < c.cols && c.grid[row][col+1] != nil {
				c.addEdge(n, c.grid[row][col+1], 1+rng.Intn(MaxEdgeWeight))
			}
		}
	}
}

func (c *Cavern) addEdge(a, b *Node, weight int) {
	e := &Edge{a: a, b: b, weight: weight}
	a.edges = append(a.edges, e)
	b.edges = append(b.edges, e)
}

// placeTarget designates the open tile farthest from the entrance by
// Manhattan distance. Ties go to the lowest node id.
func (c *Cavern) placeTarget() {
	best := c.entrance
	bestDist := -1
	for _, n := range c.nodes {
		d := Manhattan(n.tile, c.entrance.tile)
		if d > bestDist {
			best, bestDist = n, d
		}
	}
	c.target = best
}

// placeGold scatters gold over the open tiles per the model. The entrance
// never holds gold.
func (c *Cavern) placeGold(m goldModel, rng *rand.Rand) {
	for _, n := range c.nodes {
		if n == c.entrance {
			continue
		}
		if rng.Float64() >= m.goldProb {
			continue
		}
		if rng.Float64() < c.largeGoldProb(n) {
			n.tile.gold = m.largeGold
		} else {
			n.tile.gold = m.smallGold
		}
	}
}

// largeGoldProb grows toward the middle of the cavern, so the richest tiles
// cluster where reaching them costs the most.
func (c *Cavern) largeGoldProb(n *Node) float64 {
	midRow, midCol := c.rows/2, c.cols/2
	maxDist := midRow + midCol
	if maxDist == 0 {
		return 0.5
	}
	distToMid := abs(n.tile.row-midRow) + abs(n.tile.col-midCol)
	return 1.0 - float64(distToMid)/float64(maxDist)
}

// Rows returns the number of grid rows.
func (c *Cavern) Rows() int {
	return c.rows
}

// Cols returns the number of grid columns.
func (c *Cavern) Cols() int {
	return c.cols
}

// Entrance returns the designated entrance node.
func (c *Cavern) Entrance() *Node {
	return c.entrance
}

// Target returns the designated target node. During the scram phase the
// target is the exit.
func (c *Cavern) Target() *Node {
	return c.target
}

// NumOpenTiles returns the number of non-wall tiles.
func (c *Cavern) NumOpenTiles() int {
	return len(c.nodes)
}

// Nodes returns every node of the cavern in id order.
func (c *Cavern) Nodes() []*Node {
	result := make([]*Node, len(c.nodes))
	copy(result, c.nodes)
	return result
}

// NodeAt returns the node at the given grid coordinates, reporting false
// for walls and out-of-bounds positions.
func (c *Cavern) NodeAt(row, col int) (*Node, bool) {
	if row < 0 || row >= c.rows || col < 0 || col >= c.cols {
		return nil, false
	}
	n := c.grid[row][col]
	return n, n != nil
}

// String provides a textual representation of the cavern: '#' for walls,
// 'E' for the entrance, 'X' for the target, gold amounts on open tiles.
func (c *Cavern) String() string {
	var sb strings.Builder

	sb.WriteString("+" + strings.Repeat("----", c.cols) + "+\n")
	for row := 0; row < c.rows; row++ {
		sb.WriteString("|")
		for col := 0; col < c.cols; col++ {
			n := c.grid[row][col]
			switch {
			case n == nil:
				sb.WriteString("####")
			case n == c.entrance:
				sb.WriteString("  E ")
			case n == c.target:
				sb.WriteString("  X ")
			case n.tile.gold > 0:
				sb.WriteString(fmt.Sprintf("%3d ", n.tile.gold))
			default:
				sb.WriteString("  . ")
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("+" + strings.Repeat("----", c.cols) + "+\n")

	return sb.String()
}

// Manhattan returns the unweighted grid distance between two tiles. It
// ignores walls and edge weights entirely.
func Manhattan(a, b *Tile) int {
	return abs(a.row-b.row) + abs(a.col-b.col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
