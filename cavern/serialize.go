package cavern

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrBadFormat reports a malformed serialized cavern description. No cavern
// is constructed when it is returned.
var ErrBadFormat = errors.New("malformed cavern description")

// Deserialize parses the line-oriented cavern format:
//
//	rows cols
//	entrance <row> <col>
//	target <row> <col>
//	<rows lines of cols tokens, each "*" for a wall or a non-negative gold amount>
//	edge <r1> <c1> <r2> <c2> <weight>   (one line per edge)
//
// Unlike the generator, Deserialize accepts any positive dimensions and
// does not require the graph to be connected; it only validates the format
// itself. Malformed input fails with ErrBadFormat.
func Deserialize(lines []string) (*Cavern, error) {
	if len(lines) < 3 {
		return nil, fmt.Errorf("%w: expected at least 3 header lines, got %d", ErrBadFormat, len(lines))
	}

	var rows, cols int
	if _, err := fmt.Sscanf(lines[0], "%d %d", &rows, &cols); err != nil || rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: bad dimensions line %q", ErrBadFormat, lines[0])
	}

	entRow, entCol, err := parseCoords(lines[1], "entrance")
	if err != nil {
		return nil, err
	}
	tgtRow, tgtCol, err := parseCoords(lines[2], "target")
	if err != nil {
		return nil, err
	}

	if len(lines) < 3+rows {
		return nil, fmt.Errorf("%w: expected %d tile rows, got %d", ErrBadFormat, rows, len(lines)-3)
	}

	c := newCavern(rows, cols)
	for row := 0; row < rows; row++ {
		fields := strings.Fields(lines[3+row])
		if len(fields) != cols {
			return nil, fmt.Errorf("%w: row %d has %d tiles, want %d", ErrBadFormat, row, len(fields), cols)
		}
		for col, token := range fields {
			if token == "*" {
				continue
			}
			gold, err := strconv.Atoi(token)
			if err != nil || gold < 0 {
				return nil, fmt.Errorf("%w: bad tile %q at (%d,%d)", ErrBadFormat, token, row, col)
			}
			n := c.open(row, col)
			n.tile.gold = gold
		}
	}

	for _, line := range lines[3+rows:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := c.parseEdge(line); err != nil {
			return nil, err
		}
	}

	entrance, ok := c.NodeAt(entRow, entCol)
	if !ok {
		return nil, fmt.Errorf("%w: entrance (%d,%d) is not an open tile", ErrBadFormat, entRow, entCol)
	}
	target, ok := c.NodeAt(tgtRow, tgtCol)
	if !ok {
		return nil, fmt.Errorf("%w: target (%d,%d) is not an open tile", ErrBadFormat, tgtRow, tgtCol)
	}
	c.entrance = entrance
	c.target = target
	return c, nil
}

func parseCoords(line, keyword string) (int, int, error) {
	var row, col int
	if _, err := fmt.Sscanf(line, keyword+" %d %d", &row, &col); err != nil {
		return 0, 0, fmt.Errorf("%w: bad %s line %q", ErrBadFormat, keyword, line)
	}
	return row, col, nil
}

func (c *Cavern) parseEdge(line string) error {
	var r1, c1, r2, c2, weight int
	if _, err := fmt.Sscanf(line, "edge %d %d %d %d %d", &r1, &c1, &r2, &c2, &weight); err != nil {
		return fmt.Errorf("%w: bad edge line %q", ErrBadFormat, line)
	}
	a, ok := c.NodeAt(r1, c1)
	if !ok {
		return fmt.Errorf("%w: edge endpoint (%d,%d) is not an open tile", ErrBadFormat, r1, c1)
	}
	b, ok := c.NodeAt(r2, c2)
	if !ok {
		return fmt.Errorf("%w: edge endpoint (%d,%d) is not an open tile", ErrBadFormat, r2, c2)
	}
	if a == b {
		return fmt.Errorf("%w: self edge at (%d,%d)", ErrBadFormat, r1, c1)
	}
	if weight < 1 || weight > MaxEdgeWeight {
		return fmt.Errorf("%w: edge weight %d outside [1,%d]", ErrBadFormat, weight, MaxEdgeWeight)
	}
	c.addEdge(a, b, weight)
	return nil
}

// Serialize emits the cavern in the format Deserialize reads. Round trips
// are stable: deserializing the output and serializing again reproduces the
// same lines.
func (c *Cavern) Serialize() []string {
	lines := []string{
		fmt.Sprintf("%d %d", c.rows, c.cols),
		fmt.Sprintf("entrance %d %d", c.entrance.tile.row, c.entrance.tile.col),
		fmt.Sprintf("target %d %d", c.target.tile.row, c.target.tile.col),
	}

	for row := 0; row < c.rows; row++ {
		tokens := make([]string, c.cols)
		for col := 0; col < c.cols; col++ {
			if n := c.grid[row][col]; n != nil {
				tokens[col] = strconv.Itoa(n.tile.gold)
			} else {
				tokens[col] = "*"
			}
		}
		lines = append(lines, strings.Join(tokens, " "))
	}

	// Each edge is listed once, under the endpoint it was attached to
	// first. Walking the grid row-major and sorting by the far endpoint
	// gives a canonical order, so round trips reproduce identical lines
	// no matter what order the ids were assigned in.
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			n := c.grid[row][col]
			if n == nil {
				continue
			}
			var owned []*Edge
			for _, e := range n.edges {
				if e.a == n {
					owned = append(owned, e)
				}
			}
			sort.Slice(owned, func(i, j int) bool {
				bi, bj := owned[i].b.tile, owned[j].b.tile
				if bi.row != bj.row {
					return bi.row < bj.row
				}
				return bi.col < bj.col
			})
			for _, e := range owned {
				lines = append(lines, fmt.Sprintf("edge %d %d %d %d %d",
					e.a.tile.row, e.a.tile.col, e.b.tile.row, e.b.tile.col, e.weight))
			}
		}
	}

	return lines
}
