package cavern

// Tile is the spatial data of a single open cell: its fixed grid coordinates
// and the gold currently resting on it.
type Tile struct {
	row  int
	col  int
	gold int
}

// Row returns the row coordinate of the tile.
func (t *Tile) Row() int {
	return t.row
}

// Col returns the column coordinate of the tile.
func (t *Tile) Col() int {
	return t.col
}

// Gold returns the amount of gold currently on the tile.
func (t *Tile) Gold() int {
	return t.gold
}

// TakeGold removes the gold from the tile and returns the amount taken.
// Subsequent calls return zero.
func (t *Tile) TakeGold() int {
	taken := t.gold
	t.gold = 0
	return taken
}
