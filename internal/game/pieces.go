package game

// pieceShape is an immutable polyomino template. Cells are offsets from the
// piece anchor in an unrotated frame, all non-negative.
type pieceShape struct {
	Name  string
	Cells []Point
}

// pieceShapes is the full draw pool for the build phase. Weights are uniform;
// the mix of sizes is the difficulty knob.
var pieceShapes = []pieceShape{
	{Name: "single", Cells: []Point{{0, 0}}},
	{Name: "pair", Cells: []Point{{0, 0}, {1, 0}}},
	{Name: "line3", Cells: []Point{{0, 0}, {1, 0}, {2, 0}}},
	{Name: "corner", Cells: []Point{{0, 0}, {1, 0}, {0, 1}}},
	{Name: "square", Cells: []Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}}},
	{Name: "tee", Cells: []Point{{0, 0}, {1, 0}, {2, 0}, {1, 1}}},
	{Name: "ell", Cells: []Point{{0, 0}, {0, 1}, {0, 2}, {1, 2}}},
	{Name: "ess", Cells: []Point{{1, 0}, {2, 0}, {0, 1}, {1, 1}}},
	{Name: "zed", Cells: []Point{{0, 0}, {1, 0}, {1, 1}, {2, 1}}},
}

// WallPiece is a polyomino in play: a shape plus a mutable grid position and
// rotation. The shape itself is never mutated.
type WallPiece struct {
	Shape    string
	Pos      Point
	Rotation int // 0..3, quarter turns clockwise
	cells    []Point
}

// NewWallPiece creates a piece of the named shape anchored at pos.
// Unknown names fall back to the first shape in the pool.
func NewWallPiece(shape string, pos Point) *WallPiece {
	cells := pieceShapes[0].Cells
	name := pieceShapes[0].Name
	for _, s := range pieceShapes {
		if s.Name == shape {
			cells = s.Cells
			name = s.Name
			break
		}
	}
	return &WallPiece{Shape: name, Pos: pos, cells: cells}
}

// NewRandomPiece draws a uniform random shape anchored at pos.
func NewRandomPiece(rng *Rand, pos Point) *WallPiece {
	s := pieceShapes[rng.Intn(len(pieceShapes))]
	return &WallPiece{Shape: s.Name, Pos: pos, cells: s.Cells}
}

// rotateCellsCW rotates cell offsets a quarter turn clockwise and shifts the
// result back into a non-negative frame, so the anchor stays the top-left of
// the piece's bounding box.
func rotateCellsCW(cells []Point) []Point {
	out := make([]Point, len(cells))
	minX, minY := 0, 0
	for i, c := range cells {
		out[i] = Point{X: -c.Y, Y: c.X}
		if i == 0 || out[i].X < minX {
			minX = out[i].X
		}
		if i == 0 || out[i].Y < minY {
			minY = out[i].Y
		}
	}
	for i := range out {
		out[i].X -= minX
		out[i].Y -= minY
	}
	return out
}

// OccupiedCells returns the grid cells the piece covers at its current
// position and rotation.
func (p *WallPiece) OccupiedCells() []Point {
	cells := p.cells
	for r := 0; r < p.Rotation%4; r++ {
		cells = rotateCellsCW(cells)
	}
	out := make([]Point, len(cells))
	for i, c := range cells {
		out[i] = Point{X: p.Pos.X + c.X, Y: p.Pos.Y + c.Y}
	}
	return out
}

// Rotate turns the piece a quarter turn. clockwise=false turns the other way.
func (p *WallPiece) Rotate(clockwise bool) {
	if clockwise {
		p.Rotation = (p.Rotation + 1) % 4
	} else {
		p.Rotation = (p.Rotation + 3) % 4
	}
}

// Move shifts the piece anchor by (dx, dy).
func (p *WallPiece) Move(dx, dy int) {
	p.Pos.X += dx
	p.Pos.Y += dy
}
