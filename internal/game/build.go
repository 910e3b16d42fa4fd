package game

// PlacementCheck is the structured result of a wall placement intent.
// On rejection Cell names the first offending cell and Tile what occupies
// it (meaningful only when Reason is "blocked").
type PlacementCheck struct {
	OK     bool
	Reason string // "", out_of_bounds, blocked, no_piece
	Cell   Point
	Tile   TileType
}

// BuildPhaseSystem owns the wall-building round: the active piece, the
// lookahead piece, and placement against the grid. Dragging is permissive
// so the player can slide a piece across blocked ground; committing it is
// strict.
type BuildPhaseSystem struct {
	grid *TileMap
	rng  *Rand

	current *WallPiece
	next    *WallPiece
	spawn   Point
	placed  int

	territories map[int]TerritoryResult
}

// NewBuildPhaseSystem creates a build system over the shared grid.
func NewBuildPhaseSystem(grid *TileMap, rng *Rand) *BuildPhaseSystem {
	return &BuildPhaseSystem{grid: grid, rng: rng}
}

// Current returns the piece being dragged, nil before the round starts.
func (b *BuildPhaseSystem) Current() *WallPiece {
	return b.current
}

// Next returns the lookahead piece.
func (b *BuildPhaseSystem) Next() *WallPiece {
	return b.next
}

// PiecesPlaced reports how many pieces have been committed this round.
func (b *BuildPhaseSystem) PiecesPlaced() int {
	return b.placed
}

// Territories returns the solver results from the last validation, keyed
// by castle ID.
func (b *BuildPhaseSystem) Territories() map[int]TerritoryResult {
	return b.territories
}

// StartRound resets the round counters and deals a fresh current and
// lookahead piece at the spawn cell.
func (b *BuildPhaseSystem) StartRound(spawn Point) {
	b.spawn = spawn
	b.placed = 0
	b.territories = nil
	b.current = NewRandomPiece(b.rng, spawn)
	b.next = NewRandomPiece(b.rng, spawn)
}

// pieceInBounds reports whether every occupied cell of the piece lies on
// the grid.
func (b *BuildPhaseSystem) pieceInBounds(p *WallPiece) bool {
	for _, c := range p.OccupiedCells() {
		if !b.grid.InBounds(c.X, c.Y) {
			return false
		}
	}
	return true
}

// MovePiece nudges the active piece. Only bounds are enforced while
// dragging; an off-grid move is reverted and reported false.
func (b *BuildPhaseSystem) MovePiece(dx, dy int) bool {
	if b.current == nil {
		return false
	}
	b.current.Move(dx, dy)
	if !b.pieceInBounds(b.current) {
		b.current.Move(-dx, -dy)
		return false
	}
	return true
}

// SetPiecePosition teleports the active piece, for mouse dragging. Bounds
// only; blocked ground underneath is allowed while the piece is in hand.
func (b *BuildPhaseSystem) SetPiecePosition(pos Point) bool {
	if b.current == nil {
		return false
	}
	prev := b.current.Pos
	b.current.Pos = pos
	if !b.pieceInBounds(b.current) {
		b.current.Pos = prev
		return false
	}
	return true
}

// RotatePiece turns the active piece a quarter turn. The rotation is
// reverted when it would push any cell off the grid.
func (b *BuildPhaseSystem) RotatePiece(clockwise bool) bool {
	if b.current == nil {
		return false
	}
	b.current.Rotate(clockwise)
	if !b.pieceInBounds(b.current) {
		b.current.Rotate(!clockwise)
		return false
	}
	return true
}

// CheckPlacement applies the strict commit policy to the active piece:
// every cell must be on the grid and free of water, walls, castles,
// debris and craters. Nothing is mutated.
func (b *BuildPhaseSystem) CheckPlacement() PlacementCheck {
	if b.current == nil {
		return PlacementCheck{Reason: "no_piece"}
	}
	for _, c := range b.current.OccupiedCells() {
		if !b.grid.InBounds(c.X, c.Y) {
			return PlacementCheck{Reason: "out_of_bounds", Cell: c}
		}
		if t := b.grid.TypeAt(c.X, c.Y); tileBlocksBuild(t) {
			return PlacementCheck{Reason: "blocked", Cell: c, Tile: t}
		}
	}
	return PlacementCheck{OK: true}
}

// PlacePiece commits the active piece. On success every occupied cell
// becomes wall, the lookahead piece moves into hand, and a fresh lookahead
// is dealt at the spawn cell. A failing check leaves everything untouched.
func (b *BuildPhaseSystem) PlacePiece() PlacementCheck {
	check := b.CheckPlacement()
	if !check.OK {
		return check
	}
	for _, c := range b.current.OccupiedCells() {
		b.grid.SetType(c.X, c.Y, TileWall)
	}
	b.placed++
	b.current = b.next
	b.current.Pos = b.spawn
	b.next = NewRandomPiece(b.rng, b.spawn)
	return check
}

// ValidateTerritories runs the enclosure solver for every castle and
// caches the results for the deploy phase.
func (b *BuildPhaseSystem) ValidateTerritories(castles []*Castle) map[int]TerritoryResult {
	b.territories = ValidateCastles(b.grid, castles)
	return b.territories
}
