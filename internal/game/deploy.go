package game

// Cannon is a deployed gun. Position is fixed once combat starts; Angle
// tracks the last firing direction for the renderer. baseTile remembers
// what the cannon was placed on so removal can restore it.
type Cannon struct {
	ID       int
	Pos      Point
	Health   int
	Angle    float64
	baseTile TileType
}

// DeployCheck is the structured result of a cannon placement intent.
type DeployCheck struct {
	OK       bool
	Reason   string // "", wrong_phase, out_of_bounds, invalid_tile, outside_territory, occupied, no_budget
	CannonID int    // placed cannon when OK
}

// DeployPhaseSystem owns cannon placement between build and combat. The
// budget is earned from enclosures and spent inside the union of all
// enclosed territories.
type DeployPhaseSystem struct {
	grid *TileMap

	cannons   []*Cannon
	territory map[Point]struct{}
	budget    int
	nextID    int
}

// NewDeployPhaseSystem creates a deploy system over the shared grid.
func NewDeployPhaseSystem(grid *TileMap) *DeployPhaseSystem {
	return &DeployPhaseSystem{grid: grid}
}

// Cannons returns the cannons placed so far this round.
func (d *DeployPhaseSystem) Cannons() []*Cannon {
	return d.cannons
}

// CannonsRemaining reports the unspent budget.
func (d *DeployPhaseSystem) CannonsRemaining() int {
	return d.budget
}

// InTerritory reports whether a cell lies inside any enclosed territory.
func (d *DeployPhaseSystem) InTerritory(p Point) bool {
	_, ok := d.territory[p]
	return ok
}

// cannonBudget converts the round's enclosures into guns: two per enclosed
// home castle, one per other enclosed castle, and one bonus when more
// than one castle is enclosed.
func cannonBudget(castles []*Castle, territories map[int]TerritoryResult) int {
	budget := 0
	enclosed := 0
	for _, c := range castles {
		r, ok := territories[c.ID]
		if !ok || !r.Enclosed {
			continue
		}
		enclosed++
		if c.Home {
			budget += homeCastleCannons
		} else {
			budget += otherCastleCannons
		}
	}
	if enclosed > 1 {
		budget += multiEnclosureBonus
	}
	return budget
}

// StartDeployPhase computes the budget from the build phase's solver
// results and unions the enclosed territory tiles into the placement area.
func (d *DeployPhaseSystem) StartDeployPhase(castles []*Castle, territories map[int]TerritoryResult) {
	d.cannons = d.cannons[:0]
	d.budget = cannonBudget(castles, territories)
	d.territory = make(map[Point]struct{})
	for _, r := range territories {
		if !r.Enclosed {
			continue
		}
		for p := range r.Tiles {
			d.territory[p] = struct{}{}
		}
	}
}

// cannonAt finds the placed cannon occupying a cell, nil when empty.
func (d *DeployPhaseSystem) cannonAt(p Point) *Cannon {
	for _, c := range d.cannons {
		if c.Pos == p {
			return c
		}
	}
	return nil
}

// PlaceCannon spends one budget point on a cell. The checks run in order:
// bounds, then ground type, then territory membership, then occupancy,
// then budget, so the reason names the first failure a player would see.
func (d *DeployPhaseSystem) PlaceCannon(pos Point) DeployCheck {
	if !d.grid.InBounds(pos.X, pos.Y) {
		return DeployCheck{Reason: "out_of_bounds"}
	}
	base := d.grid.TypeAt(pos.X, pos.Y)
	if !tileAcceptsCannon(base) {
		return DeployCheck{Reason: "invalid_tile"}
	}
	if !d.InTerritory(pos) {
		return DeployCheck{Reason: "outside_territory"}
	}
	if d.cannonAt(pos) != nil {
		return DeployCheck{Reason: "occupied"}
	}
	if d.budget <= 0 {
		return DeployCheck{Reason: "no_budget"}
	}
	c := &Cannon{ID: d.nextID, Pos: pos, Health: cannonHealth, baseTile: base}
	d.nextID++
	d.cannons = append(d.cannons, c)
	d.grid.SetType(pos.X, pos.Y, TileCannon)
	d.budget--
	return DeployCheck{OK: true, CannonID: c.ID}
}

// RemoveCannon picks a placed cannon back up, refunding its budget point
// and restoring the ground underneath.
func (d *DeployPhaseSystem) RemoveCannon(pos Point) bool {
	for i, c := range d.cannons {
		if c.Pos != pos {
			continue
		}
		d.cannons = append(d.cannons[:i], d.cannons[i+1:]...)
		d.grid.SetType(pos.X, pos.Y, c.baseTile)
		d.budget++
		return true
	}
	return false
}

// FinalizeDeployment hands combat its own copies of the placed cannons.
// The deploy system keeps the originals so a later round reset can restore
// the ground under survivors.
func (d *DeployPhaseSystem) FinalizeDeployment() []*Cannon {
	out := make([]*Cannon, len(d.cannons))
	for i, c := range d.cannons {
		cc := *c
		out[i] = &cc
	}
	return out
}

// ClearCannons lifts every remaining cannon off the grid, restoring the
// ground underneath. Cells that combat turned into debris stay debris.
func (d *DeployPhaseSystem) ClearCannons() {
	for _, c := range d.cannons {
		if d.grid.TypeAt(c.Pos.X, c.Pos.Y) == TileCannon {
			d.grid.SetType(c.Pos.X, c.Pos.Y, c.baseTile)
		}
	}
	d.cannons = d.cannons[:0]
	d.budget = 0
}
