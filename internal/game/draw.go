package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// tileColors maps each tile type to its board colour.
var tileColors = [tileTypeCount]color.RGBA{
	TileEmpty:  {R: 26, G: 26, B: 30, A: 255},
	TileLand:   {R: 74, G: 108, B: 56, A: 255},
	TileWater:  {R: 22, G: 52, B: 92, A: 255},
	TileWall:   {R: 128, G: 124, B: 112, A: 255},
	TileCastle: {R: 188, G: 160, B: 76, A: 255},
	TileCrater: {R: 48, G: 38, B: 28, A: 255},
	TileDebris: {R: 82, G: 72, B: 58, A: 255},
	TileCannon: {R: 56, G: 58, B: 66, A: 255},
}

// shipColors maps each ship class to its hull colour.
var shipColors = [shipTypeCount]color.RGBA{
	ShipScout:     {R: 180, G: 180, B: 150, A: 255},
	ShipFrigate:   {R: 200, G: 140, B: 70, A: 255},
	ShipDestroyer: {R: 190, G: 70, B: 60, A: 255},
	ShipBoss:      {R: 160, G: 50, B: 170, A: 255},
}

// projectileArcPixels is how high a shot appears to rise at mid flight.
const projectileArcPixels = 18

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 13, B: 16, A: 255})
	g.drawBoard(screen)
	g.drawTerritoryTint(screen)
	g.drawCastles(screen)
	g.drawCannons(screen)
	g.drawShips(screen)
	g.drawProjectiles(screen)
	g.drawPieceGhost(screen)
	g.drawCrosshair(screen)
	g.drawFrame(screen)
	g.drawPanel(screen)
	g.drawInspector(screen)
	g.drawOverlay(screen)
	g.drawDebugStrip(screen)
}

// drawBoard fills every tile and lays a faint grid over the board.
func (g *Game) drawBoard(screen *ebiten.Image) {
	grid := g.engine.Grid()
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			px, py, w, h := g.cellRect(Point{X: x, Y: y})
			vector.FillRect(screen, px, py, w, h, tileColors[grid.TypeAt(x, y)], false)
		}
	}
	gridCol := color.RGBA{R: 0, G: 0, B: 0, A: 36}
	for x := 0; x <= grid.Width; x++ {
		fx := float32(g.offX + x*tileSize)
		vector.StrokeLine(screen, fx, float32(g.offY), fx, float32(g.offY+g.boardH), 1.0, gridCol, false)
	}
	for y := 0; y <= grid.Height; y++ {
		fy := float32(g.offY + y*tileSize)
		vector.StrokeLine(screen, float32(g.offX), fy, float32(g.offX+g.boardW), fy, 1.0, gridCol, false)
	}
}

// drawTerritoryTint washes enclosed territory in translucent green while
// cannons are being placed.
func (g *Game) drawTerritoryTint(screen *ebiten.Image) {
	if g.engine.Phases().Current() != PhaseDeploy {
		return
	}
	grid := g.engine.Grid()
	tint := color.RGBA{R: 80, G: 200, B: 90, A: 48}
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			p := Point{X: x, Y: y}
			if g.engine.Deploy().InTerritory(p) {
				px, py, w, h := g.cellRect(p)
				vector.FillRect(screen, px, py, w, h, tint, false)
			}
		}
	}
}

// drawCastles draws a keep on every castle cell, brighter when enclosed.
func (g *Game) drawCastles(screen *ebiten.Image) {
	for _, c := range g.engine.Castles() {
		px, py, w, h := g.cellRect(c.Pos)
		inner := color.RGBA{R: 150, G: 120, B: 50, A: 255}
		if c.Enclosed {
			inner = color.RGBA{R: 230, G: 200, B: 90, A: 255}
		}
		vector.FillRect(screen, px+4, py+4, w-8, h-8, inner, false)
		vector.StrokeRect(screen, px+4, py+4, w-8, h-8, 1.5, color.RGBA{R: 60, G: 48, B: 20, A: 255}, false)
		if c.Home {
			vector.StrokeRect(screen, px+1, py+1, w-2, h-2, 1.0, color.RGBA{R: 255, G: 240, B: 160, A: 180}, false)
		}
	}
}

// activeCannons picks whichever cannon list matches the phase: the deploy
// roster while placing, combat's survivors once the shooting starts.
func (g *Game) activeCannons() []*Cannon {
	if g.engine.Phases().Current() == PhaseDeploy {
		return g.engine.Deploy().Cannons()
	}
	return g.engine.Combat().Cannons()
}

// drawCannons draws each gun as a turret disc with a barrel along its
// last firing angle.
func (g *Game) drawCannons(screen *ebiten.Image) {
	for _, c := range g.activeCannons() {
		cx, cy := g.boardPos(float64(c.Pos.X), float64(c.Pos.Y))
		vector.FillCircle(screen, cx, cy, tileSize*0.32, color.RGBA{R: 40, G: 42, B: 48, A: 255}, false)
		vector.StrokeCircle(screen, cx, cy, tileSize*0.32, 1.5, color.RGBA{R: 160, G: 164, B: 170, A: 255}, false)
		bx := cx + float32(math.Cos(c.Angle))*tileSize*0.45
		by := cy + float32(math.Sin(c.Angle))*tileSize*0.45
		vector.StrokeLine(screen, cx, cy, bx, by, 3.0, color.RGBA{R: 120, G: 124, B: 130, A: 255}, false)

		// Health pips under damaged guns.
		if c.Health < cannonHealth {
			frac := float32(c.Health) / float32(cannonHealth)
			barW := float32(tileSize) * 0.8
			vector.FillRect(screen, cx-barW/2, cy+tileSize*0.4, barW, 2.5, color.RGBA{R: 60, G: 20, B: 20, A: 220}, false)
			vector.FillRect(screen, cx-barW/2, cy+tileSize*0.4, barW*frac, 2.5, color.RGBA{R: 220, G: 80, B: 60, A: 220}, false)
		}
	}
}

// drawShips draws every live ship as a hull circle with a heading dash
// and a health bar.
func (g *Game) drawShips(screen *ebiten.Image) {
	if g.engine.Phases().Current() != PhaseCombat {
		return
	}
	for _, s := range g.engine.Combat().Ships() {
		if !s.Alive {
			continue
		}
		cx, cy := g.boardPos(s.X, s.Y)
		radius := float32(tileSize) * 0.34
		if s.Type == ShipBoss {
			radius = tileSize * 0.48
		}
		vector.FillCircle(screen, cx, cy, radius, shipColors[s.Type], false)
		vector.StrokeCircle(screen, cx, cy, radius, 1.0, color.RGBA{R: 20, G: 20, B: 24, A: 255}, false)

		heading := math.Atan2(s.VY, s.VX)
		hx := cx + float32(math.Cos(heading))*radius*1.4
		hy := cy + float32(math.Sin(heading))*radius*1.4
		vector.StrokeLine(screen, cx, cy, hx, hy, 2.0, color.RGBA{R: 240, G: 240, B: 240, A: 200}, false)

		frac := float32(s.Health) / float32(s.MaxHealth)
		barW := radius * 2
		vector.FillRect(screen, cx-barW/2, cy-radius-5, barW, 2.5, color.RGBA{R: 40, G: 20, B: 20, A: 220}, false)
		vector.FillRect(screen, cx-barW/2, cy-radius-5, barW*frac, 2.5, color.RGBA{R: 90, G: 220, B: 90, A: 220}, false)
	}
}

// drawProjectiles draws shots with a faked ballistic arc: the dot lifts
// off its ground track by a sine of flight progress, with a shadow left
// on the track so the landing cell stays readable.
func (g *Game) drawProjectiles(screen *ebiten.Image) {
	for _, p := range g.engine.Combat().Projectiles() {
		if !p.Active {
			continue
		}
		gx, gy := g.boardPos(p.X, p.Y)
		lift := float32(math.Sin(p.Progress*math.Pi)) * projectileArcPixels
		vector.FillCircle(screen, gx, gy, 2.0, color.RGBA{R: 0, G: 0, B: 0, A: 90}, false)
		if p.Source == SourcePlayer {
			vector.FillCircle(screen, gx, gy-lift, 3.0, color.RGBA{R: 250, G: 250, B: 230, A: 255}, false)
		} else {
			vector.FillCircle(screen, gx, gy-lift, 3.5, color.RGBA{R: 240, G: 90, B: 60, A: 255}, false)
		}
	}
}

// drawPieceGhost overlays the in-hand piece, green where it could commit
// and red where it could not.
func (g *Game) drawPieceGhost(screen *ebiten.Image) {
	if g.engine.Phases().Current() != PhaseBuild {
		return
	}
	piece := g.engine.Build().Current()
	if piece == nil {
		return
	}
	ok := g.engine.Build().CheckPlacement().OK
	fill := color.RGBA{R: 90, G: 220, B: 110, A: 110}
	edge := color.RGBA{R: 140, G: 255, B: 160, A: 200}
	if !ok {
		fill = color.RGBA{R: 230, G: 70, B: 60, A: 110}
		edge = color.RGBA{R: 255, G: 120, B: 110, A: 200}
	}
	for _, c := range piece.OccupiedCells() {
		if !g.engine.Grid().InBounds(c.X, c.Y) {
			continue
		}
		px, py, w, h := g.cellRect(c)
		vector.FillRect(screen, px, py, w, h, fill, false)
		vector.StrokeRect(screen, px, py, w, h, 1.5, edge, false)
	}
}

// drawCrosshair marks the aimed cell during combat.
func (g *Game) drawCrosshair(screen *ebiten.Image) {
	if g.engine.Phases().Current() != PhaseCombat || !g.cursorOK {
		return
	}
	cx, cy := g.boardPos(float64(g.cursor.X), float64(g.cursor.Y))
	c := color.RGBA{R: 255, G: 245, B: 200, A: 220}
	r := float32(tileSize) * 0.42
	vector.StrokeCircle(screen, cx, cy, r, 1.5, c, false)
	vector.StrokeLine(screen, cx-r-4, cy, cx-r+4, cy, 1.5, c, false)
	vector.StrokeLine(screen, cx+r-4, cy, cx+r+4, cy, 1.5, c, false)
	vector.StrokeLine(screen, cx, cy-r-4, cx, cy-r+4, 1.5, c, false)
	vector.StrokeLine(screen, cx, cy+r-4, cx, cy+r+4, 1.5, c, false)
}

// drawFrame draws the double border around the board.
func (g *Game) drawFrame(screen *ebiten.Image) {
	ox := float32(g.offX)
	oy := float32(g.offY)
	bw := float32(g.boardW)
	bh := float32(g.boardH)
	vector.StrokeRect(screen, ox-1, oy-1, bw+2, bh+2, 2.0, color.RGBA{R: 70, G: 80, B: 95, A: 255}, false)
	vector.StrokeRect(screen, ox-3, oy-3, bw+6, bh+6, 1.0, color.RGBA{R: 45, G: 52, B: 62, A: 100}, false)
}
