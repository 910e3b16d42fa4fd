package game

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Hover inspector: a small readout for whatever entity the mouse is
// over, rendered into an offscreen buffer at 1x and blitted at inspScale
// so the debug font stays readable.
const (
	inspScale = 2
	inspBufW  = 164
	inspBufH  = 76
	inspPad   = 5
	inspLineH = 13

	// Hover pick radius around a ship centre, in tiles.
	inspPickTiles = 0.6
)

// findHoverShip returns the live ship nearest the mouse within the pick
// radius. Ships move in fractional tile coordinates, so the mouse is
// converted to the same space instead of snapping to a cell.
func (g *Game) findHoverShip() *Ship {
	if !g.cursorOK || g.engine.Phases().Current() != PhaseCombat {
		return nil
	}
	mx, my := ebiten.CursorPosition()
	wx := (float64(mx)-float64(g.offX))/tileSize - 0.5
	wy := (float64(my)-float64(g.offY))/tileSize - 0.5
	best2 := inspPickTiles * inspPickTiles
	var hit *Ship
	for _, s := range g.engine.Combat().Ships() {
		if !s.Alive {
			continue
		}
		dx := s.X - wx
		dy := s.Y - wy
		if d2 := dx*dx + dy*dy; d2 < best2 {
			best2 = d2
			hit = s
		}
	}
	return hit
}

// findHoverCannon returns the cannon occupying the hovered cell, if any.
func (g *Game) findHoverCannon() *Cannon {
	if !g.cursorOK {
		return nil
	}
	for _, c := range g.activeCannons() {
		if c.Pos == g.cursor {
			return c
		}
	}
	return nil
}

// drawInspector shows the hover readout: a ship during combat, otherwise
// a placed cannon. Toggled with I.
func (g *Game) drawInspector(screen *ebiten.Image) {
	if !g.inspectOn {
		return
	}
	ship := g.findHoverShip()
	var cn *Cannon
	if ship == nil {
		if cn = g.findHoverCannon(); cn == nil {
			return
		}
	}

	buf := g.inspBuf
	buf.Clear()
	vector.FillRect(buf, 0, 0, inspBufW, inspBufH, color.RGBA{R: 14, G: 16, B: 20, A: 235}, false)
	vector.StrokeRect(buf, 0, 0, inspBufW, inspBufH, 1.0, color.RGBA{R: 60, G: 66, B: 78, A: 255}, false)

	ly := inspPad
	line := func(s string) {
		ebitenutil.DebugPrintAt(buf, s, inspPad, ly)
		ly += inspLineH
	}
	bar := func(label string, cur, max int) {
		const cells = 12
		filled := 0
		if max > 0 {
			filled = cur * cells / max
		}
		if filled < 0 {
			filled = 0
		}
		if filled > cells {
			filled = cells
		}
		b := make([]byte, cells)
		for i := range b {
			if i < filled {
				b[i] = '#'
			} else {
				b[i] = '-'
			}
		}
		line(fmt.Sprintf("%-4s [%s] %d/%d", label, b, cur, max))
	}

	if ship != nil {
		line(fmt.Sprintf("[ %s #%d ]", strings.ToUpper(ship.Type.String()), ship.ID))
		bar("hull", ship.Health, ship.MaxHealth)
		line(fmt.Sprintf("speed %.2f  guns %d dmg", ship.Speed, ship.Damage))
		line(fmt.Sprintf("course leg %d/%d", ship.PathIndex, len(ship.Path)-1))
		line(fmt.Sprintf("pos (%.1f, %.1f)", ship.X, ship.Y))
	} else {
		line(fmt.Sprintf("[ CANNON #%d ]", cn.ID))
		bar("hull", cn.Health, cannonHealth)
		status := "ready"
		if g.engine.Phases().Current() == PhaseCombat && g.engine.Combat().inFlight(SourcePlayer, cn.ID) > 0 {
			status = "shot in flight"
		}
		line("status  " + status)
		line(fmt.Sprintf("bearing %.0f deg", cn.Angle*180/math.Pi))
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(inspScale, inspScale)
	opts.GeoM.Translate(float64(g.offX)+6, float64(g.offY+g.boardH)-inspBufH*inspScale-6)
	screen.DrawImage(buf, opts)
}
