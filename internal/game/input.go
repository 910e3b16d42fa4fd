package game

import (
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
)

// handleInput processes per-frame input. Held keys repeat only where that
// makes sense (nothing here does); everything else is edge-triggered
// against the previous frame's key state.
func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !g.prevKeys[k]
	}

	// The piece follows the mouse during build.
	if g.cursorOK && g.engine.Phases().Current() == PhaseBuild {
		g.engine.SetPiecePosition(g.cursor)
	}

	// Arrow keys nudge the piece for keyboard players.
	if pressed(ebiten.KeyArrowLeft) {
		g.engine.MovePiece(-1, 0)
	}
	if pressed(ebiten.KeyArrowRight) {
		g.engine.MovePiece(1, 0)
	}
	if pressed(ebiten.KeyArrowUp) {
		g.engine.MovePiece(0, -1)
	}
	if pressed(ebiten.KeyArrowDown) {
		g.engine.MovePiece(0, 1)
	}

	// Q/E rotate the piece.
	if pressed(ebiten.KeyQ) {
		g.engine.RotatePiece(false)
	}
	if pressed(ebiten.KeyE) {
		g.engine.RotatePiece(true)
	}

	// Space skips the phase where the rules allow it.
	if pressed(ebiten.KeySpace) {
		g.engine.SkipPhase()
	}

	// I toggles the hover inspector.
	if pressed(ebiten.KeyI) {
		g.inspectOn = !g.inspectOn
	}

	// P toggles pause.
	if pressed(ebiten.KeyP) {
		if g.engine.Paused() {
			g.engine.Resume()
		} else {
			g.engine.Pause()
		}
	}

	// R restarts after the run ends.
	if pressed(ebiten.KeyR) && g.engine.GameState().Over() {
		if err := g.engine.Restart(); err == nil {
			g.feed = nil
			g.scoreSaved = false
			g.pushFeed("new game")
		}
	}

	// F1 copies the run report to the clipboard.
	if pressed(ebiten.KeyF1) {
		text := g.engine.Report().Format()
		err := clipboard.WriteAll(text)
		if err != nil {
			err = writeClipboardNative(text)
		}
		if err != nil {
			g.pushFeed("report copy failed")
		} else {
			g.pushFeed("report copied to clipboard")
		}
	}

	g.handleMouse()
	g.prevKeys = currentKeys
}

// handleMouse routes clicks by phase: place walls, place or remove guns,
// fire at ships.
func (g *Game) handleMouse() {
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	leftEdge := left && !g.prevMouseL
	rightEdge := right && !g.prevMouseR
	g.prevMouseL = left
	g.prevMouseR = right

	if !g.cursorOK {
		return
	}
	switch g.engine.Phases().Current() {
	case PhaseBuild:
		if leftEdge {
			g.engine.PlacePiece()
		}
		if rightEdge {
			g.engine.RotatePiece(true)
		}
	case PhaseDeploy:
		if leftEdge {
			if check := g.engine.PlaceCannon(g.cursor); !check.OK && check.Reason != "" {
				g.pushFeed("cannot place: " + check.Reason)
			}
		}
		if rightEdge {
			g.engine.RemoveCannon(g.cursor)
		}
	case PhaseCombat:
		if leftEdge {
			g.engine.FireAt(g.cursor)
		}
	}
}
