package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const (
	panelFontSize  = 15
	bannerFontSize = 34
)

// loadFaces builds the two text faces the shell uses: a regular face for
// the side panel and a bold one for the phase banner and end screens.
func loadFaces() (text.Face, text.Face, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, nil, fmt.Errorf("parse bold font: %w", err)
	}
	rf, err := opentype.NewFace(regular, &opentype.FaceOptions{Size: panelFontSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, nil, fmt.Errorf("build panel face: %w", err)
	}
	bf, err := opentype.NewFace(bold, &opentype.FaceOptions{Size: bannerFontSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, nil, fmt.Errorf("build banner face: %w", err)
	}
	return text.NewGoXFace(rf), text.NewGoXFace(bf), nil
}

// drawText draws a string at a screen position with the given colour.
func drawText(dst *ebiten.Image, face text.Face, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, face, op)
}

// drawTextCentered centres a string horizontally on x.
func drawTextCentered(dst *ebiten.Image, face text.Face, s string, x, y float64, c color.Color) {
	w, _ := text.Measure(s, face, 0)
	drawText(dst, face, s, x-w/2, y, c)
}

// drawPanel renders the side panel: phase status, run numbers, the next
// piece preview, the event feed and the control legend.
func (g *Game) drawPanel(screen *ebiten.Image) {
	px := float64(g.offX + g.boardW + borderWidth)
	py := float64(g.offY)
	pw := float64(panelWidth - borderWidth)
	ph := float64(g.boardH)
	vector.FillRect(screen, float32(px), float32(py), float32(pw), float32(ph), color.RGBA{R: 18, G: 20, B: 24, A: 255}, false)
	vector.StrokeRect(screen, float32(px), float32(py), float32(pw), float32(ph), 1.0, color.RGBA{R: 60, G: 66, B: 78, A: 255}, false)

	white := color.RGBA{R: 225, G: 228, B: 232, A: 255}
	dim := color.RGBA{R: 140, G: 146, B: 155, A: 255}
	accent := color.RGBA{R: 230, G: 200, B: 90, A: 255}

	st := g.engine.GameState()
	phases := g.engine.Phases()
	x := px + 14
	y := py + 28

	drawText(screen, g.panelFace, "RAMPART", x, y, accent)
	y += 30

	phase := phases.Current()
	drawText(screen, g.panelFace, fmt.Sprintf("%s  %s", phaseTitle(phase), phases.FormatRemaining(g.now)), x, y, white)
	y += 10

	// Phase progress bar.
	barW := pw - 28
	vector.FillRect(screen, float32(x), float32(y), float32(barW), 5, color.RGBA{R: 40, G: 44, B: 52, A: 255}, false)
	vector.FillRect(screen, float32(x), float32(y), float32(barW*phases.Progress(g.now)), 5, color.RGBA{R: 110, G: 170, B: 230, A: 255}, false)
	y += 26

	drawText(screen, g.panelFace, fmt.Sprintf("score  %d", st.Score()), x, y, white)
	y += 20
	drawText(screen, g.panelFace, fmt.Sprintf("high   %d", st.HighScore()), x, y, dim)
	y += 20
	drawText(screen, g.panelFace, fmt.Sprintf("lives  %d", st.Lives()), x, y, white)
	y += 20
	drawText(screen, g.panelFace, fmt.Sprintf("level  %d / %d   wave %d", st.Level(), st.FinalLevel(), st.Wave()), x, y, white)
	y += 26

	switch phase {
	case PhaseBuild:
		drawText(screen, g.panelFace, fmt.Sprintf("pieces placed  %d", g.engine.Build().PiecesPlaced()), x, y, dim)
		y += 20
		drawText(screen, g.panelFace, "next:", x, y, dim)
		g.drawNextPiece(screen, x+52, y-12)
		y += 40
	case PhaseDeploy:
		drawText(screen, g.panelFace, fmt.Sprintf("cannons left  %d", g.engine.Deploy().CannonsRemaining()), x, y, accent)
		y += 20
		drawText(screen, g.panelFace, fmt.Sprintf("territories   %d", st.Territories()), x, y, dim)
		y += 26
	case PhaseCombat:
		combat := g.engine.Combat()
		drawText(screen, g.panelFace, fmt.Sprintf("ships   %d / %d", combat.AliveShips(), len(combat.Ships())), x, y, white)
		y += 20
		stats := combat.Stats()
		drawText(screen, g.panelFace, fmt.Sprintf("shots   %d / %d  (%.0f%%)", stats.ShotsHit, stats.ShotsFired, stats.Accuracy()*100), x, y, dim)
		y += 26
	case PhaseScoring:
		bd := st.Breakdown()
		drawText(screen, g.panelFace, fmt.Sprintf("ships      %d", bd.ShipPoints), x, y, dim)
		y += 20
		drawText(screen, g.panelFace, fmt.Sprintf("territory  %d", bd.TerritoryPoints), x, y, dim)
		y += 20
		drawText(screen, g.panelFace, fmt.Sprintf("bonuses    %d", bd.BonusPoints), x, y, dim)
		y += 26
	}

	// Event feed.
	vector.StrokeLine(screen, float32(x), float32(y), float32(px+pw-14), float32(y), 1.0, color.RGBA{R: 60, G: 66, B: 78, A: 255}, false)
	y += 20
	for _, line := range g.feed {
		drawText(screen, g.panelFace, line, x, y, dim)
		y += 18
	}

	// Control legend pinned to the panel bottom.
	legend := []string{
		"mouse: place / fire",
		"rclick: rotate / remove",
		"Q,E rotate   arrows nudge",
		"space: skip  P: pause  I: inspect",
		"F1: copy report   R: restart",
	}
	ly := py + ph - float64(len(legend))*18 - 10
	vector.StrokeLine(screen, float32(x), float32(ly-12), float32(px+pw-14), float32(ly-12), 1.0, color.RGBA{R: 60, G: 66, B: 78, A: 255}, false)
	for _, line := range legend {
		drawText(screen, g.panelFace, line, x, ly, dim)
		ly += 18
	}
}

// phaseTitle is the banner label for each phase.
func phaseTitle(p GamePhase) string {
	switch p {
	case PhaseBuild:
		return "BUILD WALLS"
	case PhaseDeploy:
		return "PLACE CANNONS"
	case PhaseCombat:
		return "DEFEND"
	case PhaseScoring:
		return "SCORING"
	default:
		return "?"
	}
}

// drawNextPiece renders the lookahead piece in miniature.
func (g *Game) drawNextPiece(screen *ebiten.Image, x, y float64) {
	piece := g.engine.Build().Next()
	if piece == nil {
		return
	}
	const mini = 10
	base := piece.Pos
	for _, c := range piece.OccupiedCells() {
		fx := float32(x + float64(c.X-base.X)*mini)
		fy := float32(y + float64(c.Y-base.Y)*mini)
		vector.FillRect(screen, fx, fy, mini-1, mini-1, color.RGBA{R: 128, G: 124, B: 112, A: 255}, false)
	}
}

// drawOverlay paints the big board-centre banners: pause, level clear and
// the two end screens.
func (g *Game) drawOverlay(screen *ebiten.Image) {
	cx := float64(g.offX) + float64(g.boardW)/2
	cy := float64(g.offY) + float64(g.boardH)/2
	shade := func() {
		vector.FillRect(screen, float32(g.offX), float32(g.offY), float32(g.boardW), float32(g.boardH), color.RGBA{A: 140}, false)
	}
	switch {
	case g.engine.GameState().State() == StateGameOver:
		shade()
		drawTextCentered(screen, g.bannerFace, "GAME OVER", cx, cy-30, color.RGBA{R: 235, G: 80, B: 60, A: 255})
		drawTextCentered(screen, g.panelFace, fmt.Sprintf("final score %d", g.engine.GameState().Score()), cx, cy+14, color.RGBA{R: 220, G: 222, B: 226, A: 255})
		drawTextCentered(screen, g.panelFace, "press R to restart", cx, cy+38, color.RGBA{R: 150, G: 154, B: 160, A: 255})
	case g.engine.GameState().State() == StateVictory:
		shade()
		drawTextCentered(screen, g.bannerFace, "VICTORY", cx, cy-30, color.RGBA{R: 240, G: 210, B: 90, A: 255})
		drawTextCentered(screen, g.panelFace, fmt.Sprintf("final score %d", g.engine.GameState().Score()), cx, cy+14, color.RGBA{R: 220, G: 222, B: 226, A: 255})
		drawTextCentered(screen, g.panelFace, "press R to play again", cx, cy+38, color.RGBA{R: 150, G: 154, B: 160, A: 255})
	case g.engine.Paused():
		shade()
		drawTextCentered(screen, g.bannerFace, "PAUSED", cx, cy, color.RGBA{R: 220, G: 222, B: 226, A: 255})
	case g.engine.GameState().State() == StateLevelComplete:
		drawTextCentered(screen, g.bannerFace, fmt.Sprintf("LEVEL %d CLEARED", g.engine.GameState().Level()), cx, cy, color.RGBA{R: 240, G: 210, B: 90, A: 230})
	}
}

// drawDebugStrip renders the tiny status line into hudBuf at 1x and blits
// it at hudScale so the debug font stays readable.
func (g *Game) drawDebugStrip(screen *ebiten.Image) {
	g.hudBuf.Clear()
	line := fmt.Sprintf("tick %d  round %d  seed %d  fps %.0f",
		g.engine.Tick(), g.engine.Round(), g.engine.Rand().Seed(), ebiten.ActualFPS())
	ebitenutil.DebugPrintAt(g.hudBuf, line, 4, g.height/hudScale-16)
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(hudScale, hudScale)
	screen.DrawImage(g.hudBuf, opts)
}
