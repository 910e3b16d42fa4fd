package game

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/bmccall17/rampart-remake-sub000/internal/persistence"
)

// borderWidth is the pixel gap between the window edge and the board.
const borderWidth = 24

// tileSize is the on-screen size of one grid cell in pixels.
const tileSize = 24

// panelWidth is the side panel that carries the HUD and the event feed.
const panelWidth = 280

// hudScale is the integer upscale factor applied to the debug text strip.
const hudScale = 2

// feedLines is how many recent event lines the side panel shows.
const feedLines = 12

// Game is the interactive ebiten shell around the engine. It owns only
// presentation state; every game-rule mutation goes through the engine's
// intent methods so the shell and the headless driver stay in agreement.
type Game struct {
	engine *Engine

	width  int
	height int
	boardW int // pixel size of the board
	boardH int
	offX   int // pixel offset from window left to board left
	offY   int

	now        time.Time
	cursor     Point // board cell under the mouse
	cursorOK   bool  // mouse is over the board
	feed       []string
	prevKeys   map[ebiten.Key]bool
	prevMouseL bool
	prevMouseR bool

	// Offscreen buffer for the debug strip, rendered at 1x then blitted
	// at hudScale.
	hudBuf *ebiten.Image

	// Hover inspector buffer and visibility toggle.
	inspBuf   *ebiten.Image
	inspectOn bool

	panelFace  text.Face
	bannerFace text.Face

	scores     *persistence.Store
	scoreSaved bool
}

// New builds the shell around a fresh engine. scoresPath may be empty to
// skip the high score table entirely.
func New(cfg Config, scoresPath string) (*Game, error) {
	e, err := NewEngine(cfg)
	if err != nil {
		return nil, err
	}
	boardW := e.Grid().Width * tileSize
	boardH := e.Grid().Height * tileSize
	g := &Game{
		engine:   e,
		width:    borderWidth + boardW + borderWidth + panelWidth,
		height:   borderWidth + boardH + borderWidth,
		boardW:   boardW,
		boardH:   boardH,
		offX:     borderWidth,
		offY:     borderWidth,
		prevKeys: make(map[ebiten.Key]bool),
	}
	g.hudBuf = ebiten.NewImage(g.width/hudScale, g.height/hudScale)
	g.inspBuf = ebiten.NewImage(inspBufW, inspBufH)
	g.inspectOn = true
	g.panelFace, g.bannerFace, err = loadFaces()
	if err != nil {
		return nil, err
	}
	if scoresPath != "" {
		store, err := persistence.Open(scoresPath)
		if err != nil {
			g.pushFeed(fmt.Sprintf("scores unavailable: %v", err))
		} else {
			g.scores = store
		}
	}
	e.Events().SubscribeAll(ListenerFunc(g.onEvent))
	e.Start(time.Now())
	g.now = time.Now()
	return g, nil
}

// pushFeed appends a line to the side panel feed, trimming old ones.
func (g *Game) pushFeed(line string) {
	g.feed = append(g.feed, line)
	if len(g.feed) > feedLines {
		g.feed = g.feed[len(g.feed)-feedLines:]
	}
}

// onEvent turns engine events into feed lines and handles the end-of-run
// high score write.
func (g *Game) onEvent(e Event) {
	switch e.Type {
	case EventPhaseChanged:
		if pc, ok := e.Data.(PhaseChange); ok {
			g.pushFeed(fmt.Sprintf("phase: %s", pc.To))
		}
	case EventTerritoryUpdate:
		g.pushFeed(fmt.Sprintf("territories enclosed: %v", e.Data))
	case EventWaveSpawned:
		g.pushFeed(fmt.Sprintf("wave incoming: %v ships", e.Data))
	case EventBossSpawned:
		g.pushFeed("boss sighted!")
	case EventShipDestroyed:
		if se, ok := e.Data.(ShipEvent); ok {
			if se.Critical {
				g.pushFeed(fmt.Sprintf("%s destroyed, critical! +%d", se.Type, se.Points))
			} else {
				g.pushFeed(fmt.Sprintf("%s destroyed +%d", se.Type, se.Points))
			}
		}
	case EventCannonDestroyed:
		g.pushFeed("cannon lost")
	case EventCastleDamaged:
		g.pushFeed("castle hit! life lost")
	case EventLifeLost:
		g.pushFeed(fmt.Sprintf("lives: %v", e.Data))
	case EventLevelComplete:
		g.pushFeed(fmt.Sprintf("level %v complete", e.Data))
	case EventVictory:
		g.pushFeed("victory!")
		g.saveScore()
	case EventGameOver:
		g.pushFeed("game over")
		g.saveScore()
	}
}

// saveScore writes the finished run into the high score table, once.
func (g *Game) saveScore() {
	if g.scores == nil || g.scoreSaved {
		return
	}
	g.scoreSaved = true
	st := g.engine.GameState()
	g.scores.Add(persistence.HighScore{
		Name:  "player",
		Score: st.Score(),
		Level: st.Level(),
	})
	if err := g.scores.Save(); err != nil {
		g.pushFeed(fmt.Sprintf("score save failed: %v", err))
	}
}

// Update runs input handling and one engine step per frame. Ebiten calls
// this at the fixed tick rate, so each frame is one simulation tick.
func (g *Game) Update() error {
	g.now = time.Now()
	g.updateCursor()
	g.handleInput()
	g.engine.Update(g.now)
	return nil
}

// updateCursor converts the mouse position to a board cell.
func (g *Game) updateCursor() {
	mx, my := ebiten.CursorPosition()
	cx := (mx - g.offX) / tileSize
	cy := (my - g.offY) / tileSize
	g.cursorOK = mx >= g.offX && my >= g.offY && g.engine.Grid().InBounds(cx, cy)
	if g.cursorOK {
		g.cursor = Point{X: cx, Y: cy}
	}
}

// cellRect returns the screen-space rectangle of a board cell.
func (g *Game) cellRect(p Point) (float32, float32, float32, float32) {
	return float32(g.offX + p.X*tileSize), float32(g.offY + p.Y*tileSize),
		float32(tileSize), float32(tileSize)
}

// boardPos converts world tile coordinates (float, for ships and shots)
// to screen pixels at the cell centre.
func (g *Game) boardPos(x, y float64) (float32, float32) {
	return float32(g.offX) + float32(x*tileSize) + tileSize/2,
		float32(g.offY) + float32(y*tileSize) + tileSize/2
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// WindowSize is the natural window size for this board.
func (g *Game) WindowSize() (int, int) {
	return g.width, g.height
}

// Engine exposes the wrapped engine, mainly for the window driver.
func (g *Game) Engine() *Engine {
	return g.engine
}
