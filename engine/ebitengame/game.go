// Package ebitengame runs an engine.Context as an ebiten.Game.
package ebitengame

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/plus3/tessel/debugui"
	debugui_ebiten "github.com/plus3/tessel/debugui/ebiten"
	"github.com/plus3/tessel/engine"
	"github.com/plus3/tessel/input/ebiteninput"
	"github.com/plus3/tessel/render/ebitensurface"
)

// Game implements ebiten.Game. Update polls input and runs one scheduler
// frame; Draw renders the active scene and the debug overlay.
type Game struct {
	ctx     *engine.Context
	source  *ebiteninput.Source
	surface *ebitensurface.Surface
	imgui   *debugui_ebiten.ImguiBackend

	width, height int
}

// New prepares a Game for ctx. When the Context's config enables the debug
// UI, the ImGui backend is created and the inspector windows are spawned.
func New(ctx *engine.Context, images ebitensurface.ImageSource) (*Game, error) {
	win := ctx.Config.Window
	g := &Game{
		ctx:     ctx,
		source:  ebiteninput.New(),
		surface: ebitensurface.New(images),
		width:   win.Width,
		height:  win.Height,
	}

	if ctx.Config.Debug.UI {
		g.imgui = debugui_ebiten.New(win.Title, win.Width, win.Height)
		if _, err := debugui.Spawn(ctx); err != nil {
			return nil, err
		}
		ctx.Log.Info("debug ui enabled")
	}
	return g, nil
}

func (g *Game) Update() error {
	viewport := mgl64.Vec2{float64(g.width), float64(g.height)}
	dt := 1.0 / float64(ebiten.TPS())

	if g.imgui == nil {
		g.ctx.Update(g.source, viewport, dt)
		return nil
	}

	// Debug windows are rendered by deferred commands, which run inside
	// the scheduler frame.
	g.imgui.Frame(func() {
		g.ctx.Update(g.source, viewport, dt)
	})
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.SetTarget(screen)
	g.ctx.Draw(g.surface)

	if g.imgui != nil {
		g.imgui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run opens the window described by the Context's config and blocks until
// the game ends.
func Run(ctx *engine.Context, images ebitensurface.ImageSource) error {
	win := ctx.Config.Window
	ebiten.SetWindowSize(win.Width, win.Height)
	ebiten.SetWindowTitle(win.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ctx.Config.TPS)

	game, err := New(ctx, images)
	if err != nil {
		return err
	}

	ctx.Log.Info("starting game loop",
		zap.String("title", win.Title),
		zap.Int("width", win.Width),
		zap.Int("height", win.Height),
		zap.Int("tps", ctx.Config.TPS))
	return ebiten.RunGame(game)
}
