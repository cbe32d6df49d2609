//go:build !tinygo && cgo

package sim

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/sweeney/joyhmi/internal/logic"
)

const (
	scale    = 4
	ledBar   = 12
	ledSize  = 8
	ledSpace = 4
)

// RunWindow shows the simulated panel and LEDs. It blocks until the window is
// closed or the HMI enters the bootloader.
func RunWindow(m *Model, title string) error {
	fb := m.board.Framebuffer
	w, h := fb.Size()
	g := &game{model: m, width: int(w), height: int(h)}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(g.width*scale, (g.height+ledBar)*scale)
	ebiten.SetTPS(60)
	err := ebiten.RunGame(g)
	if err == ebiten.Termination {
		return nil
	}
	return err
}

type game struct {
	model  *Model
	width  int
	height int

	img   *image.RGBA
	panel *ebiten.Image
}

func (g *game) Update() error {
	if g.model.Rebooted() {
		return ebiten.Termination
	}

	g.model.SetButton(logic.ButtonA, ebiten.IsKeyPressed(ebiten.KeyA))
	g.model.SetButton(logic.ButtonB, ebiten.IsKeyPressed(ebiten.KeyB))
	g.model.SetButton(logic.ButtonJoystick,
		ebiten.IsKeyPressed(ebiten.KeyJ) || ebiten.IsKeyPressed(ebiten.KeySpace))

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		px, py := ebiten.CursorPosition()
		g.model.SetStick(StickFromPoint(px, py, g.width, g.height))
		return nil
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) || arrowsChanged() {
		g.model.SetStick(StickFromKeys(
			ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
			ebiten.IsKeyPressed(ebiten.KeyArrowRight),
			ebiten.IsKeyPressed(ebiten.KeyArrowUp),
			ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		))
	}
	return nil
}

func arrowsChanged() bool {
	for _, k := range []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyArrowRight, ebiten.KeyArrowUp, ebiten.KeyArrowDown} {
		if inpututil.IsKeyJustPressed(k) || inpututil.IsKeyJustReleased(k) {
			return true
		}
	}
	return false
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, g.width, g.height))
		g.panel = ebiten.NewImage(g.width, g.height)
	}
	g.model.Render(g.img)
	g.panel.WritePixels(g.img.Pix)
	screen.DrawImage(g.panel, nil)

	red, blue, green := g.model.LEDs()
	y := float32(g.height + (ledBar-ledSize)/2)
	leds := []color.RGBA{
		{R: red, A: 0xff},
		{B: blue, A: 0xff},
		{G: greenLevel(green), A: 0xff},
	}
	for i, c := range leds {
		x := float32(ledSpace + i*(ledSize+ledSpace))
		vector.DrawFilledRect(screen, x, y, ledSize, ledSize, c, false)
	}
}

func greenLevel(on bool) uint8 {
	if on {
		return 0xff
	}
	return 0
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height + ledBar
}
