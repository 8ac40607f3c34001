package engine

import (
	"image"
	"image/color"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/sandbox/ecs"
)

var Background = color.RGBA{R: 24, G: 26, B: 33, A: 255}

type drawItem struct {
	transform *Transform
	sprite    *Sprite
}

// RenderSystem draws every sprite through the active camera, lowest Z first.
// Screen must be set before each frame.
type RenderSystem struct {
	Screen *ebiten.Image

	Sprites ecs.Query[struct {
		*Transform
		*Sprite
	}]

	items []drawItem
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen
	if screen == nil {
		return
	}
	screen.Fill(Background)

	bounds := screen.Bounds()
	view := CameraView(frame.Storage, float32(bounds.Dx()), float32(bounds.Dy()))

	s.items = s.items[:0]
	for item := range s.Sprites.Values() {
		s.items = append(s.items, drawItem{transform: item.Transform, sprite: item.Sprite})
	}
	slices.SortStableFunc(s.items, func(a, b drawItem) int {
		switch {
		case a.transform.Z < b.transform.Z:
			return -1
		case a.transform.Z > b.transform.Z:
			return 1
		}
		return 0
	})

	for _, item := range s.items {
		DrawSprite(screen, view, item.transform, item.sprite)
	}
}

// DrawSprite draws one sprite. Flat sprites ignore rotation.
func DrawSprite(screen *ebiten.Image, view View, t *Transform, sprite *Sprite) {
	w := sprite.Width * t.ScaleX
	h := sprite.Height * t.ScaleY
	sx, sy := view.WorldToScreen(t.X, t.Y)

	img := sprite.image
	if img == nil {
		pw, ph := view.Scale(w), view.Scale(h)
		vector.DrawFilledRect(screen, sx-pw/2, sy-ph/2, pw, ph, sprite.Color.RGBA(), false)
		return
	}

	if !sprite.Region.Empty() {
		r := sprite.Region
		img = img.SubImage(image.Rect(int(r.X), int(r.Y), int(r.X+r.W), int(r.Y+r.H))).(*ebiten.Image)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Scale(float64(view.Scale(w))/float64(b.Dx()), float64(view.Scale(h))/float64(b.Dy()))
	op.GeoM.Rotate(-float64(t.Rotation))
	op.GeoM.Translate(float64(sx), float64(sy))
	op.ColorScale.ScaleWithColor(sprite.Color.RGBA())
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(img, op)
}
