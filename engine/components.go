package engine

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/sandbox/ecs"
)

// Transform places an entity in world space. Y points up. Z orders drawing,
// higher values on top.
type Transform struct {
	X        float32 `yaml:"x"`
	Y        float32 `yaml:"y"`
	Z        float32 `yaml:"z,omitempty"`
	Rotation float32 `yaml:"rotation,omitempty"` // radians, counter-clockwise
	ScaleX   float32 `yaml:"scale_x"`
	ScaleY   float32 `yaml:"scale_y"`
}

// NewTransform returns an unrotated, unscaled transform at (x, y).
func NewTransform(x, y float32) Transform {
	return Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}
}

type Color struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
	A uint8 `yaml:"a"`
}

func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

var (
	White = Color{R: 255, G: 255, B: 255, A: 255}
	Gray  = Color{R: 128, G: 128, B: 128, A: 255}
)

type Rect struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	W float32 `yaml:"w"`
	H float32 `yaml:"h"`
}

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Sprite draws a flat colored rectangle, or the image named by the entity's
// AssetPath tinted by Color. Region selects part of the image.
type Sprite struct {
	Color  Color   `yaml:"color"`
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
	Region Rect    `yaml:"region,omitempty"`

	image  *ebiten.Image
	loaded string
}

// Image returns the loaded texture, or nil for flat sprites.
func (s *Sprite) Image() *ebiten.Image {
	return s.image
}

// Camera marks the entity whose Transform the scene is viewed from.
type Camera struct {
	Zoom float32 `yaml:"zoom"`
}

// Name labels an entity in the editor.
type Name string

// Parent links an entity to its parent in the scene hierarchy.
type Parent struct {
	Ref *ecs.EntityRef
}

// AssetPath names an image under the assets directory.
type AssetPath struct {
	Path string `yaml:"path"`
}

type AnimationFrame struct {
	Rect     Rect    `yaml:"rect"`
	Duration float32 `yaml:"duration"` // seconds
}

// SpriteAnimation steps a Sprite's Region through Frames.
type SpriteAnimation struct {
	Frames  []AnimationFrame `yaml:"frames"`
	Current int              `yaml:"current"`
	Timer   float32          `yaml:"timer"`
	Playing bool             `yaml:"playing"`
	Looping bool             `yaml:"looping"`
}

// NewSpriteAnimation returns a stopped, looping animation.
func NewSpriteAnimation(frames ...AnimationFrame) SpriteAnimation {
	return SpriteAnimation{Frames: frames, Looping: true}
}

func (a *SpriteAnimation) Play() { a.Playing = true }
func (a *SpriteAnimation) Stop() { a.Playing = false }

// Reset rewinds to the first frame.
func (a *SpriteAnimation) Reset() {
	a.Current = 0
	a.Timer = 0
}

// AddFrame appends a frame.
func (a *SpriteAnimation) AddFrame(frame AnimationFrame) {
	a.Frames = append(a.Frames, frame)
}

// RemoveFrame deletes frame i and keeps Current in range.
func (a *SpriteAnimation) RemoveFrame(i int) {
	if i < 0 || i >= len(a.Frames) {
		return
	}
	a.Frames = append(a.Frames[:i], a.Frames[i+1:]...)
	if a.Current >= len(a.Frames) {
		a.Current = max(len(a.Frames)-1, 0)
	}
}

// MoveFrame swaps frame i with its neighbour in direction delta (-1 or 1).
func (a *SpriteAnimation) MoveFrame(i, delta int) {
	j := i + delta
	if i < 0 || j < 0 || i >= len(a.Frames) || j >= len(a.Frames) {
		return
	}
	a.Frames[i], a.Frames[j] = a.Frames[j], a.Frames[i]
}

// GridFrames cuts a sprite sheet into cols x rows frames of w x h, row by
// row.
func GridFrames(cols, rows int, w, h, duration float32) []AnimationFrame {
	frames := make([]AnimationFrame, 0, cols*rows)
	for row := range rows {
		for col := range cols {
			frames = append(frames, AnimationFrame{
				Rect:     Rect{X: float32(col) * w, Y: float32(row) * h, W: w, H: h},
				Duration: duration,
			})
		}
	}
	return frames
}
