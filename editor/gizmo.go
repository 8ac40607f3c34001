package editor

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/sandbox/ecs"
	"github.com/plus3/sandbox/engine"
	"github.com/plus3/sandbox/scene"
)

// Gizmo dimensions in screen pixels.
const (
	GizmoLength     = 80
	GizmoThickness  = 3
	GizmoHeadSize   = 12
	GizmoCenterSize = 16
	GizmoHitRadius  = 12
)

// Handle is a grabbable part of the translation gizmo.
type Handle int

const (
	HandleNone Handle = iota
	HandleX
	HandleY
	HandleCenter
)

var (
	colorX       = color.RGBA{R: 230, G: 80, B: 80, A: 255}
	colorY       = color.RGBA{R: 80, G: 200, B: 80, A: 255}
	colorCenter  = color.RGBA{R: 255, G: 255, B: 100, A: 255}
	colorXHot    = color.RGBA{R: 255, G: 120, B: 120, A: 255}
	colorYHot    = color.RGBA{R: 120, G: 255, B: 120, A: 255}
	colorCenterH = color.RGBA{R: 255, G: 255, B: 180, A: 255}
)

// HitTest returns the handle under the pointer for a gizmo drawn at
// (cx, cy). The center wins over the axes.
func HitTest(cx, cy, px, py float32) Handle {
	half := float32(GizmoCenterSize+GizmoHitRadius) / 2
	if px >= cx-half && px <= cx+half && py >= cy-half && py <= cy+half {
		return HandleCenter
	}
	if distanceToSegment(px, py, cx, cy, cx+GizmoLength, cy) < GizmoHitRadius {
		return HandleX
	}
	if distanceToSegment(px, py, cx, cy, cx, cy-GizmoLength) < GizmoHitRadius {
		return HandleY
	}
	return HandleNone
}

func distanceToSegment(px, py, ax, ay, bx, by float32) float32 {
	lx, ly := bx-ax, by-ay
	lenSq := lx*lx + ly*ly
	if lenSq < 0.001 {
		return hypot(px-ax, py-ay)
	}
	t := ((px-ax)*lx + (py-ay)*ly) / lenSq
	t = max(0, min(1, t))
	return hypot(px-(ax+lx*t), py-(ay+ly*t))
}

func hypot(x, y float32) float32 {
	return float32(math.Hypot(float64(x), float64(y)))
}

// Pointer is the mouse state for one frame, in screen pixels.
type Pointer struct {
	X, Y         float32
	Pressed      bool
	JustPressed  bool
	JustReleased bool
}

func ebitenPointer() Pointer {
	x, y := ebiten.CursorPosition()
	return Pointer{
		X:            float32(x),
		Y:            float32(y),
		Pressed:      ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		JustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		JustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
}

// Gizmo moves the selected entity by dragging its axis handles, and
// selects sprites clicked outside the handles. Only register it behind the
// play machine's edit gate.
type Gizmo struct {
	Selection *Selection
	Policy    scene.Policy
	Width     float32
	Height    float32
	Pointer   func() Pointer
	// OnMove runs once per drag that changes the entity.
	OnMove func()

	Input ecs.Singleton[InputCapture]

	hot      Handle
	dragging Handle
	startX   float32
	startY   float32
	originX  float32
	originY  float32
	moved    bool
}

func (g *Gizmo) Dragging() Handle { return g.dragging }

// Hot returns the handle under the pointer on the last frame.
func (g *Gizmo) Hot() Handle { return g.hot }

func (g *Gizmo) Execute(frame *ecs.UpdateFrame) {
	pointer := g.Pointer
	if pointer == nil {
		pointer = ebitenPointer
	}
	p := pointer()
	view := engine.CameraView(frame.Storage, g.Width, g.Height)
	g.hot = HandleNone

	var t *engine.Transform
	if id, ok := g.Selection.Entity(frame.Storage); ok {
		t = ecs.ReadComponent[engine.Transform](frame.Storage, id)
	}
	if t == nil {
		g.dragging = HandleNone
	}

	if g.dragging != HandleNone {
		g.drag(p, view, t)
		return
	}
	if in := g.Input.Get(); in != nil && in.Mouse {
		return
	}

	if t != nil {
		cx, cy := view.WorldToScreen(t.X, t.Y)
		g.hot = HitTest(cx, cy, p.X, p.Y)
	}
	if !p.JustPressed {
		return
	}
	if g.hot != HandleNone {
		g.dragging = g.hot
		g.startX, g.startY = p.X, p.Y
		g.originX, g.originY = t.X, t.Y
		g.moved = false
		return
	}
	if id, ok := Pick(frame.Storage, g.Policy, view, p.X, p.Y); ok {
		g.Selection.Select(frame.Storage, id)
	} else {
		g.Selection.Clear()
	}
}

func (g *Gizmo) drag(p Pointer, view engine.View, t *engine.Transform) {
	if p.JustReleased || !p.Pressed {
		g.dragging = HandleNone
		return
	}

	scale := view.Scale(1)
	dx := (p.X - g.startX) / scale
	dy := -(p.Y - g.startY) / scale
	switch g.dragging {
	case HandleX:
		dy = 0
	case HandleY:
		dx = 0
	}
	x, y := g.originX+dx, g.originY+dy
	if x == t.X && y == t.Y {
		return
	}
	t.X, t.Y = x, y
	if !g.moved && g.OnMove != nil {
		g.OnMove()
	}
	g.moved = true
}

// Pick returns the topmost scene sprite under screen point (sx, sy).
// Rotation is ignored.
func Pick(storage *ecs.Storage, policy scene.Policy, view engine.View, sx, sy float32) (ecs.EntityId, bool) {
	wx, wy := view.ScreenToWorld(sx, sy)

	var best ecs.EntityId
	var bestZ float32
	found := false
	for _, id := range policy.Entities(storage) {
		t := ecs.ReadComponent[engine.Transform](storage, id)
		s := ecs.ReadComponent[engine.Sprite](storage, id)
		if t == nil || s == nil {
			continue
		}
		hw := abs(s.Width*t.ScaleX) / 2
		hh := abs(s.Height*t.ScaleY) / 2
		if wx < t.X-hw || wx > t.X+hw || wy < t.Y-hh || wy > t.Y+hh {
			continue
		}
		if !found || t.Z >= bestZ {
			best, bestZ, found = id, t.Z, true
		}
	}
	return best, found
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Draw renders the gizmo over the selected entity.
func (g *Gizmo) Draw(screen *ebiten.Image, storage *ecs.Storage) {
	id, ok := g.Selection.Entity(storage)
	if !ok {
		return
	}
	t := ecs.ReadComponent[engine.Transform](storage, id)
	if t == nil {
		return
	}
	b := screen.Bounds()
	view := engine.CameraView(storage, float32(b.Dx()), float32(b.Dy()))
	cx, cy := view.WorldToScreen(t.X, t.Y)

	active := g.dragging
	if active == HandleNone {
		active = g.hot
	}
	pick := func(h Handle, normal, hot color.RGBA) color.RGBA {
		if active == h {
			return hot
		}
		return normal
	}

	drawArrow(screen, cx, cy, GizmoLength, 0, pick(HandleX, colorX, colorXHot))
	drawArrow(screen, cx, cy, 0, -GizmoLength, pick(HandleY, colorY, colorYHot))
	half := float32(GizmoCenterSize) / 2
	vector.DrawFilledRect(screen, cx-half, cy-half, GizmoCenterSize, GizmoCenterSize, pick(HandleCenter, colorCenter, colorCenterH), false)
}

func drawArrow(screen *ebiten.Image, x, y, dx, dy float32, c color.RGBA) {
	ex, ey := x+dx, y+dy
	vector.StrokeLine(screen, x, y, ex, ey, GizmoThickness, c, true)

	l := hypot(dx, dy)
	nx, ny := dx/l, dy/l
	px, py := -ny, nx
	bx, by := ex-nx*GizmoHeadSize, ey-ny*GizmoHeadSize
	w := float32(GizmoHeadSize) / 2

	var path vector.Path
	path.MoveTo(ex, ey)
	path.LineTo(bx+px*w, by+py*w)
	path.LineTo(bx-px*w, by-py*w)
	path.Close()
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].ColorR = float32(c.R) / 255
		vs[i].ColorG = float32(c.G) / 255
		vs[i].ColorB = float32(c.B) / 255
		vs[i].ColorA = float32(c.A) / 255
		vs[i].SrcX, vs[i].SrcY = 0, 0
	}
	screen.DrawTriangles(vs, is, white(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

var whitePixel *ebiten.Image

func white() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}
