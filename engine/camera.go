package engine

import (
	"github.com/plus3/sandbox/ecs"
	"github.com/plus3/sandbox/scene"
)

// View maps between world space (Y up) and screen pixels (Y down) for a
// camera centred on the screen.
type View struct {
	X, Y          float32
	Zoom          float32
	Width, Height float32
}

func (v View) zoom() float32 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

func (v View) WorldToScreen(x, y float32) (float32, float32) {
	z := v.zoom()
	return v.Width/2 + (x-v.X)*z, v.Height/2 - (y-v.Y)*z
}

func (v View) ScreenToWorld(sx, sy float32) (float32, float32) {
	z := v.zoom()
	return (sx-v.Width/2)/z + v.X, (v.Height/2-sy)/z + v.Y
}

// Scale converts a world length to pixels.
func (v View) Scale(length float32) float32 {
	return length * v.zoom()
}

// CameraView returns the view through the first camera in storage, or an
// unzoomed view of the origin if there is none.
func CameraView(storage *ecs.Storage, width, height float32) View {
	view := View{Zoom: 1, Width: width, Height: height}
	cameras := ecs.NewView[struct {
		*Camera
		*Transform
	}](storage)
	for item := range cameras.Values() {
		view.X, view.Y = item.Transform.X, item.Transform.Y
		if item.Camera.Zoom > 0 {
			view.Zoom = item.Camera.Zoom
		}
		break
	}
	return view
}

// SpawnCamera creates the editor-only camera entity.
func SpawnCamera(storage *ecs.Storage) ecs.EntityId {
	return storage.Spawn(
		Camera{Zoom: 1},
		NewTransform(0, 0),
		Name("Camera"),
		scene.EditorOnly{},
	)
}
