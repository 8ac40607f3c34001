package editor_test

import (
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/sandbox/ecs"
	"github.com/plus3/sandbox/editor"
	"github.com/plus3/sandbox/engine"
	"github.com/plus3/sandbox/spaceminer"
)

// fakeKeys holds keys down in pressed; keys in just were pressed this frame.
type fakeKeys struct {
	pressed map[ebiten.Key]bool
	just    map[ebiten.Key]bool
}

func keys(held []ebiten.Key, just ...ebiten.Key) *fakeKeys {
	k := &fakeKeys{pressed: map[ebiten.Key]bool{}, just: map[ebiten.Key]bool{}}
	for _, key := range held {
		k.pressed[key] = true
	}
	for _, key := range just {
		k.pressed[key] = true
		k.just[key] = true
	}
	return k
}

func (k *fakeKeys) Pressed(key ebiten.Key) bool     { return k.pressed[key] }
func (k *fakeKeys) JustPressed(key ebiten.Key) bool { return k.just[key] }

type harness struct {
	ed      *editor.Editor
	keys    *fakeKeys
	pointer editor.Pointer
}

// newHarness builds a headless editor over a temp directory with an
// 800x600 view and the spaceminer movement system gated on play.
func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	cfg := engine.Config{
		AssetsDir:    filepath.Join(dir, "assets"),
		ScenesDir:    filepath.Join(dir, "scenes"),
		PrefabsDir:   filepath.Join(dir, "prefabs"),
		WindowWidth:  800,
		WindowHeight: 600,
		TickRate:     60,
	}
	h := &harness{keys: keys(nil)}
	app := engine.NewApp(cfg, nil, spaceminer.Register)
	h.ed = editor.New(app, editor.Options{
		Keys:    h.keys,
		Pointer: func() editor.Pointer { return h.pointer },
	})
	app.Systems.RegisterIf(&spaceminer.MovementSystem{}, h.ed.Machine.Gate())
	return h
}

func (h *harness) storage() *ecs.Storage {
	return h.ed.App.Storage
}

func (h *harness) press(held []ebiten.Key, just ...ebiten.Key) {
	*h.keys = *keys(held, just...)
}

// click runs one tick with the mouse pressed at (x, y) this frame.
func (h *harness) click(x, y float32) {
	h.pointer = editor.Pointer{X: x, Y: y, Pressed: true, JustPressed: true}
	h.ed.App.Tick()
}

// dragTo runs one tick with the mouse held at (x, y).
func (h *harness) dragTo(x, y float32) {
	h.pointer = editor.Pointer{X: x, Y: y, Pressed: true}
	h.ed.App.Tick()
}

func (h *harness) release() {
	h.pointer = editor.Pointer{X: h.pointer.X, Y: h.pointer.Y, JustReleased: true}
	h.ed.App.Tick()
}

func (h *harness) spawnBox(name string, x, y, z float32) ecs.EntityId {
	t := engine.NewTransform(x, y)
	t.Z = z
	return h.storage().Spawn(engine.Name(name), t, engine.Sprite{Color: engine.Gray, Width: 40, Height: 40})
}

func (h *harness) transform(id ecs.EntityId) *engine.Transform {
	return ecs.ReadComponent[engine.Transform](h.storage(), id)
}

func (h *harness) selected() (ecs.EntityId, bool) {
	return h.ed.Selection.Entity(h.storage())
}

func names(storage *ecs.Storage, ids []ecs.EntityId) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = editor.DisplayName(storage, id)
	}
	return out
}
