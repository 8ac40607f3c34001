package editor_test

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/sandbox/ecs"
	"github.com/plus3/sandbox/editor"
	"github.com/plus3/sandbox/engine"
	"github.com/plus3/sandbox/playmode"
	"github.com/plus3/sandbox/spaceminer"
)

func TestEditorPlaySession(t *testing.T) {
	h := newHarness(t)
	ship := spaceminer.Setup(h.storage())
	h.ed.Selection.Select(h.storage(), ship)
	h.ed.Scenes.MarkClean()
	h.storage().AddComponent(ship, spaceminer.Velocity{X: 60})
	ship, _ = h.selected()

	h.press(nil, ebiten.KeyF5)
	require.NoError(t, h.ed.Update())
	assert.Equal(t, playmode.Playing, h.ed.Machine.State())
	assert.Equal(t, "Playing", h.ed.Status.Toast())

	// The tick that starts play already moves the ship one step.
	assert.InDelta(t, 1, h.transform(ship).X, 0.001)
	h.press(nil)
	for range 29 {
		require.NoError(t, h.ed.Update())
	}
	assert.InDelta(t, 30, h.transform(ship).X, 0.01)

	// Edits during play never dirty the scene.
	h.ed.Hierarchy.AddEntity()
	assert.False(t, h.ed.Scenes.Dirty())

	h.press(nil, ebiten.KeyF6)
	require.NoError(t, h.ed.Update())
	assert.Equal(t, playmode.Paused, h.ed.Machine.State())
	x := h.transform(ship).X
	h.press(nil)
	require.NoError(t, h.ed.Update())
	assert.Equal(t, x, h.transform(ship).X)

	h.press(nil, ebiten.KeyF5)
	require.NoError(t, h.ed.Update())
	assert.Equal(t, playmode.Stopped, h.ed.Machine.State())
	assert.Equal(t, "Stopped, scene restored", h.ed.Status.Toast())

	// The selection follows the ship back to its edit-time state.
	sel, ok := h.selected()
	require.True(t, ok)
	assert.Equal(t, engine.Name("Ship"), *ecs.ReadComponent[engine.Name](h.storage(), sel))
	assert.Equal(t, float32(0), h.transform(sel).X)
	assert.NotContains(t, names(h.storage(), h.ed.Hierarchy.Visible().Roots), "Entity 1")
	assert.False(t, h.ed.Scenes.Dirty())
}

func TestEditorShortcuts(t *testing.T) {
	t.Run("save shortcut writes the named scene", func(t *testing.T) {
		h := newHarness(t)
		h.ed.Hierarchy.AddEntity()
		h.ed.Files.Name = "quick"

		h.press([]ebiten.Key{ebiten.KeyControl}, ebiten.KeyS)
		require.NoError(t, h.ed.Update())
		assert.FileExists(t, h.ed.Scenes.Path())
		assert.False(t, h.ed.Scenes.Dirty())
	})

	t.Run("ignored while imgui has the keyboard", func(t *testing.T) {
		h := newHarness(t)
		h.storage().AddSingleton(editor.InputCapture{Keyboard: true})

		h.press(nil, ebiten.KeyF5)
		require.NoError(t, h.ed.Update())
		assert.Equal(t, playmode.Stopped, h.ed.Machine.State())
	})

	t.Run("apply", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.ed.Apply(editor.ActionPlayStop))
		assert.Equal(t, playmode.Stopped, h.ed.Machine.State())
		h.ed.App.Tick()
		assert.Equal(t, playmode.Playing, h.ed.Machine.State())

		require.NoError(t, h.ed.Apply(editor.ActionPauseResume))
		h.ed.App.Tick()
		assert.Equal(t, playmode.Paused, h.ed.Machine.State())

		assert.ErrorIs(t, h.ed.Apply(editor.ActionNewScene), editor.ErrPlayModeActive)
		require.NoError(t, h.ed.Apply(editor.ActionNone))
	})
}

func TestEditorPanels(t *testing.T) {
	h := newHarness(t)

	var titles []string
	for _, id := range h.storage().Entities() {
		if p := ecs.ReadComponent[editor.Panel](h.storage(), id); p != nil {
			titles = append(titles, p.Title)
		}
	}
	assert.ElementsMatch(t, []string{"Toolbar", "Scene", "Hierarchy", "Inspector", "Animation", "Assets", "Stats", "Status"}, titles)

	// Panels and the camera stay out of saved scenes.
	snap, err := h.ed.App.Serializer().Capture(h.storage())
	require.NoError(t, err)
	assert.Zero(t, snap.Len())
}
