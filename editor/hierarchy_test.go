package editor_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/sandbox/ecs"
	"github.com/plus3/sandbox/editor"
	"github.com/plus3/sandbox/engine"
)

func TestHierarchyPanel(t *testing.T) {
	t.Run("add entity", func(t *testing.T) {
		h := newHarness(t)
		first := h.ed.Hierarchy.AddEntity()
		second := h.ed.Hierarchy.AddEntity()

		assert.Equal(t, "Entity 1", editor.DisplayName(h.storage(), first))
		assert.Equal(t, "Entity 2", editor.DisplayName(h.storage(), second))
		assert.True(t, h.ed.Selection.Is(h.storage(), second))
		assert.True(t, h.ed.Scenes.Dirty())

		sprite := ecs.ReadComponent[engine.Sprite](h.storage(), second)
		require.NotNil(t, sprite)
		assert.Equal(t, engine.Gray, sprite.Color)
		assert.Equal(t, float32(32), sprite.Width)
		assert.Equal(t, engine.NewTransform(0, 0), *h.transform(second))
	})

	t.Run("tree excludes editor entities", func(t *testing.T) {
		h := newHarness(t)
		parent := h.spawnBox("Parent", 0, 0, 0)
		_, err := engine.SetParent(h.storage(), h.spawnBox("Child", 0, 0, 0), parent)
		require.NoError(t, err)

		tree := h.ed.Hierarchy.Visible()
		assert.Equal(t, []string{"Parent"}, names(h.storage(), tree.Roots))
		assert.Equal(t, []string{"Child"}, names(h.storage(), tree.Children(parent)))
	})

	t.Run("delete selected removes the subtree", func(t *testing.T) {
		h := newHarness(t)
		root := h.spawnBox("Root", 0, 0, 0)
		mid, _ := engine.SetParent(h.storage(), h.spawnBox("Mid", 0, 0, 0), root)
		_, _ = engine.SetParent(h.storage(), h.spawnBox("Leaf", 0, 0, 0), mid)
		other := h.spawnBox("Other", 0, 0, 0)

		assert.Equal(t, 0, h.ed.Hierarchy.DeleteSelected())

		h.ed.Selection.Select(h.storage(), root)
		assert.Equal(t, 3, h.ed.Hierarchy.DeleteSelected())
		assert.Equal(t, []string{"Other"}, names(h.storage(), h.ed.Hierarchy.Visible().Roots))
		assert.True(t, h.storage().Exists(other))
		_, ok := h.selected()
		assert.False(t, ok)
	})

	t.Run("display name falls back to the id", func(t *testing.T) {
		h := newHarness(t)
		id := h.storage().Spawn(engine.NewTransform(0, 0))
		assert.Equal(t, fmt.Sprintf("Entity %d", id), editor.DisplayName(h.storage(), id))

		empty := h.storage().Spawn(engine.NewTransform(0, 0), engine.Name(""))
		assert.Equal(t, fmt.Sprintf("Entity %d", empty), editor.DisplayName(h.storage(), empty))
	})
}
