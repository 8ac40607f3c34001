package engine_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/sandbox/ecs"
	"github.com/plus3/sandbox/engine"
	"github.com/plus3/sandbox/scene"
)

func TestEngineComponentsRoundTrip(t *testing.T) {
	app := newApp()
	serializer := app.Serializer()
	root, child, _, _ := spawnTree(t, app.Storage)

	anim := engine.NewSpriteAnimation(engine.GridFrames(2, 1, 8, 8, 0.2)...)
	child = app.Storage.AddComponent(child, anim)
	child = app.Storage.AddComponent(child, engine.Sprite{Color: engine.White, Width: 8, Height: 8})
	child = app.Storage.AddComponent(child, engine.AssetPath{Path: "ship.png"})
	_ = root

	snap, err := serializer.Capture(app.Storage)
	require.NoError(t, err)
	assert.Equal(t, 4, snap.Len(), "camera is excluded")

	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, serializer.Save(app.Storage, path))

	engine.DespawnRecursive(app.Storage, root)
	require.NoError(t, serializer.Load(app.Storage, path))

	assert.True(t, app.Storage.Exists(app.Camera))

	newRoot, ok := named(app.Storage, "root")
	require.True(t, ok)
	newChild, ok := named(app.Storage, "child")
	require.True(t, ok)
	newGrandchild, ok := named(app.Storage, "grandchild")
	require.True(t, ok)

	parent, ok := engine.ParentOf(app.Storage, newChild)
	require.True(t, ok)
	assert.Equal(t, newRoot, parent)
	parent, ok = engine.ParentOf(app.Storage, newGrandchild)
	require.True(t, ok)
	assert.Equal(t, newChild, parent)

	restored := ecs.ReadComponent[engine.SpriteAnimation](app.Storage, newChild)
	require.NotNil(t, restored)
	assert.Equal(t, anim, *restored)
	assert.Equal(t, engine.AssetPath{Path: "ship.png"}, *ecs.ReadComponent[engine.AssetPath](app.Storage, newChild))
	assert.Equal(t, engine.White, ecs.ReadComponent[engine.Sprite](app.Storage, newChild).Color)
}

func TestDefaultPolicy(t *testing.T) {
	app := newApp()
	policy := engine.DefaultPolicy()

	placed := app.Storage.Spawn(engine.NewTransform(0, 0))
	unplaced := app.Storage.Spawn(engine.Name("loose"))
	tool := app.Storage.Spawn(engine.NewTransform(0, 0), scene.EditorOnly{})

	assert.True(t, policy.Includes(app.Storage, placed))
	assert.True(t, policy.Includes(app.Storage, unplaced))
	assert.False(t, policy.Includes(app.Storage, tool))
	assert.False(t, policy.Includes(app.Storage, app.Camera))
}

func TestRegisteredCodecNames(t *testing.T) {
	app := newApp()
	assert.Equal(t, []string{
		"engine.AssetPath",
		"engine.Camera",
		"engine.Name",
		"engine.Parent",
		"engine.Sprite",
		"engine.SpriteAnimation",
		"engine.Transform",
	}, app.Codecs.Names())
}
