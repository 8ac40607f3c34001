package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/sandbox/ecs"
	"github.com/plus3/sandbox/engine"
)

func threeFrames() []engine.AnimationFrame {
	return engine.GridFrames(3, 1, 16, 16, 0.1)
}

func TestGridFrames(t *testing.T) {
	frames := engine.GridFrames(4, 4, 32, 32, 0.1)
	require.Len(t, frames, 16)
	assert.Equal(t, engine.Rect{X: 0, Y: 0, W: 32, H: 32}, frames[0].Rect)
	assert.Equal(t, engine.Rect{X: 32, Y: 32, W: 32, H: 32}, frames[5].Rect)
	assert.Equal(t, engine.Rect{X: 96, Y: 96, W: 32, H: 32}, frames[15].Rect)
	assert.Equal(t, float32(0.1), frames[3].Duration)
}

func TestSpriteAnimationAdvance(t *testing.T) {
	t.Run("stopped animation does not move", func(t *testing.T) {
		anim := engine.NewSpriteAnimation(threeFrames()...)
		assert.False(t, anim.Advance(1))
		assert.Equal(t, 0, anim.Current)
		assert.Zero(t, anim.Timer)
	})

	t.Run("looping wraps to the first frame", func(t *testing.T) {
		anim := engine.NewSpriteAnimation(threeFrames()...)
		anim.Play()

		assert.True(t, anim.Advance(0.25))
		assert.Equal(t, 2, anim.Current)
		assert.InDelta(t, 0.05, anim.Timer, 1e-5)

		anim.Advance(0.1)
		assert.Equal(t, 0, anim.Current)
		assert.True(t, anim.Playing)
	})

	t.Run("one-shot stops on the last frame", func(t *testing.T) {
		anim := engine.NewSpriteAnimation(threeFrames()...)
		anim.Looping = false
		anim.Play()

		anim.Advance(1)
		assert.Equal(t, 2, anim.Current)
		assert.False(t, anim.Playing)
	})

	t.Run("no frames", func(t *testing.T) {
		anim := engine.NewSpriteAnimation()
		anim.Play()
		assert.False(t, anim.Advance(1))
	})
}

func TestSpriteAnimationEditing(t *testing.T) {
	anim := engine.NewSpriteAnimation(threeFrames()...)
	anim.Current = 2

	anim.MoveFrame(0, 1)
	assert.Equal(t, float32(16), anim.Frames[0].Rect.X)
	assert.Equal(t, float32(0), anim.Frames[1].Rect.X)

	anim.MoveFrame(2, 1)
	assert.Equal(t, float32(32), anim.Frames[2].Rect.X)

	anim.RemoveFrame(2)
	assert.Len(t, anim.Frames, 2)
	assert.Equal(t, 1, anim.Current)

	anim.AddFrame(engine.AnimationFrame{Rect: engine.Rect{W: 8, H: 8}, Duration: 0.2})
	assert.Len(t, anim.Frames, 3)

	anim.Timer = 0.05
	anim.Reset()
	assert.Equal(t, 0, anim.Current)
	assert.Zero(t, anim.Timer)
}

func TestSpriteAnimationSystem(t *testing.T) {
	app := newApp()
	app.InstallEngineSystems(nil)

	anim := engine.NewSpriteAnimation(threeFrames()...)
	anim.Play()
	id := app.Storage.Spawn(engine.NewTransform(0, 0), engine.Sprite{Width: 16, Height: 16}, anim)

	app.Systems.Once(0.1)

	sprite := ecs.ReadComponent[engine.Sprite](app.Storage, id)
	assert.Equal(t, engine.Rect{X: 16, Y: 0, W: 16, H: 16}, sprite.Region)
	assert.Equal(t, 1, ecs.ReadComponent[engine.SpriteAnimation](app.Storage, id).Current)
}

func TestSpriteAnimationSystemGated(t *testing.T) {
	app := newApp()
	app.InstallEngineSystems(func() bool { return false })

	anim := engine.NewSpriteAnimation(threeFrames()...)
	anim.Play()
	id := app.Storage.Spawn(engine.NewTransform(0, 0), engine.Sprite{}, anim)

	app.Tick()
	app.Tick()

	assert.Equal(t, 0, ecs.ReadComponent[engine.SpriteAnimation](app.Storage, id).Current)
}
