package editor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/sandbox/editor"
	"github.com/plus3/sandbox/engine"
)

func TestAnimationEditor(t *testing.T) {
	h := newHarness(t)
	anim := h.ed.Animation

	assert.Equal(t, int32(4), anim.Cols)
	assert.Equal(t, int32(4), anim.Rows)
	assert.Equal(t, float32(32), anim.FrameW)
	assert.Equal(t, float32(0.1), anim.Duration)

	assert.ErrorIs(t, anim.Attach(), editor.ErrNoSelection)
	assert.ErrorIs(t, anim.GenerateGrid(), editor.ErrNoSelection)

	h.ed.Selection.Select(h.storage(), h.spawnBox("Walker", 0, 0, 0))
	assert.Nil(t, anim.Animation())
	require.NoError(t, anim.Attach())
	require.NotNil(t, anim.Animation())
	assert.True(t, h.ed.Scenes.Dirty())

	anim.Cols, anim.Rows = 3, 2
	anim.Animation().Current = 4
	require.NoError(t, anim.GenerateGrid())
	frames := anim.Animation().Frames
	require.Len(t, frames, 6)
	assert.Equal(t, engine.Rect{X: 64, Y: 32, W: 32, H: 32}, frames[5].Rect)
	assert.Equal(t, float32(0.1), frames[0].Duration)
	assert.Equal(t, 0, anim.Animation().Current)

	anim.Rows = 0
	assert.Error(t, anim.GenerateGrid())
	assert.Len(t, anim.Animation().Frames, 6)
}

func TestFrameHistory(t *testing.T) {
	history := editor.NewFrameHistory(3)
	assert.Zero(t, history.Average())

	history.Record(10 * time.Millisecond)
	history.Record(20 * time.Millisecond)
	assert.InDelta(t, 15, history.Average(), 0.001)

	history.Record(30 * time.Millisecond)
	history.Record(40 * time.Millisecond)
	assert.InDelta(t, 30, history.Average(), 0.001)
	assert.Len(t, history.Samples(), 3)
}
