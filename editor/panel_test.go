package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/sandbox/ecs"
	"github.com/plus3/sandbox/editor"
)

func TestPanelSystem(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[editor.Panel](registry)
	storage := ecs.NewStorage(registry)
	storage.AddSingleton(editor.InputCapture{})

	var drawn []string
	panel := func(title string, order int, visible bool) {
		storage.Spawn(editor.Panel{
			Title:   title,
			Order:   order,
			Visible: visible,
			Render:  func() { drawn = append(drawn, title) },
		})
	}
	panel("Stats", 2, true)
	panel("Hidden", 0, false)
	panel("Toolbar", 0, true)
	panel("Assets", 2, true)
	storage.Spawn(editor.Panel{Title: "Empty", Visible: true})

	capture := editor.InputCapture{Keyboard: true}
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&editor.PanelSystem{Capture: func() editor.InputCapture { return capture }})

	scheduler.Once(0)
	assert.Equal(t, []string{"Toolbar", "Assets", "Stats"}, drawn)

	var state *editor.InputCapture
	assert.True(t, storage.ReadSingleton(&state))
	assert.Equal(t, capture, *state)

	capture = editor.InputCapture{Mouse: true}
	drawn = nil
	scheduler.Once(0)
	assert.Len(t, drawn, 3)
	assert.True(t, state.Mouse)
	assert.False(t, state.Keyboard)
}
