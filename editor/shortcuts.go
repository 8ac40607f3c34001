package editor

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type Action int

const (
	ActionNone Action = iota
	ActionNewScene
	ActionSave
	ActionSaveAs
	ActionLoad
	ActionPlayStop
	ActionPauseResume
)

// Keys reports keyboard state.
type Keys interface {
	Pressed(ebiten.Key) bool
	JustPressed(ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) Pressed(k ebiten.Key) bool     { return ebiten.IsKeyPressed(k) }
func (ebitenKeys) JustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

// ResolveShortcut maps this frame's key presses to an editor action.
//
//	Ctrl+N        new scene
//	Ctrl+S        save
//	Ctrl+Shift+S  save as
//	Ctrl+O        load
//	F5            play / stop
//	F6            pause / resume
func ResolveShortcut(keys Keys) Action {
	switch {
	case keys.JustPressed(ebiten.KeyF5):
		return ActionPlayStop
	case keys.JustPressed(ebiten.KeyF6):
		return ActionPauseResume
	}

	if !keys.Pressed(ebiten.KeyControl) && !keys.Pressed(ebiten.KeyMeta) {
		return ActionNone
	}
	switch {
	case keys.JustPressed(ebiten.KeyS) && keys.Pressed(ebiten.KeyShift):
		return ActionSaveAs
	case keys.JustPressed(ebiten.KeyS):
		return ActionSave
	case keys.JustPressed(ebiten.KeyN):
		return ActionNewScene
	case keys.JustPressed(ebiten.KeyO):
		return ActionLoad
	}
	return ActionNone
}
