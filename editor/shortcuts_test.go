package editor_test

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"

	"github.com/plus3/sandbox/editor"
)

func TestResolveShortcut(t *testing.T) {
	ctrl := []ebiten.Key{ebiten.KeyControl}
	tests := []struct {
		name string
		keys *fakeKeys
		want editor.Action
	}{
		{"nothing", keys(nil), editor.ActionNone},
		{"ctrl alone", keys(ctrl), editor.ActionNone},
		{"ctrl+n", keys(ctrl, ebiten.KeyN), editor.ActionNewScene},
		{"ctrl+s", keys(ctrl, ebiten.KeyS), editor.ActionSave},
		{"ctrl+shift+s", keys([]ebiten.Key{ebiten.KeyControl, ebiten.KeyShift}, ebiten.KeyS), editor.ActionSaveAs},
		{"cmd+s", keys([]ebiten.Key{ebiten.KeyMeta}, ebiten.KeyS), editor.ActionSave},
		{"ctrl+o", keys(ctrl, ebiten.KeyO), editor.ActionLoad},
		{"s without ctrl", keys(nil, ebiten.KeyS), editor.ActionNone},
		{"held s is not a new press", keys([]ebiten.Key{ebiten.KeyControl, ebiten.KeyS}), editor.ActionNone},
		{"f5", keys(nil, ebiten.KeyF5), editor.ActionPlayStop},
		{"f6", keys(nil, ebiten.KeyF6), editor.ActionPauseResume},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, editor.ResolveShortcut(tt.keys))
		})
	}
}
