package editor

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
)

// Backend is the Dear ImGui renderer for ebiten.
type Backend struct {
	*ebitenbackend.EbitenBackend
}

// NewBackend creates the ImGui context and binds it to the ebiten window.
func NewBackend(title string, width, height int) *Backend {
	b := ebitenbackend.NewEbitenBackend()
	b.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &Backend{EbitenBackend: b}
}
