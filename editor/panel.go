// Package editor is the scene editor: an ImGui shell around an engine App
// with play mode, scene files, inspection tools and a transform gizmo.
package editor

import (
	"cmp"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/sandbox/ecs"
)

// Panel is a component holding one ImGui window. Visible panels are drawn
// each frame in Order.
type Panel struct {
	Title   string
	Order   int
	Visible bool
	Render  func()
}

// InputCapture records whether ImGui wants the mouse or keyboard this frame.
// World interaction such as the gizmo and shortcuts backs off while set.
type InputCapture struct {
	Mouse    bool
	Keyboard bool
}

func imguiCapture() InputCapture {
	io := imgui.CurrentIO()
	return InputCapture{
		Mouse:    io.WantCaptureMouse(),
		Keyboard: io.WantCaptureKeyboard(),
	}
}

// PanelSystem refreshes InputCapture and queues every visible panel's render
// function. Capture defaults to reading ImGui's IO.
type PanelSystem struct {
	Capture func() InputCapture

	Panels ecs.Query[struct{ *Panel }]
	Input  ecs.Singleton[InputCapture]

	visible []*Panel
}

func (s *PanelSystem) Execute(frame *ecs.UpdateFrame) {
	capture := s.Capture
	if capture == nil {
		capture = imguiCapture
	}
	if state := s.Input.Get(); state != nil {
		*state = capture()
	}

	s.visible = s.visible[:0]
	for item := range s.Panels.Values() {
		if item.Panel.Visible && item.Panel.Render != nil {
			s.visible = append(s.visible, item.Panel)
		}
	}
	slices.SortStableFunc(s.visible, func(a, b *Panel) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return cmp.Compare(a.Title, b.Title)
	})
	for _, p := range s.visible {
		frame.Commands.Defer(p.Render)
	}
}

// window wraps body in an ImGui window titled title.
func window(title string, open *bool, body func()) {
	if !imgui.BeginV(title, open, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	body()
	imgui.End()
}
