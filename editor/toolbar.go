package editor

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/sandbox/playmode"
)

// ToolbarActions lists the play requests offered in state, in button order.
func ToolbarActions(state playmode.State) []playmode.Request {
	switch state {
	case playmode.Playing:
		return []playmode.Request{playmode.RequestPause, playmode.RequestStop}
	case playmode.Paused:
		return []playmode.Request{playmode.RequestResume, playmode.RequestStop}
	}
	return []playmode.Request{playmode.RequestPlay}
}

func actionLabel(req playmode.Request) string {
	switch req {
	case playmode.RequestPlay:
		return "Play"
	case playmode.RequestPause:
		return "Pause"
	case playmode.RequestResume:
		return "Resume"
	case playmode.RequestStop:
		return "Stop"
	}
	return req.String()
}

// Toolbar shows the play state and submits play requests. Requests are
// queued and applied at the start of the next tick.
type Toolbar struct {
	Machine *playmode.Machine
}

func (t *Toolbar) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	window("Toolbar", nil, func() {
		state := t.Machine.State()
		for i, req := range ToolbarActions(state) {
			if i > 0 {
				imgui.SameLine()
			}
			green := req == playmode.RequestPlay || req == playmode.RequestResume
			if green {
				imgui.PushStyleColorVec4(imgui.ColButton, imgui.NewVec4(0.2, 0.7, 0.2, 1.0))
				imgui.PushStyleColorVec4(imgui.ColButtonHovered, imgui.NewVec4(0.3, 0.8, 0.3, 1.0))
				imgui.PushStyleColorVec4(imgui.ColButtonActive, imgui.NewVec4(0.1, 0.6, 0.1, 1.0))
			}
			if imgui.Button(actionLabel(req)) {
				t.Machine.Submit(req)
			}
			if green {
				imgui.PopStyleColor()
				imgui.PopStyleColor()
				imgui.PopStyleColor()
			}
		}

		imgui.SameLine()
		switch state {
		case playmode.Playing:
			imgui.TextColored(imgui.NewVec4(0.3, 0.9, 0.3, 1.0), "PLAYING")
		case playmode.Paused:
			imgui.TextColored(imgui.NewVec4(1.0, 0.8, 0.0, 1.0), "PAUSED")
		default:
			imgui.Text("EDITING")
		}
	})
}
