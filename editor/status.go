package editor

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/sandbox/playmode"
)

const ToastDuration = 4 * time.Second

// Status holds the message shown to the user: an error that stays until
// dismissed, or a success toast that fades. Setting one clears the other.
type Status struct {
	err       string
	toast     string
	toastLeft time.Duration
}

func (s *Status) Errorf(format string, args ...any) {
	s.err = fmt.Sprintf(format, args...)
	s.toast = ""
}

func (s *Status) Successf(format string, args ...any) {
	s.toast = fmt.Sprintf(format, args...)
	s.toastLeft = ToastDuration
	s.err = ""
}

func (s *Status) ErrorMessage() string { return s.err }
func (s *Status) Toast() string { return s.toast }

func (s *Status) DismissError() { s.err = "" }
func (s *Status) DismissToast() { s.toast = "" }

// Tick ages the toast by dt.
func (s *Status) Tick(dt time.Duration) {
	if s.toast == "" {
		return
	}
	s.toastLeft -= dt
	if s.toastLeft <= 0 {
		s.toast = ""
	}
}

// OnPlayEvent reports play-mode transitions and failures.
func (s *Status) OnPlayEvent(e playmode.Event) {
	switch {
	case e.Err != nil:
		s.Errorf("%s failed: %v", e.Request, e.Err)
	case e.To == playmode.Stopped:
		s.Successf("Stopped, scene restored")
	case e.From == playmode.Stopped:
		s.Successf("Playing")
	}
}

// Render draws the error window and the toast.
func (s *Status) Render() {
	if s.err != "" {
		window("Error", nil, func() {
			imgui.TextColored(imgui.NewVec4(1, 0.4, 0.4, 1), s.err)
			if imgui.Button("OK") {
				s.DismissError()
			}
		})
	}
	if s.toast != "" {
		window("Status", nil, func() {
			imgui.Text(s.toast)
			imgui.SameLine()
			if imgui.Button("x") {
				s.DismissToast()
			}
		})
	}
}
