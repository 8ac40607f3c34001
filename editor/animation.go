package editor

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/sandbox/ecs"
	"github.com/plus3/sandbox/engine"
)

// AnimationEditor edits the SpriteAnimation of the selected entity and
// generates frames from a sprite sheet grid.
type AnimationEditor struct {
	Storage   *ecs.Storage
	Selection *Selection
	OnEdit    func()
	OnError   func(error)

	Cols, Rows     int32
	FrameW, FrameH float32
	Duration       float32
}

func NewAnimationEditor(storage *ecs.Storage, selection *Selection) *AnimationEditor {
	return &AnimationEditor{
		Storage:   storage,
		Selection: selection,
		Cols:      4,
		Rows:      4,
		FrameW:    32,
		FrameH:    32,
		Duration:  0.1,
	}
}

// Animation returns the selected entity's animation, or nil.
func (a *AnimationEditor) Animation() *engine.SpriteAnimation {
	id, ok := a.Selection.Entity(a.Storage)
	if !ok {
		return nil
	}
	return ecs.ReadComponent[engine.SpriteAnimation](a.Storage, id)
}

// Attach gives the selected entity an empty animation.
func (a *AnimationEditor) Attach() error {
	id, ok := a.Selection.Entity(a.Storage)
	if !ok {
		return ErrNoSelection
	}
	if a.Animation() == nil {
		a.Storage.AddComponent(id, engine.NewSpriteAnimation())
		a.edited()
	}
	return nil
}

// GenerateGrid replaces the selected animation's frames with a Cols x Rows
// grid and rewinds it.
func (a *AnimationEditor) GenerateGrid() error {
	anim := a.Animation()
	if anim == nil {
		return ErrNoSelection
	}
	if a.Cols <= 0 || a.Rows <= 0 || a.FrameW <= 0 || a.FrameH <= 0 {
		return fmt.Errorf("grid %dx%d of %gx%g frames is empty", a.Cols, a.Rows, a.FrameW, a.FrameH)
	}
	anim.Frames = engine.GridFrames(int(a.Cols), int(a.Rows), a.FrameW, a.FrameH, a.Duration)
	anim.Reset()
	a.edited()
	return nil
}

func (a *AnimationEditor) edited() {
	if a.OnEdit != nil {
		a.OnEdit()
	}
}

func (a *AnimationEditor) Render() {
	window("Animation", nil, func() {
		if _, ok := a.Selection.Entity(a.Storage); !ok {
			imgui.Text("No entity selected")
			return
		}
		anim := a.Animation()
		if anim == nil {
			imgui.Text("Selected entity has no animation")
			if imgui.Button("Add Animation") {
				a.report(a.Attach())
			}
			return
		}

		if anim.Playing {
			if imgui.Button("Stop") {
				anim.Stop()
			}
		} else if imgui.Button("Play") {
			anim.Play()
		}
		imgui.SameLine()
		if imgui.Button("Reset") {
			anim.Reset()
		}
		imgui.SameLine()
		if imgui.Checkbox("Loop", &anim.Looping) {
			a.edited()
		}
		imgui.Text(fmt.Sprintf("Frame %d / %d", anim.Current+1, len(anim.Frames)))
		imgui.Separator()

		a.renderFrames(anim)

		imgui.Separator()
		imgui.Text("Sprite sheet grid")
		imgui.SetNextItemWidth(100)
		imgui.InputInt("Columns", &a.Cols)
		imgui.SetNextItemWidth(100)
		imgui.InputInt("Rows", &a.Rows)
		imgui.SetNextItemWidth(100)
		imgui.InputFloat("Frame width", &a.FrameW)
		imgui.SetNextItemWidth(100)
		imgui.InputFloat("Frame height", &a.FrameH)
		imgui.SetNextItemWidth(100)
		imgui.InputFloat("Duration", &a.Duration)
		if imgui.Button("Generate Frames") {
			a.report(a.GenerateGrid())
		}
	})
}

func (a *AnimationEditor) renderFrames(anim *engine.SpriteAnimation) {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV("Frames", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("#")
	imgui.TableSetupColumn("Rect")
	imgui.TableSetupColumn("Duration")
	imgui.TableSetupColumn("")
	imgui.TableHeadersRow()

	remove, move, delta := -1, -1, 0
	for i := range anim.Frames {
		f := &anim.Frames[i]
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", i+1))
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%g,%g %gx%g", f.Rect.X, f.Rect.Y, f.Rect.W, f.Rect.H))
		imgui.TableNextColumn()
		imgui.SetNextItemWidth(80)
		if imgui.InputFloat(fmt.Sprintf("##dur%d", i), &f.Duration) {
			a.edited()
		}
		imgui.TableNextColumn()
		if imgui.Button(fmt.Sprintf("^##%d", i)) {
			move, delta = i, -1
		}
		imgui.SameLine()
		if imgui.Button(fmt.Sprintf("v##%d", i)) {
			move, delta = i, 1
		}
		imgui.SameLine()
		if imgui.Button(fmt.Sprintf("x##%d", i)) {
			remove = i
		}
	}
	imgui.EndTable()

	switch {
	case remove >= 0:
		anim.RemoveFrame(remove)
		a.edited()
	case move >= 0:
		anim.MoveFrame(move, delta)
		a.edited()
	}
	if imgui.Button("Add Frame") {
		frame := engine.AnimationFrame{Rect: engine.Rect{W: a.FrameW, H: a.FrameH}, Duration: a.Duration}
		if n := len(anim.Frames); n > 0 {
			frame = anim.Frames[n-1]
		}
		anim.AddFrame(frame)
		a.edited()
	}
}

func (a *AnimationEditor) report(err error) {
	if err != nil && a.OnError != nil {
		a.OnError(err)
	}
}
