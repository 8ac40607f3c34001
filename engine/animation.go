package engine

import "github.com/plus3/sandbox/ecs"

// Advance steps the animation by dt seconds and reports whether the current
// frame changed. A non-looping animation stops on its last frame.
func (a *SpriteAnimation) Advance(dt float32) bool {
	if !a.Playing || len(a.Frames) == 0 {
		return false
	}
	if a.Current >= len(a.Frames) {
		a.Current = 0
	}

	changed := false
	a.Timer += dt
	for a.Playing {
		frame := a.Frames[a.Current]
		if frame.Duration <= 0 || a.Timer < frame.Duration {
			break
		}
		a.Timer -= frame.Duration
		changed = true
		if a.Current+1 < len(a.Frames) {
			a.Current++
		} else if a.Looping {
			a.Current = 0
		} else {
			a.Playing = false
		}
	}
	return changed
}

// Frame returns the current frame.
func (a *SpriteAnimation) Frame() (AnimationFrame, bool) {
	if a.Current < 0 || a.Current >= len(a.Frames) {
		return AnimationFrame{}, false
	}
	return a.Frames[a.Current], true
}

// SpriteAnimationSystem advances playing animations and points each sprite's
// Region at its current frame.
type SpriteAnimationSystem struct {
	Animated ecs.Query[struct {
		*Sprite
		*SpriteAnimation
	}]
}

func (s *SpriteAnimationSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for item := range s.Animated.Values() {
		if !item.SpriteAnimation.Playing {
			continue
		}
		item.SpriteAnimation.Advance(dt)
		if f, ok := item.SpriteAnimation.Frame(); ok {
			item.Sprite.Region = f.Rect
		}
	}
}
