package editor

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/sandbox/ecs"
	"github.com/plus3/sandbox/playmode"
)

// FrameHistory is a fixed ring of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	next    int
	filled  int
}

func NewFrameHistory(frames int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, max(frames, 1))}
}

// Record adds a frame that took dt.
func (h *FrameHistory) Record(dt time.Duration) {
	h.samples[h.next] = float32(dt.Seconds() * 1000)
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Average returns the mean of the recorded frames in milliseconds.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, s := range h.samples[:h.filled] {
		sum += s
	}
	return sum / float32(h.filled)
}

func (h *FrameHistory) Samples() []float32 {
	return h.samples
}

// FrameTimer measures wall time between calls to Lap.
type FrameTimer struct {
	last time.Time
	now  func() time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{last: time.Now(), now: time.Now}
}

func (t *FrameTimer) Lap() time.Duration {
	now := t.now()
	dt := now.Sub(t.last)
	t.last = now
	return dt
}

// StatsPanel shows world and scheduler statistics and the size of the play
// session snapshot.
type StatsPanel struct {
	Storage *ecs.Storage
	Systems *ecs.Scheduler
	Machine *playmode.Machine
	History *FrameHistory
}

func (p *StatsPanel) Render() {
	window("Stats", nil, func() {
		stats := p.Storage.CollectStats()
		imgui.Text(fmt.Sprintf("Entities: %d", stats.TotalEntityCount))
		imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
		imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

		if p.History != nil {
			avg := p.History.Average()
			fps := float32(0)
			if avg > 0 {
				fps = 1000 / avg
			}
			imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, fps))
			samples := p.History.Samples()
			imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))
		}

		imgui.Separator()
		if snap := p.Machine.Snapshot(); snap != nil {
			imgui.Text(fmt.Sprintf("Session: %s", snap.ID))
			imgui.Text(fmt.Sprintf("Snapshot: %d entities, %d bytes", snap.Len(), snap.Size()))
		} else {
			imgui.Text("Snapshot: none")
		}

		if imgui.TreeNodeStr("Systems") {
			p.renderSystems(p.Systems.GetStats())
			imgui.TreePop()
		}
		if imgui.TreeNodeStr("Archetypes") {
			const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
			if imgui.BeginTableV("ArchStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
				imgui.TableSetupColumn("Archetype ID")
				imgui.TableSetupColumn("Components")
				imgui.TableSetupColumn("Entity Count")
				imgui.TableHeadersRow()
				for _, arch := range stats.ArchetypeBreakdown {
					imgui.TableNextRow()
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprintf("0x%X", arch.ID))
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprintf("%d", len(arch.ComponentTypes)))
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
				}
				imgui.EndTable()
			}
			imgui.TreePop()
		}
	})
}

func (p *StatsPanel) renderSystems(stats ecs.SchedulerStats) {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("System")
	imgui.TableSetupColumn("Runs")
	imgui.TableSetupColumn("Skips")
	imgui.TableSetupColumn("Avg")
	imgui.TableHeadersRow()
	for _, s := range stats.Systems {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(s.Name)
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", s.ExecutionCount))
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", s.SkipCount))
		imgui.TableNextColumn()
		imgui.Text(s.AvgDuration.String())
	}
	imgui.EndTable()
}
