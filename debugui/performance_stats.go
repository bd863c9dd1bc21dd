package debugui

import (
	"fmt"
	"sort"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/tessel/ecs"
)

// FrameHistory is a fixed ring of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	index   int
	filled  int
}

func NewFrameHistory(size int) *FrameHistory {
	if size < 1 {
		size = 1
	}
	return &FrameHistory{samples: make([]float32, size)}
}

// Push records one frame time, overwriting the oldest once full.
func (h *FrameHistory) Push(ms float32) {
	h.samples[h.index] = ms
	h.index = (h.index + 1) % len(h.samples)
	if h.filled < len(h.samples) {
		h.filled++
	}
}

// Average is the mean of the recorded samples, or zero when empty.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, s := range h.Samples() {
		sum += s
	}
	return sum / float32(h.filled)
}

// Samples returns the recorded samples, oldest first.
func (h *FrameHistory) Samples() []float32 {
	if h.filled < len(h.samples) {
		return append([]float32(nil), h.samples[:h.filled]...)
	}
	out := make([]float32, 0, len(h.samples))
	out = append(out, h.samples[h.index:]...)
	return append(out, h.samples[:h.index]...)
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}

// PerformanceStats shows frame timing, registry counts and per-system
// scheduler timings.
type PerformanceStats struct {
	registry  *ecs.Registry
	scheduler *ecs.Scheduler
	timer     *FrameTimer
	history   *FrameHistory
}

func NewPerformanceStats(registry *ecs.Registry, scheduler *ecs.Scheduler, historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		registry:  registry,
		scheduler: scheduler,
		timer:     NewFrameTimer(),
		history:   NewFrameHistory(historyFrames),
	}
}

func (ps *PerformanceStats) Render() {
	ps.history.Push(ps.timer.GetDeltaTime() * 1000.0)

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := ps.registry.CollectStats()

	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.EntityCount))
	imgui.Text(fmt.Sprintf("Components: %d", stats.ComponentCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	avgFrameTime := ps.history.Average()
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	samples := ps.history.Samples()
	imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))

	if imgui.TreeNodeStr("Systems") {
		schedStats := ps.scheduler.GetStats()
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSizingFixedFit
		if imgui.BeginTableV("SystemStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg (ms)")
			imgui.TableSetupColumn("Min (ms)")
			imgui.TableSetupColumn("Max (ms)")
			imgui.TableHeadersRow()

			for _, sys := range schedStats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%.3f", millis(sys.AvgDuration)))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%.3f", millis(sys.MinDuration)))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%.3f", millis(sys.MaxDuration)))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Scenes") {
		ids := make([]int, 0, len(stats.SceneCounts))
		for id := range stats.SceneCounts {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			imgui.BulletText(fmt.Sprintf("scene %d: %d entities", id, stats.SceneCounts[id]))
		}
		imgui.TreePop()
	}

	imgui.End()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
