package debugui

import (
	"github.com/plus3/tessel/ecs"
	"github.com/plus3/tessel/engine"
)

// Spawn registers ImguiSystem with the Context's scheduler, gates the input
// dispatcher on ImGui's capture state and creates the inspector windows.
func Spawn(ctx *engine.Context) (ecs.EntityId, error) {
	ctx.Scheduler.Register(&ImguiSystem{})

	state := ecs.NewSingleton[ImguiInputState](ctx.Entities)
	ctx.Dispatcher.SetCapture(state.Get().Capture)

	return ctx.Entities.Create("debugui", SceneID,
		NewImguiItem("Hierarchy", NewHierarchyBrowser(ctx).Render),
		NewImguiItem("Inspector", NewComponentInspector(ctx).Render),
		NewImguiItem("Scenes", NewSceneSwitcher(ctx).Render),
		NewImguiItem("Kinds", NewKindViewer(ctx.Entities).Render),
		NewImguiItem("Performance", NewPerformanceStats(ctx.Entities, ctx.Scheduler, 120).Render),
	)
}
