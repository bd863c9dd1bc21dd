// Package debugui provides Dear ImGui inspector windows for a running
// engine.Context. Windows are ImguiItem components on entities of their own
// and are rendered by ImguiSystem.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/tessel/ecs"
)

// ItemKind is the component kind of ImguiItem.
const ItemKind = "ImguiItem"

// SceneID tags the entities holding debug windows. It is never registered
// with the scene registry, so the windows stay out of scene queries and
// snapshots.
const SceneID = -1

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	ecs.Base
	Render func()
}

// NewImguiItem returns an ImguiItem. The name becomes the component's
// subtype so one entity can carry several windows.
func NewImguiItem(name string, render func()) *ImguiItem {
	return &ImguiItem{Base: ecs.NewBase(ItemKind, name), Render: render}
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Capture matches input.Capture so the state can gate the dispatcher.
func (s *ImguiInputState) Capture() (mouse, keyboard bool) {
	return s.WantCaptureMouse, s.WantCaptureKeyboard
}

// ImguiSystem queries all ImguiItem components and defers their render
// functions. It also updates the ImguiInputState singleton.
type ImguiSystem struct {
	Items      ecs.Query[*ImguiItem]
	InputState ecs.Singleton[ImguiInputState]

	// Capture reports the current capture state. Nil reads imgui.CurrentIO.
	Capture func() (mouse, keyboard bool)
}

// Execute updates input state and queues all ImGui render functions for
// execution after the frame's systems.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	capture := i.Capture
	if capture == nil {
		capture = currentCapture
	}
	state := i.InputState.Get()
	state.WantCaptureMouse, state.WantCaptureKeyboard = capture()

	// Query yields one component per entity; an entity may hold several
	// windows.
	for e := range i.Items.Iter() {
		for _, c := range e.Components() {
			if item, ok := c.(*ImguiItem); ok && item.Render != nil {
				frame.Commands.Defer(item.Render)
			}
		}
	}
}

func currentCapture() (bool, bool) {
	io := imgui.CurrentIO()
	return io.WantCaptureMouse(), io.WantCaptureKeyboard()
}
