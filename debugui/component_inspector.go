package debugui

import (
	"fmt"
	"image/color"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/plus3/tessel/ecs"
	"github.com/plus3/tessel/engine"
	"github.com/plus3/tessel/transform"
)

// ComponentInspector shows the public fields of the selected entity's
// components. Edits are written with Fields.Set so interceptors run.
type ComponentInspector struct {
	ctx       *engine.Context
	selection *ecs.Singleton[Selection]
}

func NewComponentInspector(ctx *engine.Context) *ComponentInspector {
	return &ComponentInspector{
		ctx:       ctx,
		selection: ecs.NewSingleton[Selection](ctx.Entities),
	}
}

func (ci *ComponentInspector) Render() {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	sel := ci.selection.Get()
	if !sel.Valid {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	e, err := ci.ctx.Entities.Entity(sel.ID)
	if err != nil {
		imgui.Text(fmt.Sprintf("Entity %d not found", sel.ID))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", e.ID()))
	imgui.Text(fmt.Sprintf("Name: %s", e.Name))
	imgui.Text(fmt.Sprintf("GUID: %s", e.GUID()))
	imgui.Text(fmt.Sprintf("Scene: %d", e.SceneID))
	imgui.Separator()

	for _, c := range e.Components() {
		if imgui.TreeNodeStr(fmt.Sprintf("%s##%d", c.Key(), e.ID())) {
			ci.renderComponent(c)
			imgui.TreePop()
		}
	}

	imgui.End()
}

func (ci *ComponentInspector) renderComponent(c ecs.Component) {
	fields := c.Fields()
	for _, f := range fields.List() {
		// Intercepted fields are edited in storage terms; the resolved value
		// is shown alongside.
		current := f.Load()
		if v, ok := editValue(f.Name, current); ok {
			if err := fields.Set(f.Name, v); err != nil {
				ci.ctx.Log.Warn("inspector edit failed", zap.String("field", f.Name), zap.Error(err))
			}
		}
		if f.Intercepted() {
			if resolved := f.Get(); FormatValue(resolved) != FormatValue(current) {
				imgui.Text(fmt.Sprintf("  resolved: %s", FormatValue(resolved)))
			}
		}
		if f.Description != "" {
			imgui.Text(fmt.Sprintf("  %s", f.Description))
		}
	}
}

// editValue draws an editor for v and returns the new value when it changed.
func editValue(name string, v any) (any, bool) {
	switch val := v.(type) {
	case float64:
		f := float32(val)
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &f) {
			return float64(f), true
		}

	case int:
		i := int32(val)
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &i) {
			return int(i), true
		}

	case bool:
		if imgui.Checkbox(name, &val) {
			return val, true
		}

	case string:
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &val, imgui.InputTextFlagsNone, nil) {
			return val, true
		}

	case mgl64.Vec3:
		if editFloats(name, val[:]) {
			return val, true
		}

	case mgl64.Vec2:
		if editFloats(name, val[:]) {
			return val, true
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %s", name, FormatValue(v)))
	}
	return nil, false
}

var axisNames = [...]string{"x", "y", "z"}

// editFloats draws one input per element and writes edits back into xs.
func editFloats(name string, xs []float64) bool {
	imgui.Text(fmt.Sprintf("%s:", name))
	changed := false
	for i := range xs {
		f := float32(xs[i])
		imgui.SameLine()
		imgui.SetNextItemWidth(70)
		if imgui.InputFloat(fmt.Sprintf("##%s.%s", name, axisNames[i]), &f) {
			xs[i] = float64(f)
			changed = true
		}
	}
	return changed
}

// FormatValue renders a field value for display.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case mgl64.Vec3:
		return fmt.Sprintf("(%.2f, %.2f, %.2f)", val.X(), val.Y(), val.Z())
	case mgl64.Vec2:
		return fmt.Sprintf("(%.2f, %.2f)", val.X(), val.Y())
	case color.RGBA:
		return fmt.Sprintf("#%02x%02x%02x%02x", val.R, val.G, val.B, val.A)
	case transform.SceneParent:
		return fmt.Sprintf("scene %d", int(val))
	case ecs.Component:
		if e := val.Entity(); e != nil {
			return fmt.Sprintf("%s of %s", val.Key(), e.Name)
		}
		return fmt.Sprintf("%s (detached)", val.Key())
	case float64:
		return fmt.Sprintf("%.3f", val)
	}
	return fmt.Sprintf("%v", v)
}
