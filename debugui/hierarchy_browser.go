package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/plus3/tessel/ecs"
	"github.com/plus3/tessel/engine"
	"github.com/plus3/tessel/scene"
	"github.com/plus3/tessel/transform"
)

// Selection is the entity picked in the hierarchy browser, shared with the
// component inspector as a singleton.
type Selection struct {
	ID    ecs.EntityId
	Valid bool
}

func (s *Selection) Set(id ecs.EntityId) {
	s.ID, s.Valid = id, true
}

func (s *Selection) Clear() {
	*s = Selection{}
}

// TreeRow is one line of the hierarchy browser.
type TreeRow struct {
	Entity   *ecs.Entity
	Depth    int
	Children int
}

// HierarchyRows flattens a scene's transform tree depth first, roots in
// creation order. A non-empty filter keeps only entities whose name contains
// it (case-insensitive) and flattens the result to depth zero.
func HierarchyRows(h *transform.Hierarchy, id scene.ID, filter string) []TreeRow {
	var rows []TreeRow
	var walk func(t *transform.Transform, depth int)
	walk = func(t *transform.Transform, depth int) {
		children := t.Children()
		rows = append(rows, TreeRow{Entity: t.Entity(), Depth: depth, Children: len(children)})
		for _, c := range children {
			if ct, ok := transform.Of(c); ok {
				walk(ct, depth+1)
			}
		}
	}
	for _, root := range h.Roots(id) {
		walk(root, 0)
	}

	if filter == "" {
		return rows
	}
	needle := strings.ToLower(filter)
	filtered := rows[:0]
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Entity.Name), needle) {
			row.Depth = 0
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// HierarchyBrowser lists every scene's transform tree and lets one entity be
// selected, detached or destroyed.
type HierarchyBrowser struct {
	ctx        *engine.Context
	selection  *ecs.Singleton[Selection]
	filterText string
}

func NewHierarchyBrowser(ctx *engine.Context) *HierarchyBrowser {
	return &HierarchyBrowser{
		ctx:       ctx,
		selection: ecs.NewSingleton[Selection](ctx.Entities),
	}
}

func (hb *HierarchyBrowser) Render() {
	if !imgui.BeginV("Hierarchy", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##filter", "Filter by name...", &hb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		hb.filterText = ""
	}

	sel := hb.selection.Get()
	if sel.Valid {
		if _, err := hb.ctx.Entities.Entity(sel.ID); err != nil {
			sel.Clear()
		}
	}

	for s := range hb.ctx.Scenes.All() {
		label := s.String()
		if s.Active() {
			label += " [active]"
		}
		if !imgui.TreeNodeStr(label) {
			continue
		}
		hb.renderRows(HierarchyRows(hb.ctx.Hierarchy, s.ID, hb.filterText), sel)
		imgui.TreePop()
	}

	imgui.Separator()
	if !sel.Valid {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Selected: %d", sel.ID))
	imgui.SameLine()
	if imgui.Button("Detach") {
		if e, err := hb.ctx.Entities.Entity(sel.ID); err == nil {
			if t, ok := transform.Of(e); ok {
				t.DetachFromParent()
			}
		}
	}
	imgui.SameLine()
	if imgui.Button("Destroy") {
		if err := hb.ctx.Destroy(sel.ID); err != nil {
			hb.ctx.Log.Warn("destroy from hierarchy browser failed", zap.Error(err))
		}
		sel.Clear()
	}

	imgui.End()
}

func (hb *HierarchyBrowser) renderRows(rows []TreeRow, sel *Selection) {
	depth := 0
	for _, row := range rows {
		for ; depth < row.Depth; depth++ {
			imgui.Indent()
		}
		for ; depth > row.Depth; depth-- {
			imgui.Unindent()
		}

		label := fmt.Sprintf("%s##%d", row.Entity.Name, row.Entity.ID())
		if row.Children > 0 {
			label = fmt.Sprintf("%s (%d)##%d", row.Entity.Name, row.Children, row.Entity.ID())
		}
		selected := sel.Valid && sel.ID == row.Entity.ID()
		if imgui.SelectableBoolV(label, selected, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
			sel.Set(row.Entity.ID())
		}
	}
	for ; depth > 0; depth-- {
		imgui.Unindent()
	}
}
