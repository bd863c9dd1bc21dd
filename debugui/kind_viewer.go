package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/tessel/ecs"
)

// Kind viewer columns.
const (
	ColumnKind = iota
	ColumnSubtype
	ColumnEntities
)

// SortKinds orders component stats by a kind viewer column.
func SortKinds(rows []ecs.ComponentStats, column int, ascending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		var less bool

		switch column {
		case ColumnKind:
			less = a.Key.Kind < b.Key.Kind
		case ColumnSubtype:
			less = a.Key.Subtype < b.Key.Subtype
		default:
			less = a.EntityCount < b.EntityCount
		}

		if !ascending {
			return !less
		}
		return less
	})
}

// KindViewer tabulates how many entities carry each component key.
type KindViewer struct {
	registry      *ecs.Registry
	sortColumn    int
	sortAscending bool
}

func NewKindViewer(registry *ecs.Registry) *KindViewer {
	return &KindViewer{
		registry:   registry,
		sortColumn: ColumnEntities,
	}
}

func (kv *KindViewer) Render() {
	if !imgui.BeginV("Component Kinds", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	rows := kv.registry.CollectStats().Components

	maxEntityCount := 0
	for _, row := range rows {
		if row.EntityCount > maxEntityCount {
			maxEntityCount = row.EntityCount
		}
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("KindTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Subtype")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			kv.sortColumn = int(spec.ColumnIndex())
			kv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}
		SortKinds(rows, kv.sortColumn, kv.sortAscending)

		for _, row := range rows {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			imgui.Text(row.Key.Kind)

			imgui.TableNextColumn()
			imgui.Text(row.Key.Subtype)

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(row.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
}
