package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/plus3/tessel/engine"
)

// SceneSwitcher lists registered scenes with their entity counts and
// activates the one clicked.
type SceneSwitcher struct {
	ctx *engine.Context
}

func NewSceneSwitcher(ctx *engine.Context) *SceneSwitcher {
	return &SceneSwitcher{ctx: ctx}
}

func (ss *SceneSwitcher) Render() {
	if !imgui.BeginV("Scenes", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	counts := ss.ctx.Entities.CollectStats().SceneCounts

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SceneTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("ID")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()

		for s := range ss.ctx.Scenes.All() {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", s.ID), s.Active(), imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) && !s.Active() {
				if err := ss.ctx.Scenes.SetActive(s.ID); err != nil {
					ss.ctx.Log.Warn("scene switch failed", zap.Error(err))
				}
			}

			imgui.TableNextColumn()
			imgui.Text(s.Name)

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", counts[int(s.ID)]))
		}

		imgui.EndTable()
	}

	imgui.End()
}
