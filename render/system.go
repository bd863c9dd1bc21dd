package render

import (
	"sort"

	"github.com/plus3/tessel/camera"
	"github.com/plus3/tessel/ecs"
	"github.com/plus3/tessel/scene"
	"github.com/plus3/tessel/transform"
)

// System draws the active scene: renderers in world space through the main
// camera, then GUI elements in screen space ordered by z-layer.
type System struct {
	entities *ecs.Registry
	scenes   *scene.Registry
	cameras  *camera.Rig

	gui []guiItem
}

type guiItem struct {
	element GUIElement
	t       *transform.Transform
}

func NewSystem(entities *ecs.Registry, scenes *scene.Registry, cameras *camera.Rig) *System {
	return &System{entities: entities, scenes: scenes, cameras: cameras}
}

// WorldSurface returns surface as seen through the main camera, or surface
// itself when there is no main camera.
func (s *System) WorldSurface(surface Surface) Surface {
	cam, t, err := s.cameras.Main()
	if err != nil {
		return surface
	}
	return Projected(surface, cam, t.Position())
}

// Draw renders one frame onto surface.
func (s *System) Draw(surface Surface) {
	world := s.WorldSurface(surface)
	s.gui = s.gui[:0]

	for e := range s.entities.InScene(int(s.scenes.ActiveID())) {
		t, ok := transform.Of(e)
		if !ok {
			continue
		}
		for _, c := range e.Components() {
			switch c := c.(type) {
			case Renderer:
				c.Draw(world, t)
			case GUIElement:
				s.gui = append(s.gui, guiItem{element: c, t: t})
			}
		}
	}

	sort.SliceStable(s.gui, func(i, j int) bool {
		return s.gui[i].element.ZLayer() < s.gui[j].element.ZLayer()
	})
	for _, item := range s.gui {
		item.element.Draw(surface, item.t)
	}
}
