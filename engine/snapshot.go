package engine

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/plus3/tessel/ecs"
	"github.com/plus3/tessel/scene"
)

type sceneSnapshot struct {
	ID       int              `json:"id"`
	Name     string           `json:"name"`
	Active   bool             `json:"active"`
	Entities []entitySnapshot `json:"entities"`
}

type entitySnapshot struct {
	GUID       string            `json:"guid"`
	ID         uint64            `json:"id"`
	Name       string            `json:"name"`
	Scene      int               `json:"scene"`
	Components []json.RawMessage `json:"components"`
}

// Snapshot writes every entity of a scene, with its components, as indented
// JSON.
func (c *Context) Snapshot(w io.Writer, id scene.ID) error {
	s, err := c.Scenes.ByID(id)
	if err != nil {
		return err
	}

	snap := sceneSnapshot{
		ID:       int(s.ID),
		Name:     s.Name,
		Active:   s.Active(),
		Entities: []entitySnapshot{},
	}
	for e := range c.Entities.InScene(int(id)) {
		es, err := snapshotEntity(e)
		if err != nil {
			return err
		}
		snap.Entities = append(snap.Entities, es)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

func snapshotEntity(e *ecs.Entity) (entitySnapshot, error) {
	es := entitySnapshot{
		GUID:       e.GUID().String(),
		ID:         uint64(e.ID()),
		Name:       e.Name,
		Scene:      e.SceneID,
		Components: make([]json.RawMessage, 0, len(e.Components())),
	}
	for _, comp := range e.Components() {
		data, err := json.Marshal(comp)
		if err != nil {
			return es, fmt.Errorf("engine: snapshot %s on %q: %w", comp.Key(), e.Name, err)
		}
		es.Components = append(es.Components, data)
	}
	return es, nil
}
