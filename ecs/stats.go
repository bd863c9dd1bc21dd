package ecs

import "sort"

// RegistryStats is a point-in-time summary of a registry.
type RegistryStats struct {
	EntityCount    int
	ComponentCount int
	Components     []ComponentStats
	SceneCounts    map[int]int
	SingletonCount int
}

// ComponentStats counts the entities carrying one component key.
type ComponentStats struct {
	Key         Key
	EntityCount int
}

// CollectStats walks the registry and summarizes it. Components are ordered by key.
func (r *Registry) CollectStats() *RegistryStats {
	stats := &RegistryStats{
		EntityCount:    len(r.entities),
		SceneCounts:    make(map[int]int),
		SingletonCount: len(r.singletons),
	}

	counts := make(map[Key]int)
	for _, e := range r.entities {
		stats.SceneCounts[e.SceneID]++
		for _, c := range e.components {
			counts[c.Key()]++
			stats.ComponentCount++
		}
	}

	stats.Components = make([]ComponentStats, 0, len(counts))
	for key, n := range counts {
		stats.Components = append(stats.Components, ComponentStats{Key: key, EntityCount: n})
	}
	sort.Slice(stats.Components, func(i, j int) bool {
		return stats.Components[i].Key.String() < stats.Components[j].Key.String()
	})
	return stats
}
