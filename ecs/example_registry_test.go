package ecs_test

import (
	"fmt"

	"github.com/plus3/tessel/ecs"
)

// ExampleRegistry shows creating entities, looking components up by kind and
// subtype, and destroying entities with a hook.
func ExampleRegistry() {
	r := ecs.NewRegistry()
	r.OnDestroy(func(e *ecs.Entity) {
		fmt.Println("destroying", e.Name)
	})

	id, _ := r.Create("hero", 0, NewHealth(7, 10), NewSprite("Image", "hero.png"))
	_, _ = r.Create("villain", 0, NewHealth(3, 3))

	c, _ := r.GetComponent(id, "Renderer", "Image")
	image, _ := c.Fields().Get("image")
	fmt.Println(image)

	_ = r.Destroy(id)
	fmt.Println(r.Len())
	// Output:
	// hero.png
	// destroying hero
	// 1
}

// ExampleFields shows a composing accessor: reads go through the getter
// while Load still sees the raw stored value.
func ExampleFields() {
	var fs ecs.Fields
	base := 10.0
	fs.AddPublic("width", 2.0, ecs.WithGetter(func() any {
		raw, _ := ecs.LoadAs[float64](&fs, "width")
		return raw * base
	}))

	v, _ := fs.Get("width")
	raw, _ := fs.Load("width")
	fmt.Println(v, raw)
	// Output: 20 2
}
