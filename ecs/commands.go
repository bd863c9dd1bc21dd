package ecs

// Commands buffers structural changes made while systems iterate the
// registry. They are applied at the end of the frame.
type Commands struct {
	creates  []createCommand
	destroys []EntityId
	adds     []addComponentCommand
	removes  []removeComponentCommand
	defers   []func()
	errs     []error
}

func newCommands() *Commands {
	return &Commands{}
}

type createCommand struct {
	name       string
	sceneID    int
	components []Component
	done       func(EntityId)
}

type addComponentCommand struct {
	entity    EntityId
	component Component
}

type removeComponentCommand struct {
	entity EntityId
	key    Key
}

// Defer queues a function to run after every other command.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Create queues an entity creation. done, when not nil, receives the new id.
func (c *Commands) Create(name string, sceneID int, done func(EntityId), components ...Component) {
	c.creates = append(c.creates, createCommand{
		name:       name,
		sceneID:    sceneID,
		components: components,
		done:       done,
	})
}

// Destroy queues an entity destruction.
func (c *Commands) Destroy(entity EntityId) {
	c.destroys = append(c.destroys, entity)
}

// AddComponent queues a component attachment.
func (c *Commands) AddComponent(entity EntityId, component Component) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal by exact key.
func (c *Commands) RemoveComponent(entity EntityId, key Key) {
	c.removes = append(c.removes, removeComponentCommand{
		entity: entity,
		key:    key,
	})
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.creates) + len(c.destroys) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies queued commands in order: destroys, removes, adds, creates,
// then deferred functions. Commands targeting an entity destroyed in the same
// flush are dropped. Errors are collected and returned by Errors.
func (c *Commands) Flush(registry *Registry) {
	destroyed := make(map[EntityId]bool)

	for _, id := range c.destroys {
		if err := registry.Destroy(id); err != nil {
			c.errs = append(c.errs, err)
		}
		destroyed[id] = true
	}

	for _, cmd := range c.removes {
		if destroyed[cmd.entity] {
			continue
		}
		if _, err := registry.RemoveComponent(cmd.entity, cmd.key); err != nil {
			c.errs = append(c.errs, err)
		}
	}

	for _, cmd := range c.adds {
		if destroyed[cmd.entity] {
			continue
		}
		if err := registry.AddComponent(cmd.entity, cmd.component); err != nil {
			c.errs = append(c.errs, err)
		}
	}

	for _, cmd := range c.creates {
		id, err := registry.Create(cmd.name, cmd.sceneID, cmd.components...)
		if err != nil {
			c.errs = append(c.errs, err)
			continue
		}
		if cmd.done != nil {
			cmd.done(id)
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	c.creates = c.creates[:0]
	c.destroys = c.destroys[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}

// Errors returns and clears the errors collected by previous flushes.
func (c *Commands) Errors() []error {
	errs := c.errs
	c.errs = nil
	return errs
}
