package ecs

import "reflect"

// Commands buffers structural changes made by systems. The scheduler flushes
// it after every system has run, so queries never see a half-applied frame.
type Commands struct {
	spawns  []spawnCommand
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type spawnCommand struct {
	components []any
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Delete queues an entity deletion operation.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Flush applies the buffered commands to storage and resets the buffer.
// Deletes run first, then removes, adds, spawns and deferred functions.
// Mutations follow an entity across the archetype moves earlier commands
// caused, and mutations aimed at a deleted entity are dropped.
func (c *Commands) Flush(storage *Storage) {
	current := make(map[EntityId]EntityId)
	resolve := func(id EntityId) (EntityId, bool) {
		if moved, ok := current[id]; ok {
			id = moved
		}
		return id, id != 0 && storage.Exists(id)
	}

	for _, id := range c.deletes {
		storage.Delete(id)
		current[id] = 0
	}

	for _, cmd := range c.removes {
		if id, ok := resolve(cmd.entity); ok {
			current[cmd.entity] = storage.RemoveComponent(id, cmd.compType)
		}
	}

	for _, cmd := range c.adds {
		if id, ok := resolve(cmd.entity); ok {
			current[cmd.entity] = storage.AddComponent(id, cmd.component)
		}
	}

	for _, cmd := range c.spawns {
		storage.Spawn(cmd.components...)
	}

	for _, df := range c.defers {
		df.fn()
	}

	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
