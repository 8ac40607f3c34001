package ecs_test

import (
	"testing"

	"github.com/plus3/sandbox/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type moving struct {
	*Position
	*Velocity
}

type named struct {
	Id       ecs.EntityId
	Position *Position
	Name     *Name `ecs:"optional"`
}

func TestViewGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[moving](storage)

	full := storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 3, DY: 4})
	partial := storage.Spawn(Position{X: 5})

	item := view.Get(full)
	require.NotNil(t, item)
	assert.Equal(t, float32(1), item.Position.X)
	assert.Equal(t, float32(4), item.Velocity.DY)

	item.Position.X = 10
	assert.Equal(t, float32(10), ecs.ReadComponent[Position](storage, full).X)

	assert.Nil(t, view.Get(partial))
	assert.Nil(t, view.Get(ecs.NewEntityId(999, 0)))

	storage.Delete(full)
	assert.Nil(t, view.Get(full))
}

func TestViewFill(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[named](storage)

	withName := storage.Spawn(Position{X: 1}, Name{Value: "probe"})
	without := storage.Spawn(Position{X: 2})
	velocityOnly := storage.Spawn(Velocity{DX: 1})

	var item named
	require.True(t, view.Fill(withName, &item))
	assert.Equal(t, withName, item.Id)
	require.NotNil(t, item.Name)
	assert.Equal(t, "probe", item.Name.Value)

	// Fill clears optional fields left over from the previous entity
	require.True(t, view.Fill(without, &item))
	assert.Equal(t, without, item.Id)
	assert.Nil(t, item.Name)
	assert.Equal(t, float32(2), item.Position.X)

	assert.False(t, view.Fill(velocityOnly, &item))
}

func TestViewGetRef(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[moving](storage)

	id := storage.Spawn(Position{X: 1})
	ref := storage.CreateEntityRef(id)
	assert.Nil(t, view.GetRef(ref))

	storage.AddComponent(id, Velocity{DX: 2})
	item := view.GetRef(ref)
	require.NotNil(t, item)
	assert.Equal(t, float32(2), item.Velocity.DX)

	resolved, _ := storage.ResolveEntityRef(ref)
	storage.Delete(resolved)
	assert.Nil(t, view.GetRef(ref))
	assert.Nil(t, view.GetRef(nil))
}

func TestViewIter(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[named](storage)

	a := storage.Spawn(Position{X: 1}, Name{Value: "a"})
	b := storage.Spawn(Position{X: 2}, Velocity{DX: 1})
	c := storage.Spawn(Position{X: 3}, Name{Value: "c"}, Health{Current: 1})
	gone := storage.Spawn(Position{X: 4})
	storage.Spawn(Velocity{DX: 5})
	storage.Delete(gone)

	seen := map[ecs.EntityId]string{}
	for id, item := range view.Iter() {
		assert.Equal(t, id, item.Id)
		name := ""
		if item.Name != nil {
			name = item.Name.Value
		}
		seen[id] = name
	}
	assert.Equal(t, map[ecs.EntityId]string{a: "a", b: "", c: "c"}, seen)

	count := 0
	for range view.Iter() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestViewValues(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[moving](storage)

	for i := range 130 {
		storage.Spawn(Position{X: float32(i)}, Velocity{DX: 1})
	}
	storage.Spawn(Position{}, Velocity{DX: 1}, Tag("extra"))

	for item := range view.Values() {
		item.Position.X += item.Velocity.DX
	}

	total := float32(0)
	count := 0
	for item := range view.Values() {
		total += item.Position.X
		count++
	}
	assert.Equal(t, 131, count)
	// sum(0..129) + 130 moves of 1 + the extra entity moved once
	assert.Equal(t, float32(8385+130+1), total)
}

func TestViewSpawn(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[named](storage)

	id := view.Spawn(named{Position: &Position{X: 7}, Name: &Name{Value: "built"}})
	assert.Equal(t, "built", ecs.ReadComponent[Name](storage, id).Value)
	assert.Equal(t, id.ArchetypeId(), storage.Spawn(Name{}, Position{}).ArchetypeId())

	bare := view.Spawn(named{Position: &Position{X: 8}})
	assert.Nil(t, ecs.ReadComponent[Name](storage, bare))
	assert.Equal(t, float32(8), ecs.ReadComponent[Position](storage, bare).X)

	assert.PanicsWithValue(t, "required component is nil in View.Spawn", func() {
		view.Spawn(named{Name: &Name{}})
	})
}

func TestViewDeclarationErrors(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { ecs.NewView[int](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct{ Position Position }](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct {
			A, B     ecs.EntityId
			Position *Position
		}](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct {
			Velocity *Velocity `ecs:"invalid"`
		}](storage)
	})
}
