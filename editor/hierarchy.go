package editor

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/sandbox/ecs"
	"github.com/plus3/sandbox/engine"
	"github.com/plus3/sandbox/scene"
)

// DisplayName is the entity's Name, or "Entity <id>" when it has none.
func DisplayName(storage *ecs.Storage, id ecs.EntityId) string {
	if name := ecs.ReadComponent[engine.Name](storage, id); name != nil && *name != "" {
		return string(*name)
	}
	return fmt.Sprintf("Entity %d", id)
}

// HierarchyPanel lists scene entities as a tree built from Parent links.
type HierarchyPanel struct {
	Storage   *ecs.Storage
	Selection *Selection
	Policy    scene.Policy

	OnEdit func()

	filter  string
	created int
}

// AddEntity spawns a gray 32x32 sprite at the origin named "Entity N" and
// selects it.
func (h *HierarchyPanel) AddEntity() ecs.EntityId {
	h.created++
	id := h.Storage.Spawn(
		engine.Name(fmt.Sprintf("Entity %d", h.created)),
		engine.NewTransform(0, 0),
		engine.Sprite{Color: engine.Gray, Width: 32, Height: 32},
	)
	h.Selection.Select(h.Storage, id)
	h.edited()
	return id
}

// DeleteSelected despawns the selected entity and its descendants and
// returns how many entities were removed.
func (h *HierarchyPanel) DeleteSelected() int {
	id, ok := h.Selection.Entity(h.Storage)
	if !ok {
		return 0
	}
	n := engine.DespawnRecursive(h.Storage, id)
	h.Selection.Clear()
	h.edited()
	return n
}

// Visible returns the entity tree the panel shows, restricted to entities
// the scene policy saves.
func (h *HierarchyPanel) Visible() *engine.Hierarchy {
	return engine.BuildHierarchy(h.Storage, h.Policy.Entities(h.Storage))
}

func (h *HierarchyPanel) edited() {
	if h.OnEdit != nil {
		h.OnEdit()
	}
}

// matches reports whether id or any of its descendants has a name
// containing filter, ignoring case.
func (h *HierarchyPanel) matches(tree *engine.Hierarchy, id ecs.EntityId, filter string) bool {
	if filter == "" || strings.Contains(strings.ToLower(DisplayName(h.Storage, id)), filter) {
		return true
	}
	for _, c := range tree.Children(id) {
		if h.matches(tree, c, filter) {
			return true
		}
	}
	return false
}

func (h *HierarchyPanel) Render() {
	window("Hierarchy", nil, func() {
		if imgui.Button("Add Entity") {
			h.AddEntity()
		}
		imgui.SameLine()
		if imgui.Button("Delete") {
			h.DeleteSelected()
		}
		imgui.InputTextWithHint("##filter", "Filter...", &h.filter, imgui.InputTextFlagsNone, nil)
		imgui.Separator()

		tree := h.Visible()
		if len(tree.Roots) == 0 {
			imgui.Text("No entities")
			return
		}
		filter := strings.ToLower(h.filter)
		for _, id := range tree.Roots {
			h.renderNode(tree, id, filter)
		}
	})
}

func (h *HierarchyPanel) renderNode(tree *engine.Hierarchy, id ecs.EntityId, filter string) {
	if !h.matches(tree, id, filter) {
		return
	}
	label := fmt.Sprintf("%s##%d", DisplayName(h.Storage, id), id)
	children := tree.Children(id)
	if len(children) == 0 {
		if imgui.SelectableBoolV(label, h.Selection.Is(h.Storage, id), imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
			h.Selection.Select(h.Storage, id)
		}
		return
	}

	open := imgui.TreeNodeStr(label)
	imgui.SameLine()
	if imgui.Button(fmt.Sprintf("select##%d", id)) {
		h.Selection.Select(h.Storage, id)
	}
	if open {
		for _, c := range children {
			h.renderNode(tree, c, filter)
		}
		imgui.TreePop()
	}
}
