package core

import (
	"maps"
	"slices"

	"github.com/terramach/terramach/pkg/logging"
	"github.com/terramach/terramach/pkg/tree"
)

// flushBuild rebuilds the nodes scheduled for build, parents first. Builds
// may schedule more nodes; the loop runs until the set stays empty.
func (t *RenderTree) flushBuild() int {
	built := 0
	for len(t.needBuild) > 0 {
		dirty := t.sortedByDepth(slices.Collect(maps.Keys(t.needBuild)))
		clear(t.needBuild)
		for _, id := range dirty {
			if !t.widgets.Contains(id) {
				continue
			}
			t.invalidateLayout(id)
			t.buildWidget(id, &built)
		}
	}
	return built
}

// buildWidget mounts or updates id, builds it and reconciles the new child
// list against the old one by position. Every child matched by type keeps
// its node and state and is updated and built again.
func (t *RenderTree) buildWidget(id tree.ID, built *int) {
	state, ok := t.states[id]
	if ok && !state.needBuild {
		return
	}
	if !ok {
		state = newWidgetState(t.clock)
		t.states[id] = state
	}
	widget, _ := t.widgets.Node(id)
	if state.mounted {
		widget.Update(state.context, &UpdateContext{nodeContext{tree: t, id: id}})
	} else {
		state.mounted = true
		mount := &MountContext{nodeContext: nodeContext{tree: t, id: id}}
		widget.Mount(state.context, mount)
		state.texture, state.hasTexture = mount.texture, mount.hasTexture
	}

	build := &BuildContext{emitter: state.events.Emitter()}
	widget.Build(state.context, build)
	state.needBuild = false
	state.needLayout = true
	state.needPaint = true
	t.needPaint = true
	t.invalidateRequests(id)
	*built++

	old := slices.Clone(t.Children(id))
	for i, child := range build.children {
		if i >= len(old) {
			t.buildWidget(t.widgets.Insert(child, id), built)
			continue
		}
		oldID := old[i]
		previous, _ := t.widgets.Node(oldID)
		if Same(child, previous) {
			// Matched children always update so they can re-read their
			// ancestors, even when their own fields are equal.
			t.widgets.Replace(oldID, child)
			if childState, ok := t.states[oldID]; ok {
				childState.needBuild = true
			}
			t.buildWidget(oldID, built)
			continue
		}
		t.removeSubtree(oldID)
		t.buildWidget(t.widgets.InsertAt(child, id, i), built)
	}
	if len(old) > len(build.children) {
		for _, oldID := range old[len(build.children):] {
			t.removeSubtree(oldID)
		}
	}
}

// removeSubtree removes id and its descendants and releases everything
// bound to them.
func (t *RenderTree) removeSubtree(id tree.ID) {
	for _, removed := range t.widgets.RemoveAll(id) {
		t.release(removed)
	}
}

func (t *RenderTree) release(id tree.ID) {
	if state, ok := t.states[id]; ok {
		state.context.CancelAllTimers()
		if state.hasTexture {
			t.pipeline.UnregisterTexture(state.texture)
			t.textureIDs.Give(int(state.texture))
			logging.Logger().Debug("texture unregistered", "node", int(id), "texture", int(state.texture))
		}
		delete(t.states, id)
	}
	delete(t.needBuild, id)
	delete(t.requestedFrame, id)
	delete(t.activeTimers, id)
	t.layerTree.DropKeyLayer(id)
}

// SetRoot replaces the root widget. The root node keeps its state when the
// type is unchanged.
func (t *RenderTree) SetRoot(root Widget) {
	previous, _ := t.widgets.Node(t.root)
	if Same(root, previous) {
		changed := !SameContent(root, previous)
		t.widgets.Replace(t.root, root)
		if changed {
			t.invalidateBuild(t.root)
		}
		return
	}
	t.removeSubtree(t.root)
	t.root = t.widgets.Insert(root, tree.Root)
	t.needBuild[t.root] = struct{}{}
}
