package ecs

// DestroyHook runs before an entity's components are dropped.
type DestroyHook func(w *World, e Entity)

// UnloadHook runs before a scene unload destroys the remaining entities.
type UnloadHook func(w *World)

// OnDestroy registers a hook called for every destroyed entity.
func (w *World) OnDestroy(hook DestroyHook) {
	if w == nil || hook == nil {
		return
	}
	w.destroyHooks = append(w.destroyHooks, hook)
}

// OnSceneUnload registers a hook called by UnloadScene.
func (w *World) OnSceneUnload(hook UnloadHook) {
	if w == nil || hook == nil {
		return
	}
	w.unloadHooks = append(w.unloadHooks, hook)
}

// UnloadScene runs the unload hooks and then destroys every entity.
func (w *World) UnloadScene() {
	if w == nil {
		return
	}
	for _, hook := range w.unloadHooks {
		hook(w)
	}
	for _, e := range w.entities.list() {
		DestroyEntity(w, e)
	}
}
