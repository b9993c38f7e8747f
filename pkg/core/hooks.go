package core

// UseState returns the node's state as *T, creating it with init on the
// first call. The pointer stays valid for the lifetime of the node, so
// handlers can mutate it in place and mark the node for rebuild.
//
// Example:
//
//	func (c Counter) Build(ctx *core.WidgetContext, build *core.BuildContext) {
//	    count := core.UseState(ctx, func() int { return 0 })
//	    build.Add(widgets.Text{Content: strconv.Itoa(*count)})
//	}
//
//	func (c Counter) Event(ctx *core.WidgetContext, ev *core.EventContext) {
//	    if _, ok := ev.Event().(event.Tap); ok {
//	        *core.UseState(ctx, func() int { return 0 })++
//	        ev.MarkNeedBuild()
//	    }
//	}
func UseState[T any](ctx *WidgetContext, init func() T) *T {
	if state, ok := ctx.state.(*T); ok {
		return state
	}
	state := new(T)
	if init != nil {
		*state = init()
	}
	ctx.state = state
	return state
}

// StateOf returns the node's state when it holds a *T.
func StateOf[T any](ctx *WidgetContext) (*T, bool) {
	state, ok := ctx.state.(*T)
	return state, ok
}
