package zorkvm

// HookContext is what a hook or handler is given to work with: proxies for
// the current item/location/player, a read-only engine handle, and the
// registry of before/after/onEnter hooks (spec §4.5).
type HookContext struct {
	Engine   *Engine
	Comp     *ComputedProperties
	Location LocationProxy
	Player   PlayerProxy
	Hooks    *HookRegistry
}

// HandlerFunc is the "registry mapping (EntityID, VerbIntent) → handler
// function" option from spec §9: a before/after hook or a default handler.
type HandlerFunc func(ctx *HookContext, cmd Command) *ActionResult

type itemHookKey struct {
	Item   ItemID
	Intent Intent
}

type locationHookKey struct {
	Location LocationID
	Intent   Intent
}

// HookRegistry holds before/after handlers keyed by (entity, Intent),
// consulted by Dispatch ahead of and behind the default handler (spec §4.5).
type HookRegistry struct {
	beforeItem     map[itemHookKey]HandlerFunc
	afterItem      map[itemHookKey]HandlerFunc
	beforeLocation map[locationHookKey]HandlerFunc
	afterLocation  map[locationHookKey]HandlerFunc
	onEnter        map[LocationID]HandlerFunc
}

// NewHookRegistry constructs an empty registry.
func NewHookRegistry() *HookRegistry {
	return &HookRegistry{
		beforeItem:     make(map[itemHookKey]HandlerFunc),
		afterItem:      make(map[itemHookKey]HandlerFunc),
		beforeLocation: make(map[locationHookKey]HandlerFunc),
		afterLocation:  make(map[locationHookKey]HandlerFunc),
		onEnter:        make(map[LocationID]HandlerFunc),
	}
}

// BeforeItem registers a pre-dispatch hook for (item, intent).
func (h *HookRegistry) BeforeItem(id ItemID, intent Intent, fn HandlerFunc) {
	h.beforeItem[itemHookKey{id, intent}] = fn
}

// AfterItem registers a post-dispatch hook for (item, intent).
func (h *HookRegistry) AfterItem(id ItemID, intent Intent, fn HandlerFunc) {
	h.afterItem[itemHookKey{id, intent}] = fn
}

// BeforeLocation registers a pre-dispatch hook for (location, intent).
func (h *HookRegistry) BeforeLocation(id LocationID, intent Intent, fn HandlerFunc) {
	h.beforeLocation[locationHookKey{id, intent}] = fn
}

// AfterLocation registers a post-dispatch hook for (location, intent).
func (h *HookRegistry) AfterLocation(id LocationID, intent Intent, fn HandlerFunc) {
	h.afterLocation[locationHookKey{id, intent}] = fn
}

// OnEnter registers a handler run after the player's location changes to id
// as part of the movement protocol (spec §4.5).
func (h *HookRegistry) OnEnter(id LocationID, fn HandlerFunc) {
	h.onEnter[id] = fn
}

// LookupOnEnter returns the onEnter handler registered for id, if any.
func (h *HookRegistry) LookupOnEnter(id LocationID) (HandlerFunc, bool) {
	if h == nil {
		return nil, false
	}
	fn, ok := h.onEnter[id]
	return fn, ok
}

// Dispatcher runs the five-phase action-dispatch pipeline (spec §4.5) against
// a HookRegistry and a table of default verb handlers.
type Dispatcher struct {
	engine   *Engine
	comp     *ComputedProperties
	hooks    *HookRegistry
	defaults map[Intent]HandlerFunc
}

// NewDispatcher constructs a Dispatcher. defaults is typically DefaultHandlers.
func NewDispatcher(e *Engine, comp *ComputedProperties, hooks *HookRegistry, defaults map[Intent]HandlerFunc) *Dispatcher {
	return &Dispatcher{engine: e, comp: comp, hooks: hooks, defaults: defaults}
}

func (d *Dispatcher) context() *HookContext {
	player := PlayerProxyFor(d.engine, d.comp)
	return &HookContext{
		Engine:   d.engine,
		Comp:     d.comp,
		Location: player.Location(),
		Player:   player,
		Hooks:    d.hooks,
	}
}

// Dispatch runs the five-phase pipeline for cmd: location beforeTurn, direct-
// object before, indirect-object before, default handler, then the after
// phase (item after hooks, then location afterTurn). Execution short-circuits
// on the first ActionResult whose Control is ControlOverride; a
// ControlContinue result has its message/changes folded in and the pipeline
// keeps going (spec §4.5).
func (d *Dispatcher) Dispatch(cmd Command) ActionResult {
	ctx := d.context()
	var acc *ActionResult

	phases := []func() *ActionResult{
		func() *ActionResult { return d.locationHook(d.hooks.beforeLocation, ctx, cmd) },
		func() *ActionResult { return d.itemHook(d.hooks.beforeItem, ctx, cmd, cmd.DirectObject) },
		func() *ActionResult { return d.itemHook(d.hooks.beforeItem, ctx, cmd, cmd.IndirectObject) },
		func() *ActionResult { return d.runDefault(ctx, cmd) },
		func() *ActionResult { return d.itemHook(d.hooks.afterItem, ctx, cmd, cmd.DirectObject) },
		func() *ActionResult { return d.locationHook(d.hooks.afterLocation, ctx, cmd) },
	}

	for _, phase := range phases {
		result := phase()
		if result == nil {
			continue
		}
		acc = mergeResults(acc, result)
		if result.Control == ControlOverride {
			break
		}
	}

	if acc == nil {
		return ActionResult{Control: ControlContinue}
	}
	return *acc
}

func (d *Dispatcher) locationHook(table map[locationHookKey]HandlerFunc, ctx *HookContext, cmd Command) *ActionResult {
	fn, ok := table[locationHookKey{ctx.Location.ID(), cmd.Intent}]
	if !ok {
		return nil
	}
	return fn(ctx, cmd)
}

func (d *Dispatcher) itemHook(table map[itemHookKey]HandlerFunc, ctx *HookContext, cmd Command, ref *EntityReference) *ActionResult {
	if ref == nil || ref.Kind != RefItem {
		return nil
	}
	fn, ok := table[itemHookKey{ref.Item, cmd.Intent}]
	if !ok {
		return nil
	}
	return fn(ctx, cmd)
}

func (d *Dispatcher) runDefault(ctx *HookContext, cmd Command) *ActionResult {
	fn, ok := d.defaults[cmd.Intent]
	if !ok {
		return Msg("You can't do that.")
	}
	return fn(ctx, cmd)
}
