package zorkvm

import (
	"fmt"

	zygo "github.com/glycerine/zygomys/repl"
)

// Well-known property IDs consulted by the typed proxy accessors before
// falling back to the item/location's stored fields (spec §4.3 precedence).
const (
	PropName        ItemPropertyID = ".name"
	PropDescription ItemPropertyID = ".description"
	PropReadText    ItemPropertyID = ".readText"
	PropIsFighting  ItemPropertyID = ".isFighting"
)

// PropertyComputer resolves a dynamic value for one (entity, property) pair,
// taking precedence over the stored property bag (spec §4.3). It returns
// ok=false to mean "defer to the property bag / type default."
type PropertyComputer interface {
	Compute(ctx ComputeContext) (StateValue, bool)
}

// ComputeContext is what a PropertyComputer is given to work with.
type ComputeContext struct {
	Engine   *Engine
	ItemID   *ItemID
	LocationID *LocationID
	Property string
}

// FuncComputer adapts a Go closure to PropertyComputer — the "interface
// implemented per entity kind" option spec §9 names as an alternative to a
// registry of scripts.
type FuncComputer func(ctx ComputeContext) (StateValue, bool)

// Compute invokes the wrapped closure.
func (f FuncComputer) Compute(ctx ComputeContext) (StateValue, bool) { return f(ctx) }

// ComputedProperties is the per-world registry of property computers for
// items, locations, and the player (spec §4.3). Item computers are consulted
// by ItemProxy's Name, Description, ReadText and flag accessors, location
// computers by LocationProxy's Name and Description; no accessor consults
// the player computers.
type ComputedProperties struct {
	items     map[ItemID]map[ItemPropertyID]PropertyComputer
	locations map[LocationID]map[LocationPropertyID]PropertyComputer
	player    map[PlayerPropertyID]PropertyComputer
}

// NewComputedProperties constructs an empty registry.
func NewComputedProperties() *ComputedProperties {
	return &ComputedProperties{
		items:     make(map[ItemID]map[ItemPropertyID]PropertyComputer),
		locations: make(map[LocationID]map[LocationPropertyID]PropertyComputer),
		player:    make(map[PlayerPropertyID]PropertyComputer),
	}
}

// RegisterItem binds a computer to (item, property).
func (c *ComputedProperties) RegisterItem(id ItemID, prop ItemPropertyID, comp PropertyComputer) {
	if c.items[id] == nil {
		c.items[id] = make(map[ItemPropertyID]PropertyComputer)
	}
	c.items[id][prop] = comp
}

// RegisterLocation binds a computer to (location, property).
func (c *ComputedProperties) RegisterLocation(id LocationID, prop LocationPropertyID, comp PropertyComputer) {
	if c.locations[id] == nil {
		c.locations[id] = make(map[LocationPropertyID]PropertyComputer)
	}
	c.locations[id][prop] = comp
}

// RegisterPlayer binds a computer to a player property.
func (c *ComputedProperties) RegisterPlayer(prop PlayerPropertyID, comp PropertyComputer) {
	c.player[prop] = comp
}

// ComputeItem resolves a computed value for (item, property), if registered.
func (c *ComputedProperties) ComputeItem(id ItemID, prop ItemPropertyID, e *Engine) (StateValue, bool) {
	if c == nil {
		return StateValue{}, false
	}
	byProp, ok := c.items[id]
	if !ok {
		return StateValue{}, false
	}
	comp, ok := byProp[prop]
	if !ok {
		return StateValue{}, false
	}
	return comp.Compute(ComputeContext{Engine: e, ItemID: &id, Property: string(prop)})
}

// ComputeLocation resolves a computed value for (location, property), if registered.
func (c *ComputedProperties) ComputeLocation(id LocationID, prop LocationPropertyID, e *Engine) (StateValue, bool) {
	if c == nil {
		return StateValue{}, false
	}
	byProp, ok := c.locations[id]
	if !ok {
		return StateValue{}, false
	}
	comp, ok := byProp[prop]
	if !ok {
		return StateValue{}, false
	}
	return comp.Compute(ComputeContext{Engine: e, LocationID: &id, Property: string(prop)})
}

// LispPropertyComputer evaluates a small Zygomys expression to produce a
// property's value. Revived from the teacher's dead `lisp.go` stub
// (github.com/glycerine/zygomys/repl), repointed at the §4.3 property-
// computer seam instead of a REPL toy. Grounded on the same "sandbox,
// register functions, evaluate" shape the teacher sketched for `speak`.
type LispPropertyComputer struct {
	Source string
	Kind   ValueKind
}

// Compute evaluates the Lisp expression and converts its result to a StateValue.
func (l *LispPropertyComputer) Compute(ctx ComputeContext) (StateValue, bool) {
	env := zygo.NewGlispSandbox()
	env.StandardSetup()

	env.AddFunction("item-id", func(env *zygo.Glisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if ctx.ItemID == nil {
			return zygo.SexpNull, nil
		}
		return &zygo.SexpInt{Val: int64(*ctx.ItemID)}, nil
	})
	env.AddFunction("random-percent", func(env *zygo.Glisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("random-percent expects 1 argument")
		}
		pct, ok := args[0].(*zygo.SexpInt)
		if !ok {
			return nil, fmt.Errorf("random-percent expects an int")
		}
		ok2 := ctx.Engine != nil && ctx.Engine.RandomPercentage(int(pct.Val))
		return &zygo.SexpBool{Val: ok2}, nil
	})

	expr, err := env.EvalString(l.Source)
	if err != nil {
		return StateValue{}, false
	}
	return sexpToStateValue(expr, l.Kind)
}

func sexpToStateValue(expr zygo.Sexp, kind ValueKind) (StateValue, bool) {
	switch v := expr.(type) {
	case *zygo.SexpStr:
		return StringValue(v.S), true
	case *zygo.SexpBool:
		return BoolValue(v.Val), true
	case *zygo.SexpInt:
		return IntValue(int(v.Val)), true
	default:
		_ = kind
		return StateValue{}, false
	}
}
