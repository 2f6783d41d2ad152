package zorkvm

// ItemProxy is a read-only handle bound to the engine; it never caches, so
// every accessor round-trips through the engine's query channel (spec §4.3).
type ItemProxy struct {
	id     ItemID
	engine *Engine
	comp   *ComputedProperties
}

// LocationProxy is a read-only handle for a Location.
type LocationProxy struct {
	id     LocationID
	engine *Engine
	comp   *ComputedProperties
}

// PlayerProxy is a read-only handle for the singleton Player.
type PlayerProxy struct {
	engine *Engine
	comp   *ComputedProperties
}

// ItemProxyFor builds an ItemProxy bound to the engine and its computed-property registry.
func ItemProxyFor(e *Engine, comp *ComputedProperties, id ItemID) ItemProxy {
	return ItemProxy{id: id, engine: e, comp: comp}
}

// LocationProxyFor builds a LocationProxy.
func LocationProxyFor(e *Engine, comp *ComputedProperties, id LocationID) LocationProxy {
	return LocationProxy{id: id, engine: e, comp: comp}
}

// PlayerProxyFor builds a PlayerProxy.
func PlayerProxyFor(e *Engine, comp *ComputedProperties) PlayerProxy {
	return PlayerProxy{engine: e, comp: comp}
}

// ID returns the bound ItemID.
func (p ItemProxy) ID() ItemID { return p.id }

func (p ItemProxy) item() *Item {
	it, err := p.engine.Item(p.id)
	if err != nil {
		return nil
	}
	return it
}

// Name resolves via the §4.3 precedence: computer, then property bag,
// then the item's stored Name.
func (p ItemProxy) Name() string {
	if v, ok := p.computed(PropName); ok {
		return v.String()
	}
	it := p.item()
	if it == nil {
		return ""
	}
	return it.Name
}

// Description resolves the item's description, honoring computed overrides.
func (p ItemProxy) Description() string {
	if v, ok := p.computed(PropDescription); ok {
		return v.String()
	}
	it := p.item()
	if it == nil {
		return ""
	}
	return it.Description
}

// ReadText resolves the item's read text, falling back to a stock "no
// inscription" message for unread items with no text set (spec §4.3 "unread
// items return a random no-inscription fallback for readText").
func (p ItemProxy) ReadText() string {
	if v, ok := p.computed(PropReadText); ok {
		return v.String()
	}
	it := p.item()
	if it == nil {
		return ""
	}
	if it.ReadText != "" {
		return it.ReadText
	}
	fallbacks := []string{
		"There is no text to read.",
		"It's blank.",
		"You find nothing written there.",
	}
	return fallbacks[p.engine.RandomIntn(len(fallbacks))]
}

func (p ItemProxy) computed(prop ItemPropertyID) (StateValue, bool) {
	if p.comp == nil {
		return StateValue{}, false
	}
	return p.comp.ComputeItem(p.id, prop, p.engine)
}

// Property reads a raw property-bag slot (no computer precedence applied;
// use the typed accessors above when a computer might apply).
func (p ItemProxy) Property(prop ItemPropertyID) (StateValue, bool) {
	it := p.item()
	if it == nil {
		return StateValue{}, false
	}
	v, ok := it.Properties[prop]
	return v, ok
}

// Well-known flag property IDs. A flag's authored value lives on Item.Flags
// (the type default); SetFlagChange/ClearFlagChange write a same-named entry
// into the property bag, which the flag accessors below consult first — the
// same computer → bag → type-default precedence spec §4.3 uses everywhere
// else, applied to booleans so a flag toggle and a flag read agree.
const (
	PropOpen            ItemPropertyID = "open"
	PropLocked          ItemPropertyID = "locked"
	PropContainer       ItemPropertyID = "container"
	PropSurface         ItemPropertyID = "surface"
	PropTransparent     ItemPropertyID = "transparent"
	PropTakable         ItemPropertyID = "takable"
	PropInvisible       ItemPropertyID = "invisible"
	PropLightSource     ItemPropertyID = "lightSource"
	PropOn              ItemPropertyID = "on"
	PropBurning         ItemPropertyID = "burning"
	PropBurnedOut       ItemPropertyID = "burnedOut"
	PropOmitDescription ItemPropertyID = "omitDescription"
	PropPlural          ItemPropertyID = "plural"
	PropOmitArticle     ItemPropertyID = "omitArticle"
	PropTouched         ItemPropertyID = "touched"
)

func (p ItemProxy) flag(prop ItemPropertyID, fallback bool) bool {
	if v, ok := p.computed(prop); ok && v.Kind() == KindBool {
		return v.Bool()
	}
	if v, ok := p.Property(prop); ok {
		return v.Kind() == KindBool && v.Bool()
	}
	return fallback
}

// IsOpen, IsContainer, etc: computer, then property bag, with the authored
// Flags struct as type default (spec §4.3 precedence chain, booleans).
// IsOpenable has no property ID and reads Item.Flags directly.
func (p ItemProxy) IsOpen() bool        { it := p.item(); return it != nil && p.flag(PropOpen, it.Flags.Open) }
func (p ItemProxy) IsOpenable() bool    { it := p.item(); return it != nil && it.Flags.Openable }
func (p ItemProxy) IsLocked() bool      { it := p.item(); return it != nil && p.flag(PropLocked, it.Flags.Locked) }
func (p ItemProxy) IsContainer() bool   { it := p.item(); return it != nil && p.flag(PropContainer, it.Flags.Container) }
func (p ItemProxy) IsSurface() bool     { it := p.item(); return it != nil && p.flag(PropSurface, it.Flags.Surface) }
func (p ItemProxy) IsTransparent() bool { it := p.item(); return it != nil && p.flag(PropTransparent, it.Flags.Transparent) }
func (p ItemProxy) IsTakable() bool     { it := p.item(); return it != nil && p.flag(PropTakable, it.Flags.Takable) }
func (p ItemProxy) IsInvisible() bool   { it := p.item(); return it != nil && p.flag(PropInvisible, it.Flags.Invisible) }
func (p ItemProxy) IsLightSource() bool { it := p.item(); return it != nil && p.flag(PropLightSource, it.Flags.LightSource) }
func (p ItemProxy) IsOn() bool          { it := p.item(); return it != nil && p.flag(PropOn, it.Flags.On) }
func (p ItemProxy) IsBurning() bool     { it := p.item(); return it != nil && p.flag(PropBurning, it.Flags.Burning) }
func (p ItemProxy) IsBurnedOut() bool   { it := p.item(); return it != nil && p.flag(PropBurnedOut, it.Flags.BurnedOut) }
func (p ItemProxy) OmitsDescription() bool { it := p.item(); return it != nil && p.flag(PropOmitDescription, it.Flags.OmitDescription) }
func (p ItemProxy) IsPlural() bool      { it := p.item(); return it != nil && p.flag(PropPlural, it.Flags.Plural) }
func (p ItemProxy) OmitsArticle() bool  { it := p.item(); return it != nil && p.flag(PropOmitArticle, it.Flags.OmitArticle) }
func (p ItemProxy) IsTouched() bool     { it := p.item(); return it != nil && p.flag(PropTouched, it.Flags.Touched) }

// Size, Capacity, Value are direct numeric reads (not computed in this spec).
func (p ItemProxy) Size() int     { it := p.item(); if it == nil { return 0 }; return it.Size }
func (p ItemProxy) Capacity() int { it := p.item(); if it == nil { return 0 }; return it.Capacity }
func (p ItemProxy) Value() int    { it := p.item(); if it == nil { return 0 }; return it.Value }

// Parent returns the item's current ParentEntity.
func (p ItemProxy) Parent() ParentEntity {
	it := p.item()
	if it == nil {
		return Nowhere
	}
	return it.Parent
}

// CharacterSheet returns the item's combat sheet, if any (NPC items only).
func (p ItemProxy) CharacterSheet() *CharacterSheet {
	it := p.item()
	if it == nil {
		return nil
	}
	return it.CharacterSheet
}

// IsAlive reports whether this item (an NPC) is conscious or unconscious
// (not dead).
func (p ItemProxy) IsAlive() bool {
	cs := p.CharacterSheet()
	return cs != nil && cs.Consciousness != Dead
}

// IsHostileEnemy reports whether this item is an NPC with a character sheet
// that is conscious, i.e. a valid combat target.
func (p ItemProxy) IsHostileEnemy() bool {
	cs := p.CharacterSheet()
	return cs != nil && cs.Consciousness == Conscious
}

// IsFighting reports the engagement flag held in the item's property bag.
func (p ItemProxy) IsFighting() bool {
	v, ok := p.Property(PropIsFighting)
	return ok && v.Kind() == KindBool && v.Bool()
}

// Contents returns the item's direct children.
func (p ItemProxy) Contents() []ItemProxy {
	var out []ItemProxy
	snap := p.engine.Snapshot()
	for id, it := range snap.Items {
		if it.Parent.Kind == ParentItem && it.Parent.Item == p.id {
			out = append(out, ItemProxyFor(p.engine, p.comp, id))
		}
	}
	return out
}

// AllContents returns the item's contents recursively.
func (p ItemProxy) AllContents() []ItemProxy {
	var out []ItemProxy
	for _, c := range p.Contents() {
		out = append(out, c)
		out = append(out, c.AllContents()...)
	}
	return out
}

// ContentsAreVisible reports whether this item's contents can currently be
// seen: the item must be open, transparent, or a surface, or not a container
// at all (spec §3 Visibility).
func (p ItemProxy) ContentsAreVisible() bool {
	return p.IsOpen() || p.IsTransparent() || p.IsSurface() || !p.IsContainer()
}

// IsDoor reports whether this item functions as an exit's door (i.e. some
// location references it as a DoorID). A light structural query, not a flag.
func (p ItemProxy) IsDoor() bool {
	snap := p.engine.Snapshot()
	for _, loc := range snap.Locations {
		for _, ex := range loc.Exits {
			if ex.DoorID != nil && *ex.DoorID == p.id {
				return true
			}
		}
	}
	return false
}

// IsProvidingLight reports whether this item currently counts as a light
// source for §3's lighting rule.
func (p ItemProxy) IsProvidingLight() bool {
	return p.IsLightSource() && (p.IsOn() || p.IsBurning()) && !p.IsBurnedOut()
}

// PlayerIsHolding reports whether the player's inventory (recursively)
// contains this item.
func (p ItemProxy) PlayerIsHolding() bool {
	cur := p.Parent()
	seen := map[ItemID]bool{}
	for cur.Kind == ParentItem {
		if seen[cur.Item] {
			return false
		}
		seen[cur.Item] = true
		parentItem, err := p.engine.Item(cur.Item)
		if err != nil {
			return false
		}
		cur = parentItem.Parent
	}
	return cur.Kind == ParentPlayer
}

// ShouldTakeFirst reports whether TAKE should implicitly take this item's
// nearest takable container before acting on the item itself — in this
// runtime, items are always addressed directly, so this always returns false;
// kept as a named predicate so handlers read the same as spec §4.3 names it.
func (p ItemProxy) ShouldTakeFirst() bool { return false }

// IsVisible reports whether this item is visible from the player's current
// location per spec §3's Visibility invariant.
func (p ItemProxy) IsVisible() bool {
	if p.IsInvisible() {
		return false
	}
	player := PlayerProxyFor(p.engine, p.comp)
	playerLoc := player.LocationID()

	if p.PlayerIsHolding() {
		return true
	}

	loc, err := p.engine.Location(playerLoc)
	if err == nil {
		for _, g := range loc.LocalGlobals {
			if g == p.id {
				return true
			}
		}
	}

	ancestorLoc, ok := p.engine.Snapshot().ancestorLocation(p.id)
	if !ok || ancestorLoc != playerLoc {
		return false
	}
	return p.allContainerAncestorsVisible()
}

// allContainerAncestorsVisible walks the containment chain from this item up
// to its location ancestor and verifies every container link is open,
// transparent, or a surface (spec §3 Visibility).
func (p ItemProxy) allContainerAncestorsVisible() bool {
	cur := p.Parent()
	for cur.Kind == ParentItem {
		container := ItemProxyFor(p.engine, p.comp, cur.Item)
		if !container.ContentsAreVisible() {
			return false
		}
		cur = container.Parent()
	}
	return true
}

// ShouldDescribe reports whether this item should appear in a Look listing:
// visible and not OmitDescription.
func (p ItemProxy) ShouldDescribe() bool {
	return p.IsVisible() && !p.OmitsDescription()
}

// --- Naming ---

// WithIndefiniteArticle renders "a/an X", "some X" for plurals, or bare name
// when OmitArticle is set (spec §4.3 Naming).
func (p ItemProxy) WithIndefiniteArticle() string {
	name := p.Name()
	if p.OmitsArticle() {
		return name
	}
	if p.IsPlural() {
		return "some " + name
	}
	if startsWithVowelSound(name) {
		return "an " + name
	}
	return "a " + name
}

// WithDefiniteArticle renders "the X", or bare name when OmitArticle is set.
func (p ItemProxy) WithDefiniteArticle() string {
	name := p.Name()
	if p.OmitsArticle() {
		return name
	}
	return "the " + name
}

// WithPossessiveAdjective renders "your X" for the player's own items, else
// "<owner's> X" — this runtime only models a single possessor (the player),
// so it always renders the first-person form.
func (p ItemProxy) WithPossessiveAdjective() string {
	return "your " + p.Name()
}

func startsWithVowelSound(name string) bool {
	if name == "" {
		return false
	}
	switch name[0] {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

// --- LocationProxy ---

// ID returns the bound LocationID.
func (p LocationProxy) ID() LocationID { return p.id }

func (p LocationProxy) loc() *Location {
	l, err := p.engine.Location(p.id)
	if err != nil {
		return nil
	}
	return l
}

// Name resolves the location's name via the computed-property precedence.
func (p LocationProxy) Name() string {
	if v, ok := p.comp.ComputeLocation(p.id, PropName, p.engine); ok {
		return v.String()
	}
	l := p.loc()
	if l == nil {
		return ""
	}
	return l.Name
}

// Description resolves the location's description.
func (p LocationProxy) Description() string {
	if v, ok := p.comp.ComputeLocation(p.id, PropDescription, p.engine); ok {
		return v.String()
	}
	l := p.loc()
	if l == nil {
		return ""
	}
	return l.Description
}

// IsVisited reports whether the location has been entered before.
func (p LocationProxy) IsVisited() bool {
	l := p.loc()
	if l == nil {
		return false
	}
	return l.Flags.IsVisited
}

// Exits returns the location's declared exits.
func (p LocationProxy) Exits() []Exit {
	l := p.loc()
	if l == nil {
		return nil
	}
	return l.Exits
}

// DirectItems returns this location's local globals and direct item
// children only, with no recursion into containers. This is the listing
// layer's building block (handlers.go's renderContents walks container
// contents itself, one level at a time, to keep indentation correct).
func (p LocationProxy) DirectItems() []ItemProxy {
	var out []ItemProxy
	snap := p.engine.Snapshot()

	seen := map[ItemID]bool{}
	add := func(id ItemID) {
		if seen[id] {
			return
		}
		seen[id] = true
		out = append(out, ItemProxyFor(p.engine, p.comp, id))
	}

	if l := snap.Locations[p.id]; l != nil {
		for _, id := range l.LocalGlobals {
			add(id)
		}
	}
	for id, it := range snap.Items {
		if it.Parent.Kind == ParentLocation && it.Parent.Location == p.id {
			add(id)
		}
	}
	return out
}

// VisibleItems returns every item actually visible in this location: direct
// children and local globals, plus — recursively, through any open,
// transparent, or surface container — their visible contents. Invisible
// items (and their contents) are excluded throughout (spec §3 Visibility,
// §4.3).
func (p LocationProxy) VisibleItems() []ItemProxy {
	var out []ItemProxy
	var walk func(items []ItemProxy)
	walk = func(items []ItemProxy) {
		for _, it := range items {
			if it.IsInvisible() {
				continue
			}
			out = append(out, it)
			if it.IsContainer() && it.ContentsAreVisible() {
				walk(it.Contents())
			}
		}
	}
	walk(p.DirectItems())
	return out
}

// IsLit implements the §3 lighting rule: inherently lit, or a lit light
// source is visible in the location (including nested inside an open,
// transparent, or surface container), or the player carries a lit source.
func (p LocationProxy) IsLit() bool {
	l := p.loc()
	if l == nil {
		return false
	}
	if l.Flags.InherentlyLit {
		return true
	}
	for _, it := range p.VisibleItems() {
		if it.IsProvidingLight() {
			return true
		}
	}
	player := PlayerProxyFor(p.engine, p.comp)
	if player.LocationID() == p.id {
		for _, it := range player.Inventory() {
			if it.IsProvidingLight() {
				return true
			}
		}
	}
	return false
}

// --- PlayerProxy ---

func (p PlayerProxy) player() *Player { return p.engine.Player() }

// LocationID returns the player's current location.
func (p PlayerProxy) LocationID() LocationID {
	pl := p.player()
	if pl == nil {
		return 0
	}
	return pl.Location
}

// Location returns a LocationProxy for the player's current location.
func (p PlayerProxy) Location() LocationProxy {
	return LocationProxyFor(p.engine, p.comp, p.LocationID())
}

// Inventory returns the items the player is directly carrying.
func (p PlayerProxy) Inventory() []ItemProxy {
	var out []ItemProxy
	snap := p.engine.Snapshot()
	for id, it := range snap.Items {
		if it.Parent.Kind == ParentPlayer {
			out = append(out, ItemProxyFor(p.engine, p.comp, id))
		}
		_ = it
	}
	return out
}

// CarriedSize sums the size of everything the player carries, including
// items nested inside carried containers (spec §4.3 "playerCanCarry uses
// the player's total carried size including items inside carried containers").
func (p PlayerProxy) CarriedSize() int {
	total := 0
	for _, it := range p.Inventory() {
		total += it.Size()
		for _, c := range it.AllContents() {
			total += c.Size()
		}
	}
	return total
}

// CanCarry reports whether the player has room to pick up the given item.
func (p PlayerProxy) CanCarry(item ItemProxy) bool {
	pl := p.player()
	if pl == nil {
		return false
	}
	return p.CarriedSize()+item.Size() <= pl.CarryingCapacity
}

// Score returns the player's current score.
func (p PlayerProxy) Score() int {
	pl := p.player()
	if pl == nil {
		return 0
	}
	return pl.Score
}

// Moves returns the player's move counter.
func (p PlayerProxy) Moves() int {
	pl := p.player()
	if pl == nil {
		return 0
	}
	return pl.Moves
}

// CharacterSheet returns the player's combat sheet.
func (p PlayerProxy) CharacterSheet() CharacterSheet {
	pl := p.player()
	if pl == nil {
		return CharacterSheet{}
	}
	return pl.CharacterSheet
}

// --- Capacity arithmetic (spec §4.3) ---

// CurrentLoad sums the Size of a container's direct children.
func CurrentLoad(e *Engine, container ItemID) int {
	return e.Snapshot().directChildrenSize(container)
}

// CanHold reports whether a container has room for an additional item.
func CanHold(e *Engine, container ItemProxy, item ItemProxy) bool {
	if container.Capacity() < 0 {
		return true
	}
	return CurrentLoad(e, container.ID())+item.Size() <= container.Capacity()
}

// --- Change builders (spec §4.3) ---

// SetFlagChange returns a StateChange setting a boolean item property, or nil
// if current (the flag's present effective value, e.g. p.IsOpen()) already
// reads true — the hard no-op contract relied on by handlers.
func (p ItemProxy) SetFlagChange(prop ItemPropertyID, current bool) StateChange {
	if current {
		return nil
	}
	return SetItemProperty{Item: p.id, Property: prop, Value: BoolValue(true)}
}

// ClearFlagChange returns a StateChange clearing a boolean item property, or
// nil if current already reads false.
func (p ItemProxy) ClearFlagChange(prop ItemPropertyID, current bool) StateChange {
	if !current {
		return nil
	}
	return SetItemProperty{Item: p.id, Property: prop, Value: BoolValue(false)}
}

// SetPropertyChange returns a StateChange for an arbitrary property write,
// or nil if the value is already equal.
func (p ItemProxy) SetPropertyChange(prop ItemPropertyID, v StateValue) StateChange {
	if cur, ok := p.Property(prop); ok && cur.Equal(v) {
		return nil
	}
	return SetItemProperty{Item: p.id, Property: prop, Value: v}
}

// MoveChange returns a StateChange moving the item to a new parent, or nil
// if it is already there.
func (p ItemProxy) MoveChange(to ParentEntity) StateChange {
	if p.Parent() == to {
		return nil
	}
	return MoveItem{Item: p.id, To: to}
}

// RemoveChange returns a StateChange moving the item to .nowhere.
func (p ItemProxy) RemoveChange() StateChange {
	return p.MoveChange(Nowhere)
}

// pluralize is a small helper used by Look listings (dispatch.go) to decide
// between "is" and "are" for recursively-listed contents.
func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
