package zorkvm

import "strings"

// Parser resolves a line of input against a GameState snapshot into a
// Command (spec §4.4). It is stateful only in the pronoun it remembers
// across calls ("it", "them" resolve to the last successfully referenced
// object), matching the teacher's FindLocalItem substring-matching idiom
// (net.go) generalized to the full adjective+noun scoring algorithm.
type Parser struct {
	engine *Engine
	comp   *ComputedProperties
	lastRef *EntityReference
}

// NewParser constructs a Parser bound to an engine and its computed-property registry.
func NewParser(e *Engine, comp *ComputedProperties) *Parser {
	return &Parser{engine: e, comp: comp}
}

// Tokenize lowercases, splits on whitespace, and drops stop words (spec §4.4 step 1).
func Tokenize(line string) []string {
	fields := strings.Fields(strings.ToLower(line))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if stopWords[f] {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Resolve runs the six-step parser algorithm from spec §4.4 and returns a
// Command, or a *ParseError (NotUnderstood / Disambiguate / UnknownVerb).
func (p *Parser) Resolve(line string) (Command, error) {
	raw := strings.Fields(strings.ToLower(line))
	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return Command{}, &ParseError{Kind: NotUnderstood, Raw: line}
	}

	head := tokens[0]
	rest := tokens[1:]

	// Step 3: a bare direction (with or without "go") is a movement command.
	if d, ok := ParseDirection(head); ok {
		return Command{Verb: head, Intent: IntentMove, Direction: &d, RawTokens: raw[1:]}, nil
	}

	intents, ok := VerbTable[head]
	if !ok {
		return Command{}, &ParseError{Kind: UnknownVerb, Raw: head}
	}

	if len(rest) > 0 {
		if d, ok := ParseDirection(rest[0]); ok && containsIntent(intents, IntentMove) {
			return Command{Verb: head, Intent: IntentMove, Direction: &d, RawTokens: raw[1:]}, nil
		}
	}

	intent := intents[0]
	if head == "turn" && len(rest) > 0 {
		if i, ok := lightOnOffWords[rest[0]]; ok {
			intent = i
			rest = rest[1:]
		}
	}

	// Step 4: partition remaining tokens on the first recognized preposition.
	directTokens, preposition, indirectTokens := partition(rest)

	if len(intents) > 1 && intent != IntentLightSource && intent != IntentExtinguish {
		// mung/break/rip and pull/move: default to the first listed intent
		// unless the object phrase looks like scenery being pulled aside
		// rather than attacked — spec leaves the exact discriminator to the
		// default handler, so the parser itself keeps the first candidate
		// and lets dispatch's handler chain re-decide via hooks.
		intent = intents[0]
	}

	cmd := Command{Verb: head, Intent: intent, Preposition: preposition, RawTokens: raw[1:]}

	if len(directTokens) > 0 {
		ref, err := p.resolvePhrase(directTokens)
		if err != nil {
			return Command{}, err
		}
		cmd.DirectObject = ref
	} else if len(intents) == 1 && requiresDirectObject(intent) {
		return Command{}, &ParseError{Kind: NotUnderstood, Raw: line}
	}

	if len(indirectTokens) > 0 {
		ref, err := p.resolvePhrase(indirectTokens)
		if err != nil {
			return Command{}, err
		}
		cmd.IndirectObject = ref
	}

	if cmd.DirectObject != nil {
		p.lastRef = cmd.DirectObject
	}
	return cmd, nil
}

func requiresDirectObject(i Intent) bool {
	switch i {
	case IntentLook, IntentInventory, IntentWait, IntentMeta, IntentListen:
		return false
	default:
		return true
	}
}

func containsIntent(list []Intent, want Intent) bool {
	for _, i := range list {
		if i == want {
			return true
		}
	}
	return false
}

// partition splits tokens at the first recognized preposition (spec §4.4 step 4).
func partition(tokens []string) (direct []string, preposition string, indirect []string) {
	for i, t := range tokens {
		if prepositions[t] {
			return tokens[:i], t, tokens[i+1:]
		}
	}
	return tokens, "", nil
}

// resolvePhrase matches a phrase of adjective+noun tokens against entities
// reachable by the player (spec §4.4 step 5/6), or resolves a pronoun.
func (p *Parser) resolvePhrase(tokens []string) (*EntityReference, error) {
	if len(tokens) == 1 && (tokens[0] == "it" || tokens[0] == "them") {
		if p.lastRef != nil {
			return p.lastRef, nil
		}
		return nil, &ParseError{Kind: NotUnderstood, Raw: tokens[0]}
	}

	if Universals[tokens[len(tokens)-1]] {
		return &EntityReference{Kind: RefUniversal, Universal: tokens[len(tokens)-1]}, nil
	}

	noun := tokens[len(tokens)-1]
	adjectives := tokens[:len(tokens)-1]

	type scored struct {
		ref   EntityReference
		score int
		tier  int // 0 = inventory, 1 = room, 2 = global
	}
	var candidates []scored

	playerProxy := PlayerProxyFor(p.engine, p.comp)
	for _, it := range playerProxy.Inventory() {
		if s, ok := scoreItem(it, noun, adjectives); ok {
			candidates = append(candidates, scored{ref: EntityReference{Kind: RefItem, Item: it.ID()}, score: s, tier: 0})
		}
	}
	loc := playerProxy.Location()
	for _, it := range loc.VisibleItems() {
		if s, ok := scoreItem(it, noun, adjectives); ok {
			tier := 1
			for _, g := range loc.loc().LocalGlobals {
				if g == it.ID() {
					tier = 2
				}
			}
			candidates = append(candidates, scored{ref: EntityReference{Kind: RefItem, Item: it.ID()}, score: s, tier: tier})
		}
	}

	if len(candidates) == 0 {
		return nil, &ParseError{Kind: NotUnderstood, Raw: strings.Join(tokens, " ")}
	}

	best := candidates[0]
	tied := []scored{best}
	for _, c := range candidates[1:] {
		switch {
		case c.score > best.score, c.score == best.score && c.tier < best.tier:
			best = c
			tied = []scored{c}
		case c.score == best.score && c.tier == best.tier:
			tied = append(tied, c)
		}
	}

	if len(tied) > 1 {
		refs := make([]EntityReference, len(tied))
		for i, t := range tied {
			refs[i] = t.ref
		}
		return nil, Disambiguate(refs)
	}
	return &best.ref, nil
}

// scoreItem scores a candidate item against a noun+adjectives phrase: exact
// noun match > synonym > partial; all adjectives must match (spec §4.4 step 6).
func scoreItem(it ItemProxy, noun string, adjectives []string) (int, bool) {
	rawItem := it.item()
	if rawItem == nil {
		return 0, false
	}
	score := 0
	name := strings.ToLower(rawItem.Name)
	switch {
	case name == noun:
		score = 3
	case containsWord(rawItem.Synonyms, noun):
		score = 2
	case strings.Contains(name, noun):
		score = 1
	default:
		return 0, false
	}

	for _, adj := range adjectives {
		if !containsWord(rawItem.Adjectives, adj) {
			return 0, false
		}
	}
	score += len(adjectives)
	return score, true
}

func containsWord(list []string, word string) bool {
	for _, w := range list {
		if strings.EqualFold(w, word) {
			return true
		}
	}
	return false
}
