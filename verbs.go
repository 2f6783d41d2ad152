package zorkvm

// VerbTable maps every synonym in spec §6's command surface to its set of
// candidate Intents. For multi-intent verbs Resolve takes the first listed
// intent; only "turn on"/"turn off" pick the intent from the following word.
var VerbTable = map[string][]Intent{
	// Movement — a bare direction token is also handled directly by Resolve.
	"north": {IntentMove}, "n": {IntentMove},
	"south": {IntentMove}, "s": {IntentMove},
	"east": {IntentMove}, "e": {IntentMove},
	"west": {IntentMove}, "w": {IntentMove},
	"ne": {IntentMove}, "nw": {IntentMove},
	"se": {IntentMove}, "sw": {IntentMove},
	"up": {IntentMove}, "down": {IntentMove},
	"in": {IntentMove}, "out": {IntentMove},
	"go": {IntentMove}, "walk": {IntentMove},

	"look": {IntentLook}, "l": {IntentLook},
	"examine": {IntentExamine}, "x": {IntentExamine},

	"take": {IntentTake}, "get": {IntentTake},
	"drop": {IntentDrop},
	"put":  {IntentPut},

	"open":  {IntentOpen},
	"close": {IntentClose},

	"lock":   {IntentLock},
	"unlock": {IntentUnlock},

	"read": {IntentRead},

	"light":  {IntentLightSource},
	"extinguish": {IntentExtinguish},
	"turn":   {IntentLightSource, IntentExtinguish},

	"attack": {IntentAttack}, "kill": {IntentAttack},
	"throw":  {IntentThrow},
	"give":   {IntentGive},
	"tell":   {IntentTell},
	"ask":    {IntentAsk},
	"listen": {IntentListen},

	"push": {IntentPush},
	"pull": {IntentPull, IntentMoveObject},
	"move": {IntentMoveObject},

	"break": {IntentMung, IntentAttack},
	"mung":  {IntentMung, IntentAttack},
	"rip":   {IntentMung, IntentAttack},

	"climb": {IntentClimb},

	"inventory": {IntentInventory}, "i": {IntentInventory},

	"wait": {IntentWait}, "z": {IntentWait},

	"save": {IntentMeta}, "restore": {IntentMeta}, "quit": {IntentMeta},
}

// stopWords are always dropped during tokenization (spec §4.4 step 1).
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true,
}

// prepositions is the set of tokens that can separate a direct-object phrase
// from an indirect-object phrase (spec §4.4 step 4).
var prepositions = map[string]bool{
	"in": true, "on": true, "with": true, "under": true,
	"through": true, "from": true, "to": true, "at": true,
}

// lightOnOffWords disambiguates "turn" into IntentLightSource vs IntentExtinguish.
var lightOnOffWords = map[string]Intent{
	"on": IntentLightSource, "off": IntentExtinguish,
}
