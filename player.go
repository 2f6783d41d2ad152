package zorkvm

import "fmt"

// Player is the singleton player-character record.
type Player struct {
	Location LocationID

	CharacterSheet CharacterSheet

	Score           int
	Moves           int
	CarryingCapacity int

	Properties map[PlayerPropertyID]StateValue
}

// NewPlayer constructs a Player starting at the given location.
func NewPlayer(start LocationID) *Player {
	return &Player{
		Location:         start,
		CarryingCapacity: 100,
		CharacterSheet: CharacterSheet{
			Health: 100, MaxHealth: 100,
			Strength: 10, Dexterity: 10,
			Accuracy: 10, ArmorClass: 10,
		},
		Properties: make(map[PlayerPropertyID]StateValue),
	}
}

func (p *Player) String() string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("Player [Score: %d, Moves: %d]", p.Score, p.Moves)
}
