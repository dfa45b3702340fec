package domain

const (
	// HandCap is the maximum hand size for voluntary draws and pick-ups.
	HandCap = 10

	// DragonsPerEra is how many dragon cards are shuffled into each era's
	// deck; revealing all of them ends the era.
	DragonsPerEra = 3

	// CardsPerTribe is the card count each selected tribe contributes:
	// two per color for colored tribes, all colorless for wild tribes.
	CardsPerTribe = 12

	// TerritoryCount is the number of territories generated at match start.
	TerritoryCount = 6

	// MinParticipants and MaxParticipants bound the seat count.
	MinParticipants = 2
	MaxParticipants = 6
)

// MerfolkCheckpoints are track positions that each grant one free-token
// pending effect when crossed.
var MerfolkCheckpoints = []int{3, 7, 12, 18}

// TrollTokenPool is the fixed match-wide multiset of claimable troll tokens.
var TrollTokenPool = []int{1, 2, 3, 4, 5, 6}

// TerritoryValuePool is the fixed multiset the 18 territory reward values
// are drawn from (six territories, three ascending tiers each).
var TerritoryValuePool = []int{1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9, 10}

// FinalEra returns the last era for the given participant count.
func FinalEra(participants int) int {
	if participants >= 4 {
		return 3
	}
	return 2
}
