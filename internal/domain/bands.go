package domain

// BandProposal is one maximal band a participant could play from their hand:
// a declared leader plus every hand card eligible to join it.
type BandProposal struct {
	LeaderID string
	CardIDs  []string
}

// Size returns the raw card count of the proposal.
func (b BandProposal) Size() int {
	return len(b.CardIDs)
}

// Contains reports whether the proposal includes the given card.
func (b BandProposal) Contains(cardID string) bool {
	return containsID(b.CardIDs, cardID)
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// LegalBands enumerates every maximal band playable from the hand. Each hand
// card whose tribe may lead produces up to two proposals: the maximal
// same-color subset and the maximal same-tribe subset, both including any
// wild cards. Coinciding subsets are offered once.
func LegalBands(hand []*Card) []BandProposal {
	var out []BandProposal
	for _, leader := range hand {
		if Traits[leader.Tribe].NoLeader {
			continue
		}

		var colorSet, tribeSet []string
		for _, c := range hand {
			if IsWild(c.Tribe) {
				colorSet = append(colorSet, c.ID)
				tribeSet = append(tribeSet, c.ID)
				continue
			}
			if c.Color == leader.Color {
				colorSet = append(colorSet, c.ID)
			}
			if c.Tribe == leader.Tribe {
				tribeSet = append(tribeSet, c.ID)
			}
		}

		out = append(out, BandProposal{LeaderID: leader.ID, CardIDs: colorSet})
		if !sameIDSet(colorSet, tribeSet) {
			out = append(out, BandProposal{LeaderID: leader.ID, CardIDs: tribeSet})
		}
	}
	return out
}

// IsLegalBand reports whether the proposed cards form a playable band for
// the hand: the declared leader must be part of the set and the set must be
// a subset of one of the leader's maximal proposals. The proposal list is
// the single source of truth for band legality.
func IsLegalBand(hand []*Card, leaderID string, cardIDs []string) bool {
	if len(cardIDs) == 0 || !containsID(cardIDs, leaderID) {
		return false
	}
	for _, prop := range LegalBands(hand) {
		if prop.LeaderID != leaderID {
			continue
		}
		if subsetOf(cardIDs, prop.CardIDs) {
			return true
		}
	}
	return false
}

func subsetOf(sub, super []string) bool {
	for _, id := range sub {
		if !containsID(super, id) {
			return false
		}
	}
	return true
}

func sameIDSet(a, b []string) bool {
	return len(a) == len(b) && subsetOf(a, b)
}
