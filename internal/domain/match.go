package domain

import "sort"

// MatchPhase represents the lifecycle stage of a match.
type MatchPhase string

const (
	// PhaseCreated is the pre-game state where participants can join.
	PhaseCreated MatchPhase = "created"
	// PhaseStarted is the active game state.
	PhaseStarted MatchPhase = "started"
	// PhaseEnded is the state after the final era concludes.
	PhaseEnded MatchPhase = "ended"
	// PhaseCancelled marks an abandoned match.
	PhaseCancelled MatchPhase = "cancelled"
)

// CardState is the single lifecycle slot a card occupies.
type CardState string

const (
	CardInDeck   CardState = "in_deck"
	CardInMarket CardState = "in_market"
	CardInHand   CardState = "in_hand"
	CardInBand   CardState = "in_band"
	CardRevealed CardState = "revealed"
)

// NoIndex marks a card whose position index is meaningless (any state other
// than in_deck or in_market).
const NoIndex = -1

// Card is a single tribe card within a match.
type Card struct {
	ID       string    `json:"id"`
	Tribe    Tribe     `json:"tribe"`
	Color    Color     `json:"color,omitempty"` // empty for colorless tribes
	State    CardState `json:"state"`
	Index    int       `json:"index"`               // deck/market position, NoIndex otherwise
	OwnerID  string    `json:"owner_id,omitempty"`  // holding participant for hand/band cards
	LeaderID string    `json:"leader_id,omitempty"` // band leader card, set when State is in_band
}

// Participant is one seat in a match, human or automated.
type Participant struct {
	ID        string `json:"id"`
	MatchID   string `json:"match_id"`
	AccountID string `json:"account_id,omitempty"` // empty for automated participants
	Color     Color  `json:"color"`
	Score     int    `json:"score"`

	// Per-tribe counters. GiantMarker and TrollTokens reset at era
	// boundaries; MerfolkTrack and OrcTokens persist.
	GiantMarker  int     `json:"giant_marker"`
	MerfolkTrack int     `json:"merfolk_track"`
	TrollTokens  []int   `json:"troll_tokens,omitempty"`
	OrcTokens    []Color `json:"orc_tokens,omitempty"`
}

// IsAutomated reports whether the participant is bot-driven.
func (p *Participant) IsAutomated() bool {
	return p.AccountID == ""
}

// TrollTotal sums the participant's held troll-token values.
func (p *Participant) TrollTotal() int {
	total := 0
	for _, v := range p.TrollTokens {
		total += v
	}
	return total
}

// Territory is one of the six claimable regions, fixed at match start.
type Territory struct {
	ID      string `json:"id"`
	MatchID string `json:"match_id"`
	Color   Color  `json:"color"`
	Values  [3]int `json:"values"` // ascending reward tiers
}

// TerritoryClaim tracks a participant's token count in one territory.
type TerritoryClaim struct {
	TerritoryID   string `json:"territory_id"`
	ParticipantID string `json:"participant_id"`
	Tokens        int    `json:"tokens"`
}

// PendingKind identifies an obligation the active participant owes.
type PendingKind string

const (
	// PendingPlayBand obliges the participant to play another band.
	PendingPlayBand PendingKind = "play_band"
	// PendingFreeToken obliges the participant to place a free token.
	PendingFreeToken PendingKind = "free_token"
)

// PendingStatus is the resolution state of a pending effect.
type PendingStatus string

const (
	PendingOpen     PendingStatus = "pending"
	PendingResolved PendingStatus = "resolved"
)

// PendingEffect is a secondary obligation created by a tribe effect and
// consumed by the handler that fulfills it.
type PendingEffect struct {
	ID            string        `json:"id"`
	MatchID       string        `json:"match_id"`
	ParticipantID string        `json:"participant_id"`
	Kind          PendingKind   `json:"kind"`
	Status        PendingStatus `json:"status"`
}

// Match is the aggregate holding one consistent view of a match: the match
// row plus its participants, cards, territories, claims and pending effects.
// All engine reads and writes go through a single aggregate so an action
// either applies fully or not at all.
type Match struct {
	ID        string     `json:"id"`
	CreatorID string     `json:"creator_id"`
	Phase     MatchPhase `json:"phase"`
	Era       int        `json:"era"`
	ActiveID  string     `json:"active_id"`
	TurnOrder []string   `json:"turn_order"`
	Tribes    []Tribe    `json:"tribes"`
	WinnerID  string     `json:"winner_id,omitempty"`

	Participants []*Participant    `json:"participants"`
	Cards        []*Card           `json:"cards"`
	Territories  []*Territory      `json:"territories"`
	Claims       []*TerritoryClaim `json:"claims"`
	Pending      []*PendingEffect  `json:"pending"`
}

// Participant returns the participant with the given id, or nil.
func (m *Match) Participant(id string) *Participant {
	for _, p := range m.Participants {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Card returns the card with the given id, or nil.
func (m *Match) Card(id string) *Card {
	for _, c := range m.Cards {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Hand returns the participant's hand cards in stable aggregate order.
func (m *Match) Hand(participantID string) []*Card {
	var hand []*Card
	for _, c := range m.Cards {
		if c.State == CardInHand && c.OwnerID == participantID {
			hand = append(hand, c)
		}
	}
	return hand
}

// MarketCards returns market cards ordered by ascending position index.
func (m *Match) MarketCards() []*Card {
	return m.cardsByIndex(CardInMarket)
}

// DeckCards returns deck cards ordered by ascending position index; index 0
// is the top of the deck.
func (m *Match) DeckCards() []*Card {
	return m.cardsByIndex(CardInDeck)
}

func (m *Match) cardsByIndex(state CardState) []*Card {
	var out []*Card
	for _, c := range m.Cards {
		if c.State == state {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// RevealedDragons counts dragon cards revealed this era.
func (m *Match) RevealedDragons() int {
	n := 0
	for _, c := range m.Cards {
		if c.Tribe == TribeDragon && c.State == CardRevealed {
			n++
		}
	}
	return n
}

// TerritoryByID returns the territory with the given id, or nil.
func (m *Match) TerritoryByID(id string) *Territory {
	for _, t := range m.Territories {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// TerritoryByColor returns the territory of the given color, or nil.
func (m *Match) TerritoryByColor(color Color) *Territory {
	for _, t := range m.Territories {
		if t.Color == color {
			return t
		}
	}
	return nil
}

// ClaimFor returns the participant's claim in a territory, or nil if the
// participant has never placed a token there.
func (m *Match) ClaimFor(territoryID, participantID string) *TerritoryClaim {
	for _, c := range m.Claims {
		if c.TerritoryID == territoryID && c.ParticipantID == participantID {
			return c
		}
	}
	return nil
}

// TokensIn returns the participant's token count in a territory.
func (m *Match) TokensIn(territoryID, participantID string) int {
	if c := m.ClaimFor(territoryID, participantID); c != nil {
		return c.Tokens
	}
	return 0
}

// AddToken increments the participant's claim in a territory by one token,
// creating the claim row on first placement. Returns the new token count.
func (m *Match) AddToken(territoryID, participantID string) int {
	if c := m.ClaimFor(territoryID, participantID); c != nil {
		c.Tokens++
		return c.Tokens
	}
	m.Claims = append(m.Claims, &TerritoryClaim{
		TerritoryID:   territoryID,
		ParticipantID: participantID,
		Tokens:        1,
	})
	return 1
}

// OpenPending returns the participant's unresolved pending effects, oldest
// first. Only the active participant can ever hold open effects.
func (m *Match) OpenPending(participantID string) []*PendingEffect {
	var out []*PendingEffect
	for _, pe := range m.Pending {
		if pe.ParticipantID == participantID && pe.Status == PendingOpen {
			out = append(out, pe)
		}
	}
	return out
}

// PendingByID returns the pending effect with the given id, or nil.
func (m *Match) PendingByID(id string) *PendingEffect {
	for _, pe := range m.Pending {
		if pe.ID == id {
			return pe
		}
	}
	return nil
}

// Clone returns a deep copy of the aggregate. Handlers mutate a clone so a
// failed action leaves the live aggregate untouched.
func (m *Match) Clone() *Match {
	out := &Match{
		ID:        m.ID,
		CreatorID: m.CreatorID,
		Phase:     m.Phase,
		Era:       m.Era,
		ActiveID:  m.ActiveID,
		TurnOrder: append([]string(nil), m.TurnOrder...),
		Tribes:    append([]Tribe(nil), m.Tribes...),
		WinnerID:  m.WinnerID,
	}
	for _, p := range m.Participants {
		cp := *p
		cp.TrollTokens = append([]int(nil), p.TrollTokens...)
		cp.OrcTokens = append([]Color(nil), p.OrcTokens...)
		out.Participants = append(out.Participants, &cp)
	}
	for _, c := range m.Cards {
		cc := *c
		out.Cards = append(out.Cards, &cc)
	}
	for _, t := range m.Territories {
		ct := *t
		out.Territories = append(out.Territories, &ct)
	}
	for _, cl := range m.Claims {
		ccl := *cl
		out.Claims = append(out.Claims, &ccl)
	}
	for _, pe := range m.Pending {
		cpe := *pe
		out.Pending = append(out.Pending, &cpe)
	}
	return out
}
