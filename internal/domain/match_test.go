package domain

import "testing"

func TestMatchAccessors(t *testing.T) {
	m := &Match{
		ID:    "m1",
		Phase: PhaseStarted,
		Participants: []*Participant{
			{ID: "p1"}, {ID: "p2"},
		},
		Cards: []*Card{
			{ID: "c1", Tribe: TribeOrc, State: CardInHand, OwnerID: "p1"},
			{ID: "c2", Tribe: TribeOrc, State: CardInDeck, Index: 1},
			{ID: "c3", Tribe: TribeOrc, State: CardInDeck, Index: 0},
			{ID: "c4", Tribe: TribeOrc, State: CardInMarket, Index: 0},
			{ID: "c5", Tribe: TribeDragon, State: CardRevealed},
		},
		Territories: []*Territory{
			{ID: "t1", Color: ColorRed},
		},
	}

	if m.Participant("p3") != nil {
		t.Error("expected nil for unknown participant")
	}
	if got := len(m.Hand("p1")); got != 1 {
		t.Errorf("hand size = %d, want 1", got)
	}
	deck := m.DeckCards()
	if len(deck) != 2 || deck[0].ID != "c3" || deck[1].ID != "c2" {
		t.Errorf("deck order = %v, want c3 then c2", deck)
	}
	if got := m.RevealedDragons(); got != 1 {
		t.Errorf("revealed dragons = %d, want 1", got)
	}
	if m.TerritoryByColor(ColorRed) == nil {
		t.Error("expected red territory")
	}
	if m.TerritoryByColor(ColorBlue) != nil {
		t.Error("expected nil for missing color")
	}
}

func TestAddToken(t *testing.T) {
	m := &Match{}
	if got := m.AddToken("t1", "p1"); got != 1 {
		t.Errorf("first token count = %d, want 1", got)
	}
	if got := m.AddToken("t1", "p1"); got != 2 {
		t.Errorf("second token count = %d, want 2", got)
	}
	if got := m.AddToken("t1", "p2"); got != 1 {
		t.Errorf("other participant count = %d, want 1", got)
	}
	if got := m.TokensIn("t1", "p1"); got != 2 {
		t.Errorf("TokensIn = %d, want 2", got)
	}
	if got := m.TokensIn("t2", "p1"); got != 0 {
		t.Errorf("TokensIn unclaimed = %d, want 0", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := &Match{
		ID:        "m1",
		Phase:     PhaseStarted,
		TurnOrder: []string{"p1", "p2"},
		Tribes:    []Tribe{TribeOrc},
		Participants: []*Participant{
			{ID: "p1", Score: 5, TrollTokens: []int{3}, OrcTokens: []Color{ColorRed}},
			{ID: "p2"},
		},
		Cards: []*Card{
			{ID: "c1", Tribe: TribeOrc, State: CardInHand, OwnerID: "p1"},
		},
		Territories: []*Territory{
			{ID: "t1", Color: ColorRed, Values: [3]int{1, 2, 3}},
		},
		Claims: []*TerritoryClaim{
			{TerritoryID: "t1", ParticipantID: "p1", Tokens: 2},
		},
		Pending: []*PendingEffect{
			{ID: "pe1", ParticipantID: "p1", Kind: PendingFreeToken, Status: PendingOpen},
		},
	}

	clone := m.Clone()
	clone.Participant("p1").Score = 99
	clone.Participant("p1").TrollTokens[0] = 6
	clone.Card("c1").State = CardInMarket
	clone.Claims[0].Tokens = 9
	clone.Pending[0].Status = PendingResolved
	clone.TurnOrder[0] = "zzz"

	if m.Participant("p1").Score != 5 {
		t.Error("clone mutation leaked into participant score")
	}
	if m.Participant("p1").TrollTokens[0] != 3 {
		t.Error("clone mutation leaked into troll tokens")
	}
	if m.Card("c1").State != CardInHand {
		t.Error("clone mutation leaked into card state")
	}
	if m.Claims[0].Tokens != 2 {
		t.Error("clone mutation leaked into claims")
	}
	if m.Pending[0].Status != PendingOpen {
		t.Error("clone mutation leaked into pending effects")
	}
	if m.TurnOrder[0] != "p1" {
		t.Error("clone mutation leaked into turn order")
	}
}
