package nakama

import (
	"tribelands/internal/bot"
	"tribelands/internal/domain"
)

// ParticipantView is the public slice of a participant's state.
type ParticipantView struct {
	ID           string         `json:"id"`
	DisplayName  string         `json:"display_name"`
	IsAutomated  bool           `json:"is_automated"`
	IsCreator    bool           `json:"is_creator"`
	Color        domain.Color   `json:"color,omitempty"`
	Score        int            `json:"score"`
	HandSize     int            `json:"hand_size"`
	GiantMarker  int            `json:"giant_marker"`
	MerfolkTrack int            `json:"merfolk_track"`
	TrollTokens  []int          `json:"troll_tokens,omitempty"`
	OrcTokens    []domain.Color `json:"orc_tokens,omitempty"`
}

// MatchStateView is the broadcast snapshot: everything public about the
// match. Hands and the deck stay hidden; hand contents travel only in
// targeted deal/draw events.
type MatchStateView struct {
	MatchID      string                   `json:"match_id"`
	Phase        domain.MatchPhase        `json:"phase"`
	Era          int                      `json:"era"`
	ActiveID     string                   `json:"active_id,omitempty"`
	TurnOrder    []string                 `json:"turn_order,omitempty"`
	Tribes       []domain.Tribe           `json:"tribes"`
	WinnerID     string                   `json:"winner_id,omitempty"`
	DeckSize     int                      `json:"deck_size"`
	Dragons      int                      `json:"dragons_revealed"`
	Participants []ParticipantView        `json:"participants"`
	Market       []*domain.Card           `json:"market"`
	Territories  []*domain.Territory      `json:"territories"`
	Claims       []*domain.TerritoryClaim `json:"claims"`
	Pending      []*domain.PendingEffect  `json:"pending,omitempty"`
}

// toMatchStateView builds the public snapshot for broadcast.
func toMatchStateView(m *domain.Match, names map[string]string) *MatchStateView {
	view := &MatchStateView{
		MatchID:     m.ID,
		Phase:       m.Phase,
		Era:         m.Era,
		ActiveID:    m.ActiveID,
		TurnOrder:   m.TurnOrder,
		Tribes:      m.Tribes,
		WinnerID:    m.WinnerID,
		DeckSize:    len(m.DeckCards()),
		Dragons:     m.RevealedDragons(),
		Market:      m.MarketCards(),
		Territories: m.Territories,
		Claims:      m.Claims,
		Pending:     m.Pending,
	}
	for _, p := range m.Participants {
		name := names[p.ID]
		if name == "" && p.IsAutomated() {
			name = bot.IdentityFor(p.ID).DisplayName
		}
		if name == "" {
			name = p.ID
		}
		view.Participants = append(view.Participants, ParticipantView{
			ID:           p.ID,
			DisplayName:  name,
			IsAutomated:  p.IsAutomated(),
			IsCreator:    p.ID == m.CreatorID,
			Color:        p.Color,
			Score:        p.Score,
			HandSize:     len(m.Hand(p.ID)),
			GiantMarker:  p.GiantMarker,
			MerfolkTrack: p.MerfolkTrack,
			TrollTokens:  p.TrollTokens,
			OrcTokens:    p.OrcTokens,
		})
	}
	return view
}
