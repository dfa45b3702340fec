package app

import "tribelands/internal/domain"

// EventKind identifies emitted engine events for transport dispatch.
type EventKind string

const (
	EventMatchStarted      EventKind = "match_started"
	EventHandDealt         EventKind = "hand_dealt"
	EventCardsDrawn        EventKind = "cards_drawn"
	EventDragonRevealed    EventKind = "dragon_revealed"
	EventCardPickedUp      EventKind = "card_picked_up"
	EventBandPlayed        EventKind = "band_played"
	EventTokenPlaced       EventKind = "token_placed"
	EventPendingCreated    EventKind = "pending_created"
	EventOrcTokenBanked    EventKind = "orc_token_banked"
	EventGiantMarkerTaken  EventKind = "giant_marker_taken"
	EventMerfolkAdvanced   EventKind = "merfolk_advanced"
	EventTrollTokenClaimed EventKind = "troll_token_claimed"
	EventTurnAdvanced      EventKind = "turn_advanced"
	EventEraEnded          EventKind = "era_ended"
	EventEraStarted        EventKind = "era_started"
	EventMatchEnded        EventKind = "match_ended"
)

// Event is an engine event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // participant ids; empty means broadcast
}

type MatchStartedPayload struct {
	Era       int      `json:"era"`
	TurnOrder []string `json:"turn_order"`
	ActiveID  string   `json:"active_id"`
}

type HandDealtPayload struct {
	ParticipantID string         `json:"participant_id"`
	Cards         []*domain.Card `json:"cards"`
}

type CardsDrawnPayload struct {
	ParticipantID string         `json:"participant_id"`
	Cards         []*domain.Card `json:"cards"`
}

type DragonRevealedPayload struct {
	CardID   string `json:"card_id"`
	Revealed int    `json:"revealed"` // dragons revealed this era so far
}

type CardPickedUpPayload struct {
	ParticipantID string `json:"participant_id"`
	CardID        string `json:"card_id"`
}

type BandPlayedPayload struct {
	ParticipantID string       `json:"participant_id"`
	LeaderID      string       `json:"leader_id"`
	Tribe         domain.Tribe `json:"tribe"`
	CardIDs       []string     `json:"card_ids"`
	Size          int          `json:"size"` // effective band size
}

type TokenPlacedPayload struct {
	ParticipantID string `json:"participant_id"`
	TerritoryID   string `json:"territory_id"`
	Tokens        int    `json:"tokens"` // participant's new count there
}

type PendingCreatedPayload struct {
	PendingEffectID string             `json:"pending_effect_id"`
	ParticipantID   string             `json:"participant_id"`
	Kind            domain.PendingKind `json:"kind"`
}

type OrcTokenBankedPayload struct {
	ParticipantID string       `json:"participant_id"`
	Color         domain.Color `json:"color"`
}

type GiantMarkerTakenPayload struct {
	ParticipantID string `json:"participant_id"`
	Marker        int    `json:"marker"`
}

type MerfolkAdvancedPayload struct {
	ParticipantID string `json:"participant_id"`
	From          int    `json:"from"`
	To            int    `json:"to"`
}

type TrollTokenClaimedPayload struct {
	ParticipantID string `json:"participant_id"`
	Value         int    `json:"value"`
}

type TurnAdvancedPayload struct {
	ActiveID string `json:"active_id"`
}

type EraEndedPayload struct {
	Scoring *domain.EraScoring `json:"scoring"`
	Totals  map[string]int     `json:"totals"`
}

type EraStartedPayload struct {
	Era      int    `json:"era"`
	ActiveID string `json:"active_id"`
}

type MatchEndedPayload struct {
	WinnerID string         `json:"winner_id"`
	Totals   map[string]int `json:"totals"`
}
