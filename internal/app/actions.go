package app

import "tribelands/internal/domain"

// ActionType identifies the categories of actions a participant can submit.
type ActionType string

const (
	ActionDraw      ActionType = "draw"
	ActionPickUp    ActionType = "pick_up"
	ActionPlayBand  ActionType = "play_band"
	ActionFreeToken ActionType = "add_free_token"
)

// Action is a legal-action descriptor offered to a participant. Band plays
// list the maximal playable set; any subset containing the leader is valid
// on submission.
type Action struct {
	Type     ActionType `json:"type"`
	CardID   string     `json:"card_id,omitempty"` // pick-up target
	LeaderID string     `json:"leader_id,omitempty"`
	CardIDs  []string   `json:"card_ids,omitempty"`

	// PendingEffectID stamps actions that satisfy an open pending effect.
	PendingEffectID string `json:"pending_effect_id,omitempty"`
}

// ActionSubmission is a participant's chosen action as submitted to the
// dispatcher.
type ActionSubmission struct {
	Type            ActionType `json:"type"`
	CardID          string     `json:"card_id,omitempty"`
	LeaderID        string     `json:"leader_id,omitempty"`
	CardIDs         []string   `json:"card_ids,omitempty"`
	PendingEffectID string     `json:"pending_effect_id,omitempty"`

	// ClaimColor selects the claimed territory for leaders whose tribe may
	// choose the claim color.
	ClaimColor domain.Color `json:"claim_color,omitempty"`

	// TerritoryID names the target territory for add_free_token.
	TerritoryID string `json:"territory_id,omitempty"`

	// Keep lists hand cards to retain instead of discarding after a band
	// play, for leaders whose tribe allows it.
	Keep []string `json:"keep,omitempty"`
}
