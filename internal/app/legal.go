package app

import (
	"fmt"

	"tribelands/internal/domain"
)

// LegalActions computes the ordered set of actions the participant may
// currently submit. An ended match, or an unknown participant, yields none.
// Open pending effects restrict the set: a free-token obligation is the
// only offer while it stands, and a play-band obligation filters the set to
// stamped band plays.
func LegalActions(m *domain.Match, actorID string) []Action {
	if m == nil || m.Phase != domain.PhaseStarted {
		return nil
	}
	if m.Participant(actorID) == nil {
		return nil
	}

	var bandPending *domain.PendingEffect
	for _, pe := range m.OpenPending(actorID) {
		switch pe.Kind {
		case domain.PendingFreeToken:
			return []Action{{Type: ActionFreeToken, PendingEffectID: pe.ID}}
		case domain.PendingPlayBand:
			if bandPending == nil {
				bandPending = pe
			}
		default:
			panic(fmt.Sprintf("unhandled pending effect kind %q", pe.Kind))
		}
	}

	hand := m.Hand(actorID)
	var out []Action
	if bandPending == nil && len(hand) < domain.HandCap {
		out = append(out, Action{Type: ActionDraw})
		for _, c := range m.MarketCards() {
			out = append(out, Action{Type: ActionPickUp, CardID: c.ID})
		}
	}
	for _, prop := range domain.LegalBands(hand) {
		a := Action{Type: ActionPlayBand, LeaderID: prop.LeaderID, CardIDs: prop.CardIDs}
		if bandPending != nil {
			a.PendingEffectID = bandPending.ID
		}
		out = append(out, a)
	}
	return out
}

// LegalActions is the Service-level entry point used by the dispatcher's
// callers and by bot policies.
func (s *Service) LegalActions(m *domain.Match, actorID string) []Action {
	return LegalActions(m, actorID)
}
