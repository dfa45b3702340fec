package bot

import (
	"errors"
	"math/rand"

	"tribelands/internal/app"
	"tribelands/internal/domain"
)

// ErrNoLegalAction is returned when a participant has nothing to submit.
var ErrNoLegalAction = errors.New("no legal action available")

// GreedyBot plays the biggest band it can, draws while its hand is thin,
// and otherwise picks up the market card matching its hand best.
type GreedyBot struct{}

func (b *GreedyBot) ChooseAction(m *domain.Match, participantID string, legal []app.Action) (app.ActionSubmission, error) {
	if len(legal) == 0 {
		return app.ActionSubmission{}, ErrNoLegalAction
	}

	// Obligations first: a free-token offer is the only offer there is.
	if a := firstOfType(legal, app.ActionFreeToken); a != nil {
		return app.ActionSubmission{
			Type:            app.ActionFreeToken,
			PendingEffectID: a.PendingEffectID,
			TerritoryID:     bestTerritory(m, participantID),
		}, nil
	}

	best := bestBand(m, legal)
	if best != nil && effectiveSize(m, best) >= DefaultTuning.MinBandSize {
		return bandSubmission(best), nil
	}

	if len(m.Hand(participantID)) < DefaultTuning.DrawThreshold {
		if a := firstOfType(legal, app.ActionDraw); a != nil {
			return app.ActionSubmission{Type: app.ActionDraw}, nil
		}
	}
	if a := bestPickUp(m, participantID, legal); a != nil {
		return app.ActionSubmission{Type: app.ActionPickUp, CardID: a.CardID}, nil
	}
	if a := firstOfType(legal, app.ActionDraw); a != nil {
		return app.ActionSubmission{Type: app.ActionDraw}, nil
	}
	if best != nil {
		return bandSubmission(best), nil
	}
	return app.ActionSubmission{}, ErrNoLegalAction
}

// RandomBot submits a uniformly random legal action.
type RandomBot struct {
	Rng *rand.Rand
}

func (b *RandomBot) ChooseAction(m *domain.Match, participantID string, legal []app.Action) (app.ActionSubmission, error) {
	if len(legal) == 0 {
		return app.ActionSubmission{}, ErrNoLegalAction
	}
	a := legal[b.Rng.Intn(len(legal))]
	switch a.Type {
	case app.ActionFreeToken:
		return app.ActionSubmission{
			Type:            app.ActionFreeToken,
			PendingEffectID: a.PendingEffectID,
			TerritoryID:     randomTerritory(m, b.Rng),
		}, nil
	case app.ActionPlayBand:
		return bandSubmission(&a), nil
	case app.ActionPickUp:
		return app.ActionSubmission{Type: app.ActionPickUp, CardID: a.CardID}, nil
	default:
		return app.ActionSubmission{Type: app.ActionDraw}, nil
	}
}

func bandSubmission(a *app.Action) app.ActionSubmission {
	return app.ActionSubmission{
		Type:            app.ActionPlayBand,
		LeaderID:        a.LeaderID,
		CardIDs:         a.CardIDs,
		PendingEffectID: a.PendingEffectID,
	}
}

func firstOfType(legal []app.Action, t app.ActionType) *app.Action {
	for i := range legal {
		if legal[i].Type == t {
			return &legal[i]
		}
	}
	return nil
}

// bestBand returns the band proposal with the highest effective size.
func bestBand(m *domain.Match, legal []app.Action) *app.Action {
	var best *app.Action
	bestSize := 0
	for i := range legal {
		if legal[i].Type != app.ActionPlayBand {
			continue
		}
		if size := effectiveSize(m, &legal[i]); size > bestSize {
			best = &legal[i]
			bestSize = size
		}
	}
	return best
}

func effectiveSize(m *domain.Match, a *app.Action) int {
	leader := m.Card(a.LeaderID)
	if leader == nil {
		return len(a.CardIDs)
	}
	return domain.EffectiveBandSize(leader.Tribe, len(a.CardIDs))
}

// bestPickUp prefers a market card matching the most common color in hand.
func bestPickUp(m *domain.Match, participantID string, legal []app.Action) *app.Action {
	colorCounts := make(map[domain.Color]int)
	for _, c := range m.Hand(participantID) {
		if c.Color != "" {
			colorCounts[c.Color]++
		}
	}
	var best *app.Action
	bestCount := -1
	for i := range legal {
		if legal[i].Type != app.ActionPickUp {
			continue
		}
		count := 0
		if c := m.Card(legal[i].CardID); c != nil {
			count = colorCounts[c.Color]
		}
		if count > bestCount {
			best = &legal[i]
			bestCount = count
		}
	}
	return best
}

// bestTerritory reinforces the territory where the bot already holds the
// most tokens, defaulting to the first.
func bestTerritory(m *domain.Match, participantID string) string {
	best := ""
	bestTokens := -1
	for _, t := range m.Territories {
		if n := m.TokensIn(t.ID, participantID); n > bestTokens {
			best = t.ID
			bestTokens = n
		}
	}
	return best
}

func randomTerritory(m *domain.Match, rng *rand.Rand) string {
	if len(m.Territories) == 0 {
		return ""
	}
	return m.Territories[rng.Intn(len(m.Territories))].ID
}
