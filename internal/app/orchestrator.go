package app

import (
	"sort"

	"tribelands/internal/domain"
)

// StartMatch validates the creator's start request, generates territories,
// deals the first era and fixes the turn order. It returns the updated
// aggregate and the events to broadcast.
func (s *Service) StartMatch(m *domain.Match, actorID string) (*domain.Match, []Event, error) {
	if m == nil {
		return nil, nil, NotFound("match not found")
	}
	if m.Phase != domain.PhaseCreated {
		return nil, nil, BadRequest("match has already started")
	}
	if actorID != m.CreatorID {
		return nil, nil, Forbidden("only the match creator can start the match")
	}
	if n := len(m.Participants); n < domain.MinParticipants || n > domain.MaxParticipants {
		return nil, nil, BadRequest("a match needs %d to %d participants, have %d",
			domain.MinParticipants, domain.MaxParticipants, len(m.Participants))
	}
	if err := validateTribes(m.Tribes); err != nil {
		return nil, nil, err
	}

	next := m.Clone()
	next.Phase = domain.PhaseStarted
	next.Era = 1

	// Random but fixed turn order for the whole match.
	order := make([]string, 0, len(next.Participants))
	for _, p := range next.Participants {
		order = append(order, p.ID)
	}
	s.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	next.TurnOrder = order
	next.ActiveID = order[0]

	for i, id := range order {
		next.Participant(id).Color = domain.AllColors[i%len(domain.AllColors)]
	}

	s.generateTerritories(next)

	events := []Event{{
		Kind:    EventMatchStarted,
		Payload: MatchStartedPayload{Era: next.Era, TurnOrder: order, ActiveID: next.ActiveID},
	}}
	events = append(events, s.deal(next)...)
	return next, events, nil
}

func validateTribes(tribes []domain.Tribe) error {
	if len(tribes) < 2 {
		return BadRequest("at least two tribes must be selected")
	}
	seen := make(map[domain.Tribe]bool, len(tribes))
	for _, t := range tribes {
		if !domain.KnownTribe(t) {
			return BadRequest("unknown tribe %q", t)
		}
		if seen[t] {
			return BadRequest("tribe %q selected twice", t)
		}
		seen[t] = true
	}
	return nil
}

// generateTerritories builds the six territories, drawing each one's three
// ascending reward tiers from the fixed value multiset.
func (s *Service) generateTerritories(m *domain.Match) {
	pool := append([]int(nil), domain.TerritoryValuePool...)
	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	m.Territories = m.Territories[:0]
	for i, color := range domain.AllColors {
		values := pool[i*3 : i*3+3]
		sort.Ints(values)
		m.Territories = append(m.Territories, &domain.Territory{
			ID:      s.newID(),
			MatchID: m.ID,
			Color:   color,
			Values:  [3]int{values[0], values[1], values[2]},
		})
	}
}

// deal replaces the match's cards for a fresh era: one card to each
// participant, two per participant to the market, and the remaining deck
// built with the three dragons shuffled into its bottom half.
func (s *Service) deal(m *domain.Match) []Event {
	cards := s.buildTribeCards(m)
	s.rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })

	var events []Event
	idx := 0
	for _, pid := range m.TurnOrder {
		c := cards[idx]
		idx++
		c.State = domain.CardInHand
		c.OwnerID = pid
		c.Index = domain.NoIndex
		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{ParticipantID: pid, Cards: []*domain.Card{c}},
			Recipients: []string{pid},
		})
	}
	for i := 0; i < 2*len(m.Participants); i++ {
		c := cards[idx]
		idx++
		c.State = domain.CardInMarket
		c.Index = i
	}

	rest := cards[idx:]
	half := len(rest) / 2
	bottom := append([]*domain.Card{}, rest[half:]...)
	for i := 0; i < domain.DragonsPerEra; i++ {
		bottom = append(bottom, &domain.Card{
			ID:    s.newID(),
			Tribe: domain.TribeDragon,
			State: domain.CardInDeck,
			Index: domain.NoIndex,
		})
	}
	s.rng.Shuffle(len(bottom), func(i, j int) { bottom[i], bottom[j] = bottom[j], bottom[i] })

	deck := append(append([]*domain.Card{}, rest[:half]...), bottom...)
	for i, c := range deck {
		c.State = domain.CardInDeck
		c.Index = i
	}

	all := append([]*domain.Card{}, cards...)
	for _, c := range deck {
		if c.Tribe == domain.TribeDragon {
			all = append(all, c)
		}
	}
	m.Cards = all
	return events
}

// buildTribeCards creates the era's tribe cards: two per color for colored
// tribes, a full colorless set for wild tribes.
func (s *Service) buildTribeCards(m *domain.Match) []*domain.Card {
	var cards []*domain.Card
	for _, tribe := range m.Tribes {
		if domain.Traits[tribe].Colorless {
			for i := 0; i < domain.CardsPerTribe; i++ {
				cards = append(cards, &domain.Card{ID: s.newID(), Tribe: tribe, Index: domain.NoIndex})
			}
			continue
		}
		for _, color := range domain.AllColors {
			for i := 0; i < domain.CardsPerTribe/len(domain.AllColors); i++ {
				cards = append(cards, &domain.Card{ID: s.newID(), Tribe: tribe, Color: color, Index: domain.NoIndex})
			}
		}
	}
	return cards
}

// startNewEra closes the current era: scores it (the orc board waits for
// the final era), resets the per-era counters, re-deals, and hands the
// first turn to the trailing participant.
func (s *Service) startNewEra(m *domain.Match) []Event {
	scoring := domain.ScoreEra(m, false)
	totals := s.applyScoring(m, scoring)

	first := domain.NewEraFirstParticipant(totals, scoring.TrollTotals, m.ActiveID, m.TurnOrder)

	for _, p := range m.Participants {
		p.GiantMarker = 0
		p.TrollTokens = nil
	}
	m.Pending = nil
	m.Era++
	m.ActiveID = first

	events := []Event{{
		Kind:    EventEraEnded,
		Payload: EraEndedPayload{Scoring: scoring, Totals: totals},
	}}
	events = append(events, s.deal(m)...)
	events = append(events, Event{
		Kind:    EventEraStarted,
		Payload: EraStartedPayload{Era: m.Era, ActiveID: m.ActiveID},
	})
	return events
}

// endMatch scores the final era including the orc board, fixes the winner
// and closes the match.
func (s *Service) endMatch(m *domain.Match) []Event {
	scoring := domain.ScoreEra(m, true)
	totals := s.applyScoring(m, scoring)

	m.Phase = domain.PhaseEnded
	m.WinnerID = pickWinner(m)
	m.Pending = nil

	return []Event{
		{Kind: EventEraEnded, Payload: EraEndedPayload{Scoring: scoring, Totals: totals}},
		{Kind: EventMatchEnded, Payload: MatchEndedPayload{WinnerID: m.WinnerID, Totals: totals}},
	}
}

func (s *Service) applyScoring(m *domain.Match, scoring *domain.EraScoring) map[string]int {
	totals := make(map[string]int, len(m.Participants))
	for _, p := range m.Participants {
		p.Score += scoring.Deltas[p.ID].Total()
		totals[p.ID] = p.Score
	}
	return totals
}

// pickWinner ranks by score, then troll-token total, then turn-order
// position.
func pickWinner(m *domain.Match) string {
	best := ""
	for _, id := range m.TurnOrder {
		if best == "" {
			best = id
			continue
		}
		p, b := m.Participant(id), m.Participant(best)
		if p.Score > b.Score || (p.Score == b.Score && p.TrollTotal() > b.TrollTotal()) {
			best = id
		}
	}
	return best
}
