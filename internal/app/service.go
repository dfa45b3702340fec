package app

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"tribelands/internal/domain"
)

// Service contains the turn-engine use-cases operating on a match
// aggregate. The service holds no per-match state; every call receives the
// aggregate, mutates a clone, and returns the replacement on success so a
// failed action leaves nothing partially applied.
type Service struct {
	rng   *rand.Rand
	newID func() string
}

// NewService constructs a Service with the provided rng or a time-seeded
// default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng, newID: uuid.NewString}
}

// SubmitAction validates that the actor may act, routes the submission to
// the matching handler, advances the turn when no obligation remains, and
// returns the updated aggregate with the events to broadcast.
func (s *Service) SubmitAction(m *domain.Match, actorID string, sub ActionSubmission) (*domain.Match, []Event, error) {
	if m == nil {
		return nil, nil, NotFound("match not found")
	}
	if m.Phase != domain.PhaseStarted {
		return nil, nil, BadRequest("match is not in progress")
	}
	if m.Participant(actorID) == nil {
		return nil, nil, BadRequest("unknown participant %s", actorID)
	}
	if m.ActiveID != actorID {
		return nil, nil, BadRequest("it is not participant %s's turn", actorID)
	}

	next := m.Clone()
	actor := next.Participant(actorID)
	eraBefore := next.Era

	events, err := s.apply(next, actor, sub)
	if err != nil {
		return nil, nil, err
	}

	// A turn ends only once the match is still running in the same era and
	// the actor owes nothing; era transitions pick their own first player.
	if next.Phase == domain.PhaseStarted && next.Era == eraBefore {
		if len(next.OpenPending(actor.ID)) == 0 {
			next.ActiveID = domain.NextParticipantID(actor.ID, next.TurnOrder)
			events = append(events, Event{
				Kind:    EventTurnAdvanced,
				Payload: TurnAdvancedPayload{ActiveID: next.ActiveID},
			})
		}
	}
	return next, events, nil
}

func (s *Service) apply(m *domain.Match, p *domain.Participant, sub ActionSubmission) ([]Event, error) {
	// Open obligations restrict what may be submitted. A free-token
	// obligation takes precedence over a band-play one, mirroring the
	// ordering in LegalActions.
	if hasOpenKind(m, p.ID, domain.PendingFreeToken) {
		if sub.Type != ActionFreeToken {
			return nil, BadRequest("a free token must be placed first")
		}
	} else if hasOpenKind(m, p.ID, domain.PendingPlayBand) && sub.Type != ActionPlayBand {
		return nil, BadRequest("another band must be played first")
	}

	switch sub.Type {
	case ActionDraw:
		return s.handleDraw(m, p)
	case ActionPickUp:
		return s.handlePickUp(m, p, sub.CardID)
	case ActionPlayBand:
		return s.handlePlayBand(m, p, sub)
	case ActionFreeToken:
		return s.handleFreeToken(m, p, sub)
	default:
		return nil, BadRequest("unknown action type %q", sub.Type)
	}
}

// handleDraw performs the voluntary single-card draw.
func (s *Service) handleDraw(m *domain.Match, p *domain.Participant) ([]Event, error) {
	return s.drawCards(m, p, 1, true)
}

// drawCards walks the deck in ascending position order collecting qty
// non-dragon cards into the hand. Dragons encountered on the way are
// revealed and removed from the sequence; revealing the last dragon of the
// era triggers the era or match transition.
func (s *Service) drawCards(m *domain.Match, p *domain.Participant, qty int, enforceCap bool) ([]Event, error) {
	if enforceCap && len(m.Hand(p.ID)) >= domain.HandCap {
		return nil, BadRequest("hand is at the %d card cap", domain.HandCap)
	}

	var events []Event
	var drawn []*domain.Card
	for _, c := range m.DeckCards() {
		if len(drawn) >= qty {
			break
		}
		if c.Tribe == domain.TribeDragon {
			c.State = domain.CardRevealed
			c.Index = domain.NoIndex
			events = append(events, Event{
				Kind:    EventDragonRevealed,
				Payload: DragonRevealedPayload{CardID: c.ID, Revealed: m.RevealedDragons()},
			})
			continue
		}
		c.State = domain.CardInHand
		c.OwnerID = p.ID
		c.Index = domain.NoIndex
		drawn = append(drawn, c)
	}
	if len(drawn) > 0 {
		events = append(events, Event{
			Kind:       EventCardsDrawn,
			Payload:    CardsDrawnPayload{ParticipantID: p.ID, Cards: drawn},
			Recipients: []string{p.ID},
		})
	}

	if m.RevealedDragons() >= domain.DragonsPerEra {
		if m.Era >= domain.FinalEra(len(m.Participants)) {
			events = append(events, s.endMatch(m)...)
		} else {
			events = append(events, s.startNewEra(m)...)
		}
	}
	return events, nil
}

// handlePickUp moves one market card to the hand.
func (s *Service) handlePickUp(m *domain.Match, p *domain.Participant, cardID string) ([]Event, error) {
	if len(m.Hand(p.ID)) >= domain.HandCap {
		return nil, BadRequest("hand is at the %d card cap", domain.HandCap)
	}
	c := m.Card(cardID)
	if c == nil {
		return nil, NotFound("card %s not found", cardID)
	}
	if c.State != domain.CardInMarket {
		return nil, BadRequest("card %s is not in the market", cardID)
	}
	c.State = domain.CardInHand
	c.OwnerID = p.ID
	c.Index = domain.NoIndex
	return []Event{{
		Kind:    EventCardPickedUp,
		Payload: CardPickedUpPayload{ParticipantID: p.ID, CardID: cardID},
	}}, nil
}

// handlePlayBand validates and applies a band play: cards move to the band,
// the matching territory may gain a token, the leader tribe's effect
// resolves, and unused hand cards are discarded to the market.
func (s *Service) handlePlayBand(m *domain.Match, p *domain.Participant, sub ActionSubmission) ([]Event, error) {
	eraBefore := m.Era

	if sub.PendingEffectID != "" {
		pe := m.PendingByID(sub.PendingEffectID)
		if pe == nil || pe.ParticipantID != p.ID || pe.Kind != domain.PendingPlayBand || pe.Status != domain.PendingOpen {
			return nil, BadRequest("no open band-play obligation %s", sub.PendingEffectID)
		}
		pe.Status = domain.PendingResolved
	} else if hasOpenKind(m, p.ID, domain.PendingPlayBand) {
		return nil, BadRequest("band play must name its pending effect")
	}

	hand := m.Hand(p.ID)
	leader := m.Card(sub.LeaderID)
	if leader == nil {
		return nil, NotFound("card %s not found", sub.LeaderID)
	}
	for _, id := range sub.CardIDs {
		if m.Card(id) == nil {
			return nil, NotFound("card %s not found", id)
		}
	}
	if !domain.IsLegalBand(hand, sub.LeaderID, sub.CardIDs) {
		return nil, BadRequest("cards do not form a legal band")
	}

	// Snapshot the leftover hand now: forced draws from the tribe effect
	// must not end up in the discard below.
	var leftover []*domain.Card
	for _, c := range hand {
		if !containsString(sub.CardIDs, c.ID) {
			leftover = append(leftover, c)
		}
	}

	for _, id := range sub.CardIDs {
		c := m.Card(id)
		c.State = domain.CardInBand
		c.OwnerID = p.ID
		c.LeaderID = leader.ID
		c.Index = domain.NoIndex
	}

	size := domain.EffectiveBandSize(leader.Tribe, len(sub.CardIDs))
	events := []Event{{
		Kind: EventBandPlayed,
		Payload: BandPlayedPayload{
			ParticipantID: p.ID,
			LeaderID:      leader.ID,
			Tribe:         leader.Tribe,
			CardIDs:       sub.CardIDs,
			Size:          size,
		},
	}}

	traits := domain.Traits[leader.Tribe]
	tokenAdded := false
	if !traits.SkipsClaim {
		claimEvents, added, err := s.claimTerritory(m, p, leader, size, sub.ClaimColor)
		if err != nil {
			return nil, err
		}
		tokenAdded = added
		events = append(events, claimEvents...)
	}
	if tokenAdded && traits.ExtraPlayOnClaim && len(domain.LegalBands(m.Hand(p.ID))) > 0 {
		// The obligation is only created when the remaining hand can
		// still form a band; otherwise it could never be fulfilled and
		// the turn would never end.
		events = append(events, s.createPending(m, p, domain.PendingPlayBand))
	}

	effectEvents, err := s.resolveTribeEffect(m, p, bandPlay{Leader: leader, Size: size})
	if err != nil {
		return nil, err
	}
	events = append(events, effectEvents...)

	discardEvents, err := s.discardLeftover(m, p, leader, size, leftover, sub.Keep, eraBefore)
	if err != nil {
		return nil, err
	}
	return append(events, discardEvents...), nil
}

// claimTerritory attempts to place one token for the band. The claim color
// is the leader's unless its tribe may choose among eligible territories. A
// token lands only when the band outgrows the participant's current count.
func (s *Service) claimTerritory(m *domain.Match, p *domain.Participant, leader *domain.Card, size int, chosen domain.Color) ([]Event, bool, error) {
	color := leader.Color
	choosing := domain.Traits[leader.Tribe].ChoosesClaimColor && chosen != ""
	if choosing {
		color = chosen
	}

	t := m.TerritoryByColor(color)
	if t == nil {
		return nil, false, NotFound("no territory of color %s", color)
	}
	if size <= m.TokensIn(t.ID, p.ID) {
		if choosing {
			return nil, false, BadRequest("territory %s is not eligible for this band", t.ID)
		}
		return nil, false, nil
	}

	tokens := m.AddToken(t.ID, p.ID)
	return []Event{{
		Kind:    EventTokenPlaced,
		Payload: TokenPlacedPayload{ParticipantID: p.ID, TerritoryID: t.ID, Tokens: tokens},
	}}, true, nil
}

// discardLeftover returns unused hand cards to the market. No discard
// happens while a band-play obligation stays open, or when the era just
// turned over under this action. Leaders whose tribe keeps cards may retain
// up to band-size cards named in the keep-list.
func (s *Service) discardLeftover(m *domain.Match, p *domain.Participant, leader *domain.Card, size int, leftover []*domain.Card, keep []string, eraBefore int) ([]Event, error) {
	if m.Phase != domain.PhaseStarted || m.Era != eraBefore {
		return nil, nil
	}
	if hasOpenKind(m, p.ID, domain.PendingPlayBand) {
		return nil, nil
	}

	if len(keep) > 0 {
		if !domain.Traits[leader.Tribe].KeepsUnplayed {
			return nil, BadRequest("this band's tribe cannot keep unplayed cards")
		}
		if len(keep) > size {
			return nil, BadRequest("keep-list exceeds the band size of %d", size)
		}
		seen := make(map[string]bool, len(keep))
		for _, id := range keep {
			if seen[id] {
				return nil, BadRequest("keep-list repeats card %s", id)
			}
			seen[id] = true
			found := false
			for _, c := range leftover {
				if c.ID == id {
					found = true
					break
				}
			}
			if !found {
				return nil, BadRequest("keep-list card %s is not in the remaining hand", id)
			}
		}
	}

	index := s.nextMarketIndex(m)
	for _, c := range leftover {
		if containsString(keep, c.ID) {
			continue
		}
		c.State = domain.CardInMarket
		c.OwnerID = ""
		c.Index = index
		index++
	}
	return nil, nil
}

// handleFreeToken fulfills a free-token obligation by placing one token in
// the named territory, with no band-size condition.
func (s *Service) handleFreeToken(m *domain.Match, p *domain.Participant, sub ActionSubmission) ([]Event, error) {
	var pe *domain.PendingEffect
	if sub.PendingEffectID != "" {
		pe = m.PendingByID(sub.PendingEffectID)
		if pe != nil && (pe.ParticipantID != p.ID || pe.Kind != domain.PendingFreeToken || pe.Status != domain.PendingOpen) {
			pe = nil
		}
	} else {
		for _, open := range m.OpenPending(p.ID) {
			if open.Kind == domain.PendingFreeToken {
				pe = open
				break
			}
		}
	}
	if pe == nil {
		return nil, BadRequest("no open free-token obligation for participant %s", p.ID)
	}

	t := m.TerritoryByID(sub.TerritoryID)
	if t == nil {
		return nil, NotFound("territory %s not found", sub.TerritoryID)
	}

	tokens := m.AddToken(t.ID, p.ID)
	pe.Status = domain.PendingResolved
	return []Event{{
		Kind:    EventTokenPlaced,
		Payload: TokenPlacedPayload{ParticipantID: p.ID, TerritoryID: t.ID, Tokens: tokens},
	}}, nil
}

// createPending appends a new open obligation for the participant.
func (s *Service) createPending(m *domain.Match, p *domain.Participant, kind domain.PendingKind) Event {
	pe := &domain.PendingEffect{
		ID:            s.newID(),
		MatchID:       m.ID,
		ParticipantID: p.ID,
		Kind:          kind,
		Status:        domain.PendingOpen,
	}
	m.Pending = append(m.Pending, pe)
	return Event{
		Kind:    EventPendingCreated,
		Payload: PendingCreatedPayload{PendingEffectID: pe.ID, ParticipantID: p.ID, Kind: kind},
	}
}

func (s *Service) nextMarketIndex(m *domain.Match) int {
	next := 0
	for _, c := range m.Cards {
		if c.State == domain.CardInMarket && c.Index >= next {
			next = c.Index + 1
		}
	}
	return next
}

func hasOpenKind(m *domain.Match, participantID string, kind domain.PendingKind) bool {
	for _, pe := range m.OpenPending(participantID) {
		if pe.Kind == kind {
			return true
		}
	}
	return false
}

func containsString(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
