package app

import (
	"tribelands/internal/domain"
)

// bandPlay describes a just-played band for effect dispatch.
type bandPlay struct {
	Leader *domain.Card
	Size   int // effective band size
}

// tribeEffect is the secondary effect a tribe applies when one of its bands
// is played. Tribes absent from the dispatch table are no-ops.
type tribeEffect interface {
	onBandPlayed(s *Service, m *domain.Match, p *domain.Participant, band bandPlay) ([]Event, error)
}

var tribeEffects = map[domain.Tribe]tribeEffect{
	domain.TribeOrc:     orcEffect{},
	domain.TribeGiant:   giantEffect{},
	domain.TribeMerfolk: merfolkEffect{},
	domain.TribeWizard:  wizardEffect{},
	domain.TribeTroll:   trollEffect{},
}

func (s *Service) resolveTribeEffect(m *domain.Match, p *domain.Participant, band bandPlay) ([]Event, error) {
	effect, ok := tribeEffects[band.Leader.Tribe]
	if !ok {
		return nil, nil
	}
	return effect.onBandPlayed(s, m, p, band)
}

// orcEffect banks the band's color on the participant's orc board. Banking
// is idempotent per color.
type orcEffect struct{}

func (orcEffect) onBandPlayed(s *Service, m *domain.Match, p *domain.Participant, band bandPlay) ([]Event, error) {
	color := band.Leader.Color
	for _, held := range p.OrcTokens {
		if held == color {
			return nil, nil
		}
	}
	p.OrcTokens = append(p.OrcTokens, color)
	return []Event{{
		Kind:    EventOrcTokenBanked,
		Payload: OrcTokenBankedPayload{ParticipantID: p.ID, Color: color},
	}}, nil
}

// giantEffect races for the giant marker: the band takes it only if no other
// participant holds a marker of equal or greater value, scoring 2 raw points
// immediately.
type giantEffect struct{}

func (giantEffect) onBandPlayed(s *Service, m *domain.Match, p *domain.Participant, band bandPlay) ([]Event, error) {
	for _, other := range m.Participants {
		if other.ID != p.ID && other.GiantMarker >= band.Size {
			return nil, nil
		}
	}
	p.GiantMarker = band.Size
	p.Score += 2
	return []Event{{
		Kind:    EventGiantMarkerTaken,
		Payload: GiantMarkerTakenPayload{ParticipantID: p.ID, Marker: band.Size},
	}}, nil
}

// merfolkEffect advances the participant's track by the band size; each
// checkpoint crossed grants one free-token obligation.
type merfolkEffect struct{}

func (merfolkEffect) onBandPlayed(s *Service, m *domain.Match, p *domain.Participant, band bandPlay) ([]Event, error) {
	from := p.MerfolkTrack
	to := from + band.Size
	p.MerfolkTrack = to

	events := []Event{{
		Kind:    EventMerfolkAdvanced,
		Payload: MerfolkAdvancedPayload{ParticipantID: p.ID, From: from, To: to},
	}}
	for _, checkpoint := range domain.MerfolkCheckpoints {
		if from < checkpoint && to >= checkpoint {
			events = append(events, s.createPending(m, p, domain.PendingFreeToken))
		}
	}
	return events, nil
}

// wizardEffect forces a draw of band-size cards, ignoring the hand cap and
// capped by the remaining deck.
type wizardEffect struct{}

func (wizardEffect) onBandPlayed(s *Service, m *domain.Match, p *domain.Participant, band bandPlay) ([]Event, error) {
	return s.drawCards(m, p, band.Size, false)
}

// trollEffect claims a troll token from the shared {1..6} pool: the token
// sized exactly to the band if unclaimed, otherwise the largest unclaimed
// token strictly smaller, otherwise nothing.
type trollEffect struct{}

func (trollEffect) onBandPlayed(s *Service, m *domain.Match, p *domain.Participant, band bandPlay) ([]Event, error) {
	claimed := make(map[int]bool)
	for _, other := range m.Participants {
		for _, v := range other.TrollTokens {
			claimed[v] = true
		}
	}

	largest := domain.TrollTokenPool[len(domain.TrollTokenPool)-1]
	value := 0
	if band.Size <= largest && !claimed[band.Size] {
		value = band.Size
	} else {
		for v := min(band.Size, largest+1) - 1; v >= 1; v-- {
			if !claimed[v] {
				value = v
				break
			}
		}
	}
	if value == 0 {
		return nil, nil
	}

	p.TrollTokens = append(p.TrollTokens, value)
	return []Event{{
		Kind:    EventTrollTokenClaimed,
		Payload: TrollTokenClaimedPayload{ParticipantID: p.ID, Value: value},
	}}, nil
}
