package domain

import "sort"

// bandPoints is the fixed lookup from band size to point value. Bands of
// six or more cards score the table maximum.
var bandPoints = map[int]int{1: 0, 2: 1, 3: 3, 4: 6, 5: 10, 6: 15}

// BandPoints returns the point value of a band of the given effective size.
func BandPoints(size int) int {
	if size >= 6 {
		return bandPoints[6]
	}
	return bandPoints[size]
}

// orcBoardPoints maps distinct orc-token colors held to points.
var orcBoardPoints = [7]int{0, 1, 3, 6, 10, 15, 21}

// OrcBoardPoints returns the orc-board value for the given token count.
func OrcBoardPoints(tokens int) int {
	if tokens >= len(orcBoardPoints) {
		return orcBoardPoints[len(orcBoardPoints)-1]
	}
	return orcBoardPoints[tokens]
}

// GiantBonus returns the era's giant-marker bonus for the participant count.
func GiantBonus(era, participants int) int {
	if participants >= 4 {
		return era * 2
	}
	return era*2 + 1
}

// MerfolkBonus returns the era's aquatic-track bonus for the participant
// count; ties split its floor-divided value.
func MerfolkBonus(era, participants int) int {
	return GiantBonus(era, participants)
}

// ScoreBreakdown itemizes one participant's point delta for an era.
type ScoreBreakdown struct {
	Bands        int `json:"bands"`
	OrcBoard     int `json:"orc_board"`
	GiantBonus   int `json:"giant_bonus"`
	MerfolkBonus int `json:"merfolk_bonus"`
	Territories  int `json:"territories"`
}

// Total sums the breakdown.
func (b *ScoreBreakdown) Total() int {
	return b.Bands + b.OrcBoard + b.GiantBonus + b.MerfolkBonus + b.Territories
}

// EraScoring is the result of scoring one era: per-participant deltas plus
// the troll-token totals used for first-player tie-breaking.
type EraScoring struct {
	Era         int                        `json:"era"`
	Deltas      map[string]*ScoreBreakdown `json:"deltas"`
	TrollTotals map[string]int             `json:"troll_totals"`
}

// ScoreEra computes every participant's point delta at an era boundary. It
// does not mutate the aggregate; the caller applies the deltas. The orc
// board is included only when includeOrc is set, which the caller reserves
// for the match's final era.
func ScoreEra(m *Match, includeOrc bool) *EraScoring {
	result := &EraScoring{
		Era:         m.Era,
		Deltas:      make(map[string]*ScoreBreakdown, len(m.Participants)),
		TrollTotals: make(map[string]int, len(m.Participants)),
	}
	for _, p := range m.Participants {
		result.Deltas[p.ID] = &ScoreBreakdown{}
		result.TrollTotals[p.ID] = p.TrollTotal()
	}

	scoreBands(m, result)
	if includeOrc {
		for _, p := range m.Participants {
			result.Deltas[p.ID].OrcBoard = OrcBoardPoints(len(p.OrcTokens))
		}
	}
	scoreGiantMarker(m, result)
	scoreMerfolkTrack(m, result)
	for _, t := range m.Territories {
		scoreTerritory(m, t, result)
	}
	return result
}

func scoreBands(m *Match, result *EraScoring) {
	// Band cards grouped by leader; each band scores by effective size.
	sizes := make(map[string]int)
	for _, c := range m.Cards {
		if c.State == CardInBand {
			sizes[c.LeaderID]++
		}
	}
	for leaderID, n := range sizes {
		leader := m.Card(leaderID)
		if leader == nil {
			continue
		}
		result.Deltas[leader.OwnerID].Bands += BandPoints(EffectiveBandSize(leader.Tribe, n))
	}
}

func scoreGiantMarker(m *Match, result *EraScoring) {
	var holder *Participant
	for _, p := range m.Participants {
		if p.GiantMarker > 0 && (holder == nil || p.GiantMarker > holder.GiantMarker) {
			holder = p
		}
	}
	if holder == nil {
		return
	}
	result.Deltas[holder.ID].GiantBonus = GiantBonus(m.Era, len(m.Participants))
}

func scoreMerfolkTrack(m *Match, result *EraScoring) {
	if !m.HasTribe(TribeMerfolk) {
		return
	}
	furthest := 0
	for _, p := range m.Participants {
		if p.MerfolkTrack > furthest {
			furthest = p.MerfolkTrack
		}
	}
	if furthest == 0 {
		return
	}
	var tied []*Participant
	for _, p := range m.Participants {
		if p.MerfolkTrack == furthest {
			tied = append(tied, p)
		}
	}
	share := MerfolkBonus(m.Era, len(m.Participants)) / len(tied)
	for _, p := range tied {
		result.Deltas[p.ID].MerfolkBonus = share
	}
}

// scoreTerritory ranks participants by token count (troll totals break
// ties) and pays the territory's top era tiers down the ranking. A group of
// k tied participants consumes the next k tiers, floor-split evenly.
func scoreTerritory(m *Match, t *Territory, result *EraScoring) {
	type stake struct {
		id     string
		tokens int
		troll  int
	}
	var stakes []stake
	for _, p := range m.Participants {
		if n := m.TokensIn(t.ID, p.ID); n > 0 {
			stakes = append(stakes, stake{id: p.ID, tokens: n, troll: result.TrollTotals[p.ID]})
		}
	}
	if len(stakes) == 0 {
		return
	}
	sort.SliceStable(stakes, func(i, j int) bool {
		if stakes[i].tokens != stakes[j].tokens {
			return stakes[i].tokens > stakes[j].tokens
		}
		return stakes[i].troll > stakes[j].troll
	})

	// Era N pays the territory's lowest N tiers, highest first.
	n := m.Era
	if n > len(t.Values) {
		n = len(t.Values)
	}
	tiers := make([]int, n)
	copy(tiers, t.Values[:n])
	sort.Sort(sort.Reverse(sort.IntSlice(tiers)))

	next := 0
	for i := 0; i < len(stakes) && next < len(tiers); {
		j := i
		for j < len(stakes) && stakes[j].tokens == stakes[i].tokens && stakes[j].troll == stakes[i].troll {
			j++
		}
		group := stakes[i:j]
		sum := 0
		for k := 0; k < len(group) && next < len(tiers); k++ {
			sum += tiers[next]
			next++
		}
		share := sum / len(group)
		for _, s := range group {
			result.Deltas[s.id].Territories += share
		}
		i = j
	}
}

func containsTribe(tribes []Tribe, t Tribe) bool {
	for _, v := range tribes {
		if v == t {
			return true
		}
	}
	return false
}

// HasTribe reports whether the match configuration includes the tribe.
func (m *Match) HasTribe(t Tribe) bool {
	return containsTribe(m.Tribes, t)
}
