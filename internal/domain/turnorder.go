package domain

// NextParticipantID returns the id following active in the fixed turn
// order, wrapping cyclically.
func NextParticipantID(active string, order []string) string {
	for i, id := range order {
		if id == active {
			return order[(i+1)%len(order)]
		}
	}
	if len(order) > 0 {
		return order[0]
	}
	return ""
}

// NewEraFirstParticipant picks who starts the next era: the lowest total
// score wins, ties go to the highest troll-token total, and remaining ties
// to whoever sits closest in turn order to the participant who triggered
// the final dragon reveal, walking forward cyclically from prevActive and
// including prevActive itself.
func NewEraFirstParticipant(totals map[string]int, trollTotals map[string]int, prevActive string, order []string) string {
	if len(order) == 0 {
		return ""
	}

	lowest := 0
	first := true
	for _, id := range order {
		if first || totals[id] < lowest {
			lowest = totals[id]
			first = false
		}
	}
	tied := make(map[string]bool, len(order))
	for _, id := range order {
		if totals[id] == lowest {
			tied[id] = true
		}
	}

	if len(tied) > 1 {
		bestTroll := -1
		for id := range tied {
			if trollTotals[id] > bestTroll {
				bestTroll = trollTotals[id]
			}
		}
		for id := range tied {
			if trollTotals[id] != bestTroll {
				delete(tied, id)
			}
		}
	}

	start := 0
	for i, id := range order {
		if id == prevActive {
			start = i
			break
		}
	}
	for i := 0; i < len(order); i++ {
		id := order[(start+i)%len(order)]
		if tied[id] {
			return id
		}
	}
	return order[start]
}
