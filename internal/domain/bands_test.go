package domain

import (
	"sort"
	"testing"
)

func card(id string, tribe Tribe, color Color) *Card {
	return &Card{ID: id, Tribe: tribe, Color: color, State: CardInHand}
}

func TestLegalBands(t *testing.T) {
	tests := []struct {
		name     string
		hand     []*Card
		leaderID string
		want     [][]string // expected card-id sets for that leader
	}{
		{
			name: "color and tribe subsets differ",
			hand: []*Card{
				card("a", TribeOrc, ColorRed),
				card("b", TribeOrc, ColorBlue),
				card("c", TribeGiant, ColorRed),
			},
			leaderID: "a",
			want: [][]string{
				{"a", "c"}, // red cards
				{"a", "b"}, // orc cards
			},
		},
		{
			name: "coinciding subsets offered once",
			hand: []*Card{
				card("a", TribeOrc, ColorRed),
				card("b", TribeOrc, ColorRed),
			},
			leaderID: "a",
			want:     [][]string{{"a", "b"}},
		},
		{
			name: "wild cards join both subsets",
			hand: []*Card{
				card("a", TribeGiant, ColorGreen),
				card("w", TribeSkeleton, ""),
				card("b", TribeGiant, ColorBlue),
			},
			leaderID: "a",
			want: [][]string{
				{"a", "w"},
				{"a", "w", "b"},
			},
		},
		{
			name: "single card band",
			hand: []*Card{
				card("a", TribeTroll, ColorPurple),
			},
			leaderID: "a",
			want:     [][]string{{"a"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got [][]string
			for _, prop := range LegalBands(tt.hand) {
				if prop.LeaderID != tt.leaderID {
					continue
				}
				ids := append([]string(nil), prop.CardIDs...)
				sort.Strings(ids)
				got = append(got, ids)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d proposals for leader %s, want %d: %v", len(got), tt.leaderID, len(tt.want), got)
			}
			for _, want := range tt.want {
				sort.Strings(want)
				found := false
				for _, g := range got {
					if sameIDSet(g, want) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("missing proposal %v, got %v", want, got)
				}
			}
		})
	}
}

func TestLegalBandsNoLeaderTribe(t *testing.T) {
	hand := []*Card{
		card("s1", TribeSkeleton, ""),
		card("s2", TribeSkeleton, ""),
	}
	if got := LegalBands(hand); len(got) != 0 {
		t.Errorf("expected no proposals from an all-skeleton hand, got %v", got)
	}
}

func TestIsLegalBand(t *testing.T) {
	hand := []*Card{
		card("a", TribeOrc, ColorRed),
		card("b", TribeOrc, ColorBlue),
		card("c", TribeGiant, ColorRed),
		card("w", TribeSkeleton, ""),
	}

	tests := []struct {
		name     string
		leaderID string
		cardIDs  []string
		want     bool
	}{
		{"full color set", "a", []string{"a", "c", "w"}, true},
		{"subset of color set", "a", []string{"a", "c"}, true},
		{"full tribe set", "a", []string{"a", "b", "w"}, true},
		{"leader alone", "a", []string{"a"}, true},
		{"leader missing from set", "a", []string{"b", "c"}, false},
		{"mixed color and tribe", "a", []string{"a", "b", "c"}, false},
		{"skeleton leader", "w", []string{"w", "a"}, false},
		{"empty set", "a", nil, false},
		{"card not in hand", "a", []string{"a", "zzz"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLegalBand(hand, tt.leaderID, tt.cardIDs); got != tt.want {
				t.Errorf("IsLegalBand(%s, %v) = %v, want %v", tt.leaderID, tt.cardIDs, got, tt.want)
			}
		})
	}
}

func TestEffectiveBandSize(t *testing.T) {
	if got := EffectiveBandSize(TribeMinotaur, 3); got != 4 {
		t.Errorf("minotaur band of 3 = %d, want 4", got)
	}
	if got := EffectiveBandSize(TribeOrc, 3); got != 3 {
		t.Errorf("orc band of 3 = %d, want 3", got)
	}
}
