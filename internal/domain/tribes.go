package domain

// Tribe identifies one of the drafted card tribes.
type Tribe string

const (
	TribeCentaur  Tribe = "centaur"
	TribeDwarf    Tribe = "dwarf"
	TribeElf      Tribe = "elf"
	TribeGiant    Tribe = "giant"
	TribeHalfling Tribe = "halfling"
	TribeMerfolk  Tribe = "merfolk"
	TribeMinotaur Tribe = "minotaur"
	TribeOrc      Tribe = "orc"
	TribeSkeleton Tribe = "skeleton"
	TribeTroll    Tribe = "troll"
	TribeWingfolk Tribe = "wingfolk"
	TribeWizard   Tribe = "wizard"

	// TribeDragon is never drafted; dragon cards live in the deck and pace
	// era transitions when revealed.
	TribeDragon Tribe = "dragon"
)

// AllTribes lists every draftable tribe.
var AllTribes = []Tribe{
	TribeCentaur, TribeDwarf, TribeElf, TribeGiant, TribeHalfling,
	TribeMerfolk, TribeMinotaur, TribeOrc, TribeSkeleton, TribeTroll,
	TribeWingfolk, TribeWizard,
}

// Color identifies a card/territory color.
type Color string

const (
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorOrange Color = "orange"
	ColorPurple Color = "purple"
	ColorGray   Color = "gray"
)

// AllColors lists the six board colors in canonical order.
var AllColors = []Color{ColorRed, ColorBlue, ColorGreen, ColorOrange, ColorPurple, ColorGray}

// TribeTraits captures the static rule modifiers a tribe applies when its
// cards lead or join a band. Runtime side effects (token banking, bonus
// draws, track advancement) are dispatched separately by tribe identity.
type TribeTraits struct {
	Colorless         bool // cards carry no color and act as wilds in any band
	NoLeader          bool // cards may never be declared band leader
	SkipsClaim        bool // bands led by this tribe never claim territory
	SizeBonus         int  // added to effective band size for claims and scoring
	ChoosesClaimColor bool // leader may claim any eligible territory color
	ExtraPlayOnClaim  bool // a successful claim grants an extra band play
	KeepsUnplayed     bool // player may retain unplayed cards instead of discarding
}

// Traits is the per-tribe rule table. Tribes absent from hook dispatch and
// with a zero entry here behave as plain territory-claim tribes.
var Traits = map[Tribe]TribeTraits{
	TribeCentaur:  {ExtraPlayOnClaim: true},
	TribeElf:      {KeepsUnplayed: true},
	TribeHalfling: {SkipsClaim: true},
	TribeMinotaur: {SizeBonus: 1},
	TribeSkeleton: {Colorless: true, NoLeader: true},
	TribeWingfolk: {ChoosesClaimColor: true},
	TribeDragon:   {Colorless: true, NoLeader: true},
}

// KnownTribe reports whether t is a draftable tribe.
func KnownTribe(t Tribe) bool {
	for _, known := range AllTribes {
		if known == t {
			return true
		}
	}
	return false
}

// IsWild reports whether cards of the tribe join any band regardless of the
// band's color or tribe.
func IsWild(t Tribe) bool {
	return Traits[t].Colorless
}

// EffectiveBandSize returns the band size used for territory claims and band
// scoring, applying the leader tribe's size bonus.
func EffectiveBandSize(leader Tribe, cards int) int {
	return cards + Traits[leader].SizeBonus
}
