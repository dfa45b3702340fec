package bot

// BotTuning holds the knobs for the greedy strategy.
type BotTuning struct {
	// MinBandSize is the smallest effective band worth playing outright;
	// smaller bands are deferred in favor of drawing or picking up.
	MinBandSize int
	// DrawThreshold is the hand size below which drawing beats picking up.
	DrawThreshold int
}

// DefaultTuning favors building bands of at least three cards before
// spending the turn on a play.
var DefaultTuning = BotTuning{
	MinBandSize:   3,
	DrawThreshold: 4,
}
