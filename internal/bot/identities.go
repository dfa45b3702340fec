package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

// BotIDPrefix marks participant ids controlled by agents.
const BotIDPrefix = "bot-"

// BotIdentity is a bot profile presented to human players.
type BotIdentity struct {
	ParticipantID string `json:"participant_id"`
	Username      string `json:"username"`
	DisplayName   string `json:"display_name"`
	Difficulty    string `json:"difficulty"` // "easy" or "good"
	AvatarIndex   int    `json:"avatar_index"`
}

// Level maps the configured difficulty to a strategy level.
func (b BotIdentity) Level() BotLevel {
	if b.Difficulty == "easy" {
		return BotLevelEasy
	}
	return BotLevelGood
}

// defaultIdentities seat bots when no identity file is configured.
var defaultIdentities = []BotIdentity{
	{ParticipantID: "bot-ashka", Username: "ashka", DisplayName: "Ashka", Difficulty: "good"},
	{ParticipantID: "bot-borin", Username: "borin", DisplayName: "Borin", Difficulty: "good"},
	{ParticipantID: "bot-cress", Username: "cress", DisplayName: "Cress", Difficulty: "easy"},
	{ParticipantID: "bot-dorn", Username: "dorn", DisplayName: "Dorn", Difficulty: "good"},
	{ParticipantID: "bot-elya", Username: "elya", DisplayName: "Elya", Difficulty: "easy"},
	{ParticipantID: "bot-fenn", Username: "fenn", DisplayName: "Fenn", Difficulty: "good"},
}

var (
	identities  []BotIdentity
	identityMap map[string]BotIdentity
	loadOnce    sync.Once
	loadErr     error
)

// LoadIdentities loads bot profiles from the given path. Missing or invalid
// files fall back to the built-in roster.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		identities = defaultIdentities
		defer func() {
			identityMap = make(map[string]BotIdentity, len(identities))
			for _, id := range identities {
				identityMap[id.ParticipantID] = id
			}
		}()

		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}
		var loaded []BotIdentity
		if err := json.Unmarshal(data, &loaded); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}
		if len(loaded) > 0 {
			identities = loaded
		}
	})
	return loadErr
}

// IsBot reports whether the participant id belongs to an agent.
func IsBot(participantID string) bool {
	return strings.HasPrefix(participantID, BotIDPrefix)
}

// IdentityFor returns the identity for a bot participant id, generating a
// bare one for unknown ids.
func IdentityFor(participantID string) BotIdentity {
	if identityMap != nil {
		if id, ok := identityMap[participantID]; ok {
			return id
		}
	}
	name := strings.TrimPrefix(participantID, BotIDPrefix)
	return BotIdentity{ParticipantID: participantID, Username: name, DisplayName: name, Difficulty: "good"}
}

// IdentityForSeat deals out identities round-robin by seat index.
func IdentityForSeat(seat int) BotIdentity {
	ids := identities
	if len(ids) == 0 {
		ids = defaultIdentities
	}
	return ids[seat%len(ids)]
}
