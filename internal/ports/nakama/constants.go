package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a
	// joinable match.
	RpcQuickMatch = "quick_match"

	// RpcLegalActions is the Nakama RPC id clients and bot policies call to
	// list the actions a participant may currently submit.
	RpcLegalActions = "legal_actions"

	// MatchNameTribelands is the authoritative match handler name
	// registered with Nakama.
	MatchNameTribelands = "tribelands_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartMatch      int64 = 1
	OpSubmitAction    int64 = 2
	OpLegalActions    int64 = 3
	OpRestoreSnapshot int64 = 4

	// Server -> Client events
	OpMatchState         int64 = 101
	OpMatchStarted       int64 = 103
	OpHandDealt          int64 = 104 // sent privately
	OpCardsDrawn         int64 = 105 // sent privately
	OpDragonRevealed     int64 = 106
	OpCardPickedUp       int64 = 107
	OpBandPlayed         int64 = 108
	OpTokenPlaced        int64 = 109
	OpPendingCreated     int64 = 110
	OpTribeEffect        int64 = 111
	OpTurnAdvanced       int64 = 112
	OpEraEnded           int64 = 113
	OpEraStarted         int64 = 114
	OpMatchEnded         int64 = 115
	OpError              int64 = 120
	OpLegalActionsResult int64 = 121
)
