package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"

	"tribelands/internal/domain"
)

// QuickMatchResponse is the payload returned to clients when requesting a lobby-capable match.
type QuickMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

// LegalActionsRequest asks a hosted match which actions a participant may take.
type LegalActionsRequest struct {
	MatchID       string `json:"match_id"`
	ParticipantID string `json:"participant_id"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcLegalActions, rpcLegalActions)
}

func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	// Find any match that is open and is our game.
	query := "+label.open:>0 label.game:tribelands label.phase:created"

	limit := 10
	authoritative := true

	minSize := 1
	maxSize := domain.MaxParticipants - 1

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, query)
	if err != nil {
		logger.Error("MatchList error: %v", err)
		return "", err
	}

	if len(matches) > 0 {
		resp := QuickMatchResponse{MatchID: matches[0].MatchId, IsNew: false}
		b, _ := json.Marshal(resp)
		return string(b), nil
	}

	// Create new match; seat/creator assignment happens in MatchJoin (server-authoritative).
	matchID, err := nk.MatchCreate(ctx, MatchNameTribelands, map[string]interface{}{})
	if err != nil {
		logger.Error("MatchCreate error: %v", err)
		return "", err
	}

	resp := QuickMatchResponse{MatchID: matchID, IsNew: true}
	b, _ := json.Marshal(resp)
	return string(b), nil
}

// rpcLegalActions queries the hosted match over its signal channel and returns
// the raw action list JSON.
func rpcLegalActions(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req LegalActionsRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("malformed request payload", 3)
	}
	if req.MatchID == "" {
		return "", runtime.NewError("match_id is required", 3)
	}
	if req.ParticipantID == "" {
		if userID, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string); ok {
			req.ParticipantID = userID
		}
	}

	query, err := json.Marshal(legalActionsRequest{ParticipantID: req.ParticipantID})
	if err != nil {
		return "", err
	}
	result, err := nk.MatchSignal(ctx, req.MatchID, string(query))
	if err != nil {
		logger.Error("MatchSignal error for %s: %v", req.MatchID, err)
		return "", runtime.NewError("match not found", 5)
	}
	if result == "" {
		result = "[]"
	}
	return result, nil
}
