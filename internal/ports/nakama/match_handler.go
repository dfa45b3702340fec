package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"tribelands/internal/app"
	"tribelands/internal/bot"
	"tribelands/internal/config"
	"tribelands/internal/domain"
	"tribelands/internal/ports"
	"tribelands/internal/snapshot"
)

// MatchState holds the authoritative runtime state for one hosted match.
type MatchState struct {
	Tick      int64                       `json:"tick"`
	Presences map[string]runtime.Presence `json:"-"` // account id -> presence
	App       *app.Service                `json:"-"`
	Game      *domain.Match               `json:"-"`

	BotsEnabled       bool                  `json:"bots_enabled"`
	BotMinDelay       int                   `json:"bot_min_delay"`
	BotMaxDelay       int                   `json:"bot_max_delay"`
	BotAutoFillDelay  int                   `json:"bot_auto_fill_delay"`
	BotWaitUntil      int64                 `json:"bot_wait_until"`
	LastSoloHumanTick int64                 `json:"last_solo_human_tick"`
	Bots              map[string]*bot.Agent `json:"-"`
}

// OpenSeats returns how many participants can still join.
func (ms *MatchState) OpenSeats() int {
	if ms.Game == nil || ms.Game.Phase != domain.PhaseCreated {
		return 0
	}
	return domain.MaxParticipants - len(ms.Game.Participants)
}

// HumanCount returns the number of seated human participants.
func (ms *MatchState) HumanCount() int {
	if ms.Game == nil {
		return 0
	}
	count := 0
	for _, p := range ms.Game.Participants {
		if !p.IsAutomated() {
			count++
		}
	}
	return count
}

// LabelPayload is the match label advertised for quick-match queries.
type LabelPayload struct {
	Open  int    `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// ErrorPayload is sent privately to the actor whose action failed.
type ErrorPayload struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type startMatchRequest struct {
	Tribes []string `json:"tribes,omitempty"`
}

type legalActionsRequest struct {
	ParticipantID string `json:"participant_id,omitempty"`
}

type matchHandler struct {
	snapshots ports.SnapshotStore
}

func newMatchHandler(snapshots ports.SnapshotStore) *matchHandler {
	return &matchHandler{snapshots: snapshots}
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}

	cfg := config.GetGameConfig()
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)

	state := &MatchState{
		Tick:             time.Now().Unix(),
		Presences:        make(map[string]runtime.Presence),
		App:              app.NewService(nil),
		Bots:             make(map[string]*bot.Agent),
		BotsEnabled:      true,
		BotMinDelay:      cfg.BotMinDelaySeconds,
		BotMaxDelay:      cfg.BotMaxDelaySeconds,
		BotAutoFillDelay: cfg.BotAutoFillDelaySeconds,
		Game: &domain.Match{
			ID:     matchID,
			Phase:  domain.PhaseCreated,
			Tribes: tribesFromParams(params, cfg.DefaultTribes),
		},
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["tribelands_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["tribelands_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["tribelands_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if val, ok := env["tribelands_bot_auto_fill_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotAutoFillDelay = i
		}
	}

	labelBytes, err := json.Marshal(LabelPayload{
		Open:  domain.MaxParticipants,
		Game:  "tribelands",
		Phase: string(domain.PhaseCreated),
	})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

func tribesFromParams(params map[string]interface{}, fallback []string) []domain.Tribe {
	names := fallback
	if raw, ok := params["tribes"].([]interface{}); ok && len(raw) > 0 {
		names = names[:0]
		for _, v := range raw {
			if s, ok := v.(string); ok {
				names = append(names, s)
			}
		}
	}
	tribes := make([]domain.Tribe, 0, len(names))
	for _, n := range names {
		tribes = append(tribes, domain.Tribe(n))
	}
	return tribes
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	// Everyone may connect: seated participants act, everyone else views.
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		matchState.Presences[userID] = p

		if matchState.Game.Participant(userID) != nil {
			continue // reconnecting participant
		}
		if matchState.Game.Phase != domain.PhaseCreated || matchState.OpenSeats() <= 0 {
			logger.Debug("MatchJoin: User %s joined as viewer.", userID)
			continue
		}

		matchState.Game.Participants = append(matchState.Game.Participants, &domain.Participant{
			ID:        userID,
			MatchID:   matchState.Game.ID,
			AccountID: userID,
		})
		if matchState.Game.CreatorID == "" {
			matchState.Game.CreatorID = userID
			logger.Debug("MatchJoin: Creator set to %s.", userID)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.publishState(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)

		// Seats free up only before the match starts; a started match keeps
		// its participants and simply receives no further actions from
		// leavers.
		if matchState.Game.Phase == domain.PhaseCreated {
			for i, participant := range matchState.Game.Participants {
				if participant.ID == userID {
					matchState.Game.Participants = append(
						matchState.Game.Participants[:i], matchState.Game.Participants[i+1:]...)
					break
				}
			}
		}
	}

	// Keep the creator a connected human.
	if _, connected := matchState.Presences[matchState.Game.CreatorID]; !connected {
		matchState.Game.CreatorID = ""
		for _, participant := range matchState.Game.Participants {
			if !participant.IsAutomated() {
				if _, ok := matchState.Presences[participant.ID]; ok {
					matchState.Game.CreatorID = participant.ID
					break
				}
			}
		}
	}

	if matchState.HumanCount() == 0 || len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.publishState(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartMatch:
			mh.handleStartMatch(ctx, matchState, dispatcher, logger, msg)
		case OpSubmitAction:
			mh.handleSubmitAction(ctx, matchState, dispatcher, logger, msg)
		case OpLegalActions:
			mh.handleLegalActions(matchState, dispatcher, logger, msg)
		case OpRestoreSnapshot:
			mh.handleRestoreSnapshot(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	return matchState
}

func (mh *matchHandler) handleStartMatch(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	var request startMatchRequest
	if len(msg.GetData()) > 0 {
		if err := json.Unmarshal(msg.GetData(), &request); err != nil {
			logger.Warn("StartMatch: Invalid request from %s: %v", senderID, err)
			mh.sendError(state, dispatcher, logger, senderID, app.BadRequest("malformed start request"))
			return
		}
	}
	if len(request.Tribes) > 0 {
		tribes := make([]domain.Tribe, 0, len(request.Tribes))
		for _, n := range request.Tribes {
			tribes = append(tribes, domain.Tribe(n))
		}
		state.Game.Tribes = tribes
	}

	next, events, err := state.App.StartMatch(state.Game, senderID)
	if err != nil {
		logger.Warn("StartMatch: User %s failed to start match: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}

	state.Game = next
	logger.Info("StartMatch: Match started with %d participants.", len(next.Participants))
	mh.afterAction(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) handleSubmitAction(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	var sub app.ActionSubmission
	if err := json.Unmarshal(msg.GetData(), &sub); err != nil {
		logger.Warn("SubmitAction: Invalid payload from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, app.BadRequest("malformed action payload"))
		return
	}

	next, events, err := state.App.SubmitAction(state.Game, senderID, sub)
	if err != nil {
		logger.Warn("SubmitAction: User %s action %q failed: %v", senderID, sub.Type, err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}

	state.Game = next
	mh.afterAction(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) handleLegalActions(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	var request legalActionsRequest
	if len(msg.GetData()) > 0 {
		if err := json.Unmarshal(msg.GetData(), &request); err != nil {
			mh.sendError(state, dispatcher, logger, senderID, app.BadRequest("malformed legal-actions request"))
			return
		}
	}
	participantID := request.ParticipantID
	if participantID == "" {
		participantID = senderID
	}

	actions := app.LegalActions(state.Game, participantID)
	payload, err := json.Marshal(actions)
	if err != nil {
		logger.Error("LegalActions: Failed to marshal: %v", err)
		return
	}
	if presence, ok := state.Presences[senderID]; ok {
		dispatcher.BroadcastMessage(OpLegalActionsResult, payload, []runtime.Presence{presence}, nil, true)
	}
}

// handleRestoreSnapshot replaces the live aggregate with the stored one, a
// creator-only operation used by the undo flow between actions.
func (mh *matchHandler) handleRestoreSnapshot(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if senderID != state.Game.CreatorID {
		mh.sendError(state, dispatcher, logger, senderID, app.Forbidden("only the match creator can restore a snapshot"))
		return
	}
	if mh.snapshots == nil {
		mh.sendError(state, dispatcher, logger, senderID, app.NotFound("snapshot store not configured"))
		return
	}

	blob, err := mh.snapshots.LoadSnapshot(ctx, state.Game.ID)
	if err != nil {
		logger.Warn("RestoreSnapshot: load failed for match %s: %v", state.Game.ID, err)
		mh.sendError(state, dispatcher, logger, senderID, app.NotFound("no snapshot stored for this match"))
		return
	}
	restored, err := snapshot.Decode(blob)
	if err != nil {
		logger.Error("RestoreSnapshot: decode failed for match %s: %v", state.Game.ID, err)
		mh.sendError(state, dispatcher, logger, senderID, app.BadRequest("stored snapshot is unreadable"))
		return
	}
	if restored.ID != state.Game.ID {
		mh.sendError(state, dispatcher, logger, senderID, app.BadRequest("snapshot belongs to a different match"))
		return
	}

	state.Game = restored
	state.BotWaitUntil = 0
	logger.Info("RestoreSnapshot: Match %s restored to era %d.", restored.ID, restored.Era)
	mh.publishState(state, dispatcher, logger)
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// 1. Auto-fill the lobby when a single human has waited long enough.
	if state.Game.Phase == domain.PhaseCreated {
		if state.HumanCount() == 1 {
			if state.LastSoloHumanTick == 0 {
				state.LastSoloHumanTick = state.Tick
				logger.Debug("processBots: Solo human detected, starting auto-fill timer.")
			}
			if state.Tick-state.LastSoloHumanTick >= int64(state.BotAutoFillDelay) {
				mh.fillWithBots(state, dispatcher, logger)
				state.LastSoloHumanTick = 0
			}
		} else {
			state.LastSoloHumanTick = 0
		}
		return
	}

	// 2. Take automated turns with a paced delay.
	if state.Game.Phase != domain.PhaseStarted {
		return
	}
	activeID := state.Game.ActiveID
	active := state.Game.Participant(activeID)
	if active == nil || !active.IsAutomated() {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := state.BotMinDelay
		if state.BotMaxDelay > state.BotMinDelay {
			delay += rand.Intn(state.BotMaxDelay - state.BotMinDelay + 1)
		}
		state.BotWaitUntil = state.Tick + int64(delay)
		return
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent, exists := state.Bots[activeID]
	if !exists {
		var err error
		agent, err = bot.NewAgent(activeID)
		if err != nil {
			logger.Error("processBots: Failed to create agent for %s: %v", activeID, err)
			return
		}
		state.Bots[activeID] = agent
	}

	legal := app.LegalActions(state.Game, activeID)
	sub, err := agent.Play(state.Game, legal)
	if err != nil {
		logger.Error("processBots: Bot %s failed to choose an action: %v", activeID, err)
		return
	}

	next, events, err := state.App.SubmitAction(state.Game, activeID, sub)
	if err != nil {
		logger.Error("processBots: Bot %s action %q rejected: %v", activeID, sub.Type, err)
		return
	}
	state.Game = next
	mh.afterAction(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) fillWithBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	added := false
	for seat := len(state.Game.Participants); seat < 4 && state.OpenSeats() > 0; seat = len(state.Game.Participants) {
		identity := bot.IdentityForSeat(seat)
		if state.Game.Participant(identity.ParticipantID) != nil {
			break
		}
		state.Game.Participants = append(state.Game.Participants, &domain.Participant{
			ID:      identity.ParticipantID,
			MatchID: state.Game.ID,
		})
		agent, err := bot.NewAgent(identity.ParticipantID)
		if err != nil {
			logger.Error("fillWithBots: Failed to create bot agent for %s: %v", identity.ParticipantID, err)
		} else {
			state.Bots[identity.ParticipantID] = agent
		}
		logger.Info("fillWithBots: Seated bot %s (%s).", identity.DisplayName, identity.ParticipantID)
		added = true
	}
	if added {
		mh.updateLabel(state, dispatcher, logger)
		mh.publishState(state, dispatcher, logger)
	}
}

// afterAction broadcasts the action's events, publishes the fresh public
// snapshot and persists the aggregate for the undo flow.
func (mh *matchHandler) afterAction(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.publishState(state, dispatcher, logger)
	mh.updateLabel(state, dispatcher, logger)

	if mh.snapshots == nil {
		return
	}
	if state.Game.Phase == domain.PhaseEnded {
		if err := mh.snapshots.DeleteSnapshot(ctx, state.Game.ID); err != nil {
			logger.Error("afterAction: Failed to delete snapshot for %s: %v", state.Game.ID, err)
		}
		return
	}
	blob, err := snapshot.Encode(state.Game)
	if err != nil {
		logger.Error("afterAction: Failed to encode snapshot for %s: %v", state.Game.ID, err)
		return
	}
	if err := mh.snapshots.SaveSnapshot(ctx, state.Game.ID, state.Game.Era, blob); err != nil {
		logger.Error("afterAction: Failed to persist snapshot for %s: %v", state.Game.ID, err)
	}
}

// broadcastEvent maps an engine event to its opcode and dispatches it,
// honoring targeted recipients.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	var opCode int64
	switch ev.Kind {
	case app.EventMatchStarted:
		opCode = OpMatchStarted
	case app.EventHandDealt:
		opCode = OpHandDealt
	case app.EventCardsDrawn:
		opCode = OpCardsDrawn
	case app.EventDragonRevealed:
		opCode = OpDragonRevealed
	case app.EventCardPickedUp:
		opCode = OpCardPickedUp
	case app.EventBandPlayed:
		opCode = OpBandPlayed
	case app.EventTokenPlaced:
		opCode = OpTokenPlaced
	case app.EventPendingCreated:
		opCode = OpPendingCreated
	case app.EventOrcTokenBanked, app.EventGiantMarkerTaken, app.EventMerfolkAdvanced, app.EventTrollTokenClaimed:
		opCode = OpTribeEffect
	case app.EventTurnAdvanced:
		opCode = OpTurnAdvanced
	case app.EventEraEnded:
		opCode = OpEraEnded
	case app.EventEraStarted:
		opCode = OpEraStarted
	case app.EventMatchEnded:
		opCode = OpMatchEnded
	default:
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	payload, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, id := range ev.Recipients {
			if p, ok := state.Presences[id]; ok {
				recipients = append(recipients, p)
			}
		}
		// Targeted events whose recipients are not connected (bots) must
		// not leak to everyone else.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, payload, recipients, nil, true)
}

// sendError sends the typed engine error privately to the failing actor.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, err error) {
	code := 400
	switch app.KindOf(err) {
	case app.KindNotFound:
		code = 404
	case app.KindForbidden:
		code = 403
	}
	payload, merr := json.Marshal(ErrorPayload{Code: code, Kind: string(app.KindOf(err)), Message: err.Error()})
	if merr != nil {
		logger.Error("Failed to marshal error payload: %v", merr)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}
	dispatcher.BroadcastMessage(OpError, payload, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) publishState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	names := make(map[string]string, len(state.Presences))
	for id, p := range state.Presences {
		names[id] = p.GetUsername()
	}
	payload, err := json.Marshal(toMatchStateView(state.Game, names))
	if err != nil {
		logger.Error("publishState: Failed to marshal view: %v", err)
		return
	}
	NewDispatcherPublisher(dispatcher, logger).Publish(state.Game.ID, payload)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	labelBytes, err := json.Marshal(LabelPayload{
		Open:  state.OpenSeats(),
		Game:  "tribelands",
		Phase: string(state.Game.Phase),
	})
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

// MatchSignal answers out-of-band legal-action queries so the RPC layer can
// serve bot policies without joining the match.
func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, ""
	}

	var request legalActionsRequest
	if err := json.Unmarshal([]byte(data), &request); err != nil {
		logger.Warn("MatchSignal: malformed query: %v", err)
		return matchState, ""
	}
	actions := app.LegalActions(matchState.Game, request.ParticipantID)
	payload, err := json.Marshal(actions)
	if err != nil {
		logger.Error("MatchSignal: Failed to marshal actions: %v", err)
		return matchState, ""
	}
	return matchState, string(payload)
}
