package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"bingo/internal/app"
	"bingo/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// Label is the match label advertised for room listing queries.
type Label struct {
	Game    string `json:"game"`
	Code    string `json:"code"`
	Phase   string `json:"phase"`
	Players int    `json:"players"`
}

// MatchState holds the authoritative runtime state for one bingo room.
type MatchState struct {
	Session   *domain.Session
	App       *app.Service
	Presences map[string]runtime.Presence // userId -> presence for targeted messaging

	// PendingNames carries display names from MatchJoinAttempt metadata to
	// MatchJoin, which receives no metadata of its own.
	PendingNames map[string]string

	// Destroyed marks the room for termination at the end of the current loop.
	Destroyed bool
}

// eventOpCodes maps app event kinds to wire opcodes.
var eventOpCodes = map[app.EventKind]int64{
	app.EventGameJoined:      OpGameJoined,
	app.EventPlayerJoined:    OpPlayerJoined,
	app.EventGameStarted:     OpGameStarted,
	app.EventGamePaused:      OpGamePaused,
	app.EventGameResumed:     OpGameResumed,
	app.EventGameEnded:       OpGameEnded,
	app.EventNumberCalled:    OpNumberCalled,
	app.EventNumberMarked:    OpNumberMarked,
	app.EventBingoLetter:     OpBingoLetter,
	app.EventWinner:          OpWinner,
	app.EventPlayerLeft:      OpPlayerLeft,
	app.EventHostLeft:        OpHostLeft,
	app.EventSettingsUpdated: OpSettingsUpdated,
	app.EventGameStatus:      OpGameStatus,
}

type matchHandler struct {
	registry  *app.Registry
	directory *app.Directory
}

func newMatchHandler(registry *app.Registry, directory *app.Directory) *matchHandler {
	return &matchHandler{registry: registry, directory: directory}
}

// MatchInit builds the session from the creation params supplied by the
// create_room RPC.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	code, _ := params[ParamRoomCode].(string)
	hostUserID, _ := params[ParamHostUserID].(string)
	persistentMarking, _ := params[ParamPersistentMarking].(bool)

	if code == "" || hostUserID == "" {
		logger.Error("MatchInit: missing room_code or host_user_id param")
		return nil, 0, ""
	}

	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)

	state := &MatchState{
		Session:      domain.NewSession(matchID, code, hostUserID, persistentMarking),
		App:          app.NewService(nil),
		Presences:    make(map[string]runtime.Presence),
		PendingNames: make(map[string]string),
	}

	logger.Info("MatchInit: room %s created by %s", code, hostUserID)

	tickRate := 10
	return state, tickRate, buildLabel(state.Session)
}

// MatchJoinAttempt admits the host unconditionally and players only when the
// room is joinable and the requested name is free.
func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if presence.GetUserId() == matchState.Session.HostUserID {
		return matchState, true, ""
	}

	if matchState.Session.JoinLocked() {
		return matchState, false, "Game already in progress"
	}

	name := metadata["name"]
	if name == "" {
		return matchState, false, "Player name is required"
	}
	if matchState.Session.NameInUse(name) {
		return matchState, false, "Username already taken in this game"
	}

	matchState.PendingNames[presence.GetUserId()] = name
	return matchState, true, ""
}

// MatchJoin registers joined presences: players get a card and the room is
// told about them, the host just gets tracked.
func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		matchState.Presences[userID] = p
		mh.directory.Set(userID, matchState.Session.ID)

		if userID == matchState.Session.HostUserID {
			logger.Debug("MatchJoin: host %s joined room %s", userID, matchState.Session.Code)
			continue
		}

		name := matchState.PendingNames[userID]
		delete(matchState.PendingNames, userID)
		if name == "" {
			name = p.GetUsername()
		}

		events, err := matchState.App.Join(matchState.Session, userID, name)
		if err != nil {
			logger.Warn("MatchJoin: rejecting %s: %v", userID, err)
			_ = dispatcher.MatchKick([]runtime.Presence{p})
			delete(matchState.Presences, userID)
			mh.directory.Remove(userID)
			continue
		}

		logger.Info("MatchJoin: player %s joined room %s", name, matchState.Session.Code)
		for _, ev := range events {
			broadcastEvent(matchState, dispatcher, logger, p, ev)
		}
	}

	_ = dispatcher.MatchLabelUpdate(buildLabel(matchState.Session))
	return matchState
}

// MatchLeave removes departing presences. A departing host tears the room down.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)
		delete(matchState.PendingNames, userID)
		mh.directory.Remove(userID)

		events, hostLeft := matchState.App.Leave(matchState.Session, userID)
		for _, ev := range events {
			broadcastEvent(matchState, dispatcher, logger, p, ev)
		}

		if hostLeft {
			logger.Info("MatchLeave: host left, destroying room %s", matchState.Session.Code)
			mh.destroyRoom(matchState)
			return nil
		}
	}

	_ = dispatcher.MatchLabelUpdate(buildLabel(matchState.Session))
	return matchState
}

// MatchLoop processes in-room intents. Every message is handled to completion
// before the next, so session mutations never interleave.
func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleSimple(matchState, dispatcher, logger, msg, matchState.App.Start)
		case OpPauseGame:
			mh.handleSimple(matchState, dispatcher, logger, msg, matchState.App.Pause)
		case OpResumeGame:
			mh.handleSimple(matchState, dispatcher, logger, msg, matchState.App.Resume)
		case OpCallNumber:
			mh.handleSimple(matchState, dispatcher, logger, msg, matchState.App.CallNumber)
		case OpEndGame:
			mh.handleEndGame(matchState, dispatcher, logger, msg)
		case OpMarkNumber:
			mh.handleMarkNumber(matchState, dispatcher, logger, msg)
		case OpUpdateSettings:
			mh.handleUpdateSettings(matchState, dispatcher, logger, msg)
		case OpGetGameStatus:
			mh.handleGetGameStatus(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: unknown opcode received: %d", msg.GetOpCode())
		}

		if matchState.Destroyed {
			return nil
		}
	}

	return matchState
}

// handleSimple runs a payload-free session transition. Guard failures are
// deliberately silent no-ops towards the sender.
func (mh *matchHandler) handleSimple(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData, op func(*domain.Session, string) ([]app.Event, error)) {
	events, err := op(state.Session, msg.GetUserId())
	if err != nil {
		logger.Warn("MatchLoop: opcode %d from %s rejected: %v", msg.GetOpCode(), msg.GetUserId(), err)
		return
	}

	for _, ev := range events {
		broadcastEvent(state, dispatcher, logger, msg, ev)
	}
	_ = dispatcher.MatchLabelUpdate(buildLabel(state.Session))
}

func (mh *matchHandler) handleEndGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	events, err := state.App.End(state.Session, msg.GetUserId())
	if err != nil {
		logger.Warn("EndGame: rejected for %s: %v", msg.GetUserId(), err)
		return
	}

	for _, ev := range events {
		broadcastEvent(state, dispatcher, logger, msg, ev)
	}

	logger.Info("EndGame: host terminated room %s", state.Session.Code)
	mh.destroyRoom(state)
	state.Destroyed = true
}

func (mh *matchHandler) handleMarkNumber(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	var payload struct {
		Number int `json:"number"`
	}
	if err := json.Unmarshal(msg.GetData(), &payload); err != nil {
		logger.Warn("MarkNumber: malformed payload from %s: %v", msg.GetUserId(), err)
		return
	}

	events, err := state.App.Mark(state.Session, msg.GetUserId(), payload.Number)
	if err != nil {
		logger.Debug("MarkNumber: ignored for %s: %v", msg.GetUserId(), err)
		return
	}

	for _, ev := range events {
		broadcastEvent(state, dispatcher, logger, msg, ev)
	}
	if state.Session.Ended {
		_ = dispatcher.MatchLabelUpdate(buildLabel(state.Session))
	}
}

func (mh *matchHandler) handleUpdateSettings(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	var payload struct {
		PersistentMarking bool `json:"persistentMarking"`
	}
	if err := json.Unmarshal(msg.GetData(), &payload); err != nil {
		logger.Warn("UpdateSettings: malformed payload from %s: %v", msg.GetUserId(), err)
		return
	}

	events, err := state.App.UpdateSettings(state.Session, msg.GetUserId(), payload.PersistentMarking)
	if err != nil {
		logger.Warn("UpdateSettings: rejected for %s: %v", msg.GetUserId(), err)
		return
	}

	for _, ev := range events {
		broadcastEvent(state, dispatcher, logger, msg, ev)
	}
}

func (mh *matchHandler) handleGetGameStatus(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	broadcastEvent(state, dispatcher, logger, msg, state.App.Status(state.Session))
}

// destroyRoom releases the room's registry and directory entries.
func (mh *matchHandler) destroyRoom(state *MatchState) {
	mh.registry.Release(state.Session.Code)
	mh.directory.RemoveRoom(state.Session.ID)
}

// broadcastEvent marshals an app event and dispatches it to the recipients
// its scope selects, relative to the acting presence.
func broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, actor runtime.Presence, ev app.Event) {
	opCode, ok := eventOpCodes[ev.Kind]
	if !ok {
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	data, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	var recipients []runtime.Presence
	switch ev.Scope {
	case app.ScopeRoom:
		recipients = nil // all match members
	case app.ScopeSender:
		p, connected := state.Presences[actor.GetUserId()]
		if !connected {
			return
		}
		recipients = []runtime.Presence{p}
	case app.ScopeOthers:
		for userID, p := range state.Presences {
			if userID == actor.GetUserId() {
				continue
			}
			recipients = append(recipients, p)
		}
		if len(recipients) == 0 {
			return
		}
	}

	_ = dispatcher.BroadcastMessage(opCode, data, recipients, nil, true)
}

func buildLabel(sess *domain.Session) string {
	phase := "lobby"
	switch {
	case sess.Ended:
		phase = "ended"
	case sess.Paused:
		phase = "paused"
	case sess.Started:
		phase = "playing"
	}

	b, _ := json.Marshal(Label{
		Game:    "bingo",
		Code:    sess.Code,
		Phase:   phase,
		Players: len(sess.Players),
	})
	return string(b)
}

// MatchTerminate releases shared lookups if the server tears the match down.
func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	if matchState, ok := state.(*MatchState); ok && !matchState.Destroyed {
		mh.destroyRoom(matchState)
	}
	logger.Debug("MatchTerminate: match terminated")
	return state
}

// MatchSignal handles out-of-band signals; unused.
func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
