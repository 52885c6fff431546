package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"bingo/internal/app"
	"bingo/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

var errNoUserID = errors.New("rpc requires an authenticated user")

// CreateRoomRequest is the create_room RPC payload.
type CreateRoomRequest struct {
	RoomCode          string `json:"roomCode"`
	PersistentMarking *bool  `json:"persistentMarking"`
}

// CreateRoomResponse confirms room creation to the host.
type CreateRoomResponse struct {
	RoomCode          string `json:"roomCode"`
	GameID            string `json:"gameId"`
	PersistentMarking bool   `json:"persistentMarking"`
}

// JoinRoomRequest is the join_room RPC payload.
type JoinRoomRequest struct {
	RoomCode string `json:"roomCode"`
}

// JoinRoomResponse tells a client which match to join for a room code.
type JoinRoomResponse struct {
	GameID   string `json:"gameId"`
	RoomCode string `json:"roomCode"`
}

// RoomInviteRequest is the room_invite RPC payload.
type RoomInviteRequest struct {
	RoomCode string `json:"roomCode"`
}

// RoomInviteResponse carries a signed invite token.
type RoomInviteResponse struct {
	Token    string `json:"token"`
	RoomCode string `json:"roomCode"`
}

// RedeemInviteRequest is the redeem_invite RPC payload.
type RedeemInviteRequest struct {
	Token string `json:"token"`
}

type rpcHandlers struct {
	registry  *app.Registry
	directory *app.Directory
	invites   *app.InviteService
}

// RegisterRPCs registers the room lifecycle RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer, h *rpcHandlers) error {
	if err := initializer.RegisterRpc(RpcCreateRoom, h.createRoom); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcJoinRoom, h.joinRoom); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcRoomInvite, h.roomInvite); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcRedeemInvite, h.redeemInvite)
}

// createRoom reserves a room code, spins up the authoritative match, and
// binds the code to it.
func (h *rpcHandlers) createRoom(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", errNoUserID
	}

	var req CreateRoomRequest
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", errors.New("malformed create_room payload")
		}
	}

	persistentMarking := config.GetDefaultPersistentMarking()
	if req.PersistentMarking != nil {
		persistentMarking = *req.PersistentMarking
	}

	code, err := h.registry.Reserve(req.RoomCode)
	if err != nil {
		logger.Warn("createRoom [User:%s]: code %q rejected: %v", userID, req.RoomCode, err)
		return "", err
	}

	matchID, err := nk.MatchCreate(ctx, MatchNameBingo, map[string]interface{}{
		ParamRoomCode:          code,
		ParamHostUserID:        userID,
		ParamPersistentMarking: persistentMarking,
	})
	if err != nil {
		h.registry.Release(code)
		logger.Error("createRoom [User:%s]: MatchCreate failed: %v", userID, err)
		return "", err
	}
	h.registry.Bind(code, matchID)

	logger.Info("createRoom [User:%s]: room %s created as match %s", userID, code, matchID)

	b, _ := json.Marshal(CreateRoomResponse{
		RoomCode:          code,
		GameID:            matchID,
		PersistentMarking: persistentMarking,
	})
	return string(b), nil
}

// joinRoom resolves a room code to the match the client should join. The
// join itself (card generation, name checks) happens on match join.
func (h *rpcHandlers) joinRoom(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req JoinRoomRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", errors.New("malformed join_room payload")
	}

	matchID, found := h.registry.Resolve(req.RoomCode)
	if !found {
		return "", app.ErrNotFound
	}

	b, _ := json.Marshal(JoinRoomResponse{GameID: matchID, RoomCode: req.RoomCode})
	return string(b), nil
}

// roomInvite issues a signed invite token for a room the caller belongs to.
func (h *rpcHandlers) roomInvite(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", errNoUserID
	}

	var req RoomInviteRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", errors.New("malformed room_invite payload")
	}

	matchID, found := h.registry.Resolve(req.RoomCode)
	if !found {
		return "", app.ErrNotFound
	}
	if roomID, ok := h.directory.Room(userID); !ok || roomID != matchID {
		return "", errors.New("caller is not a member of this room")
	}

	token, err := h.invites.GenerateToken(req.RoomCode, userID)
	if err != nil {
		logger.Error("roomInvite [User:%s]: token generation failed: %v", userID, err)
		return "", err
	}

	b, _ := json.Marshal(RoomInviteResponse{Token: token, RoomCode: req.RoomCode})
	return string(b), nil
}

// redeemInvite verifies an invite token and resolves the room it grants.
func (h *rpcHandlers) redeemInvite(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req RedeemInviteRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", errors.New("malformed redeem_invite payload")
	}

	code, err := h.invites.ParseToken(req.Token)
	if err != nil {
		return "", err
	}

	matchID, found := h.registry.Resolve(code)
	if !found {
		return "", app.ErrNotFound
	}

	b, _ := json.Marshal(JoinRoomResponse{GameID: matchID, RoomCode: code})
	return string(b), nil
}
