package nakama

const (
	// RpcCreateRoom reserves a room code and spins up the authoritative match.
	RpcCreateRoom = "create_room"
	// RpcJoinRoom resolves a room code to the match id a client should join.
	RpcJoinRoom = "join_room"
	// RpcRoomInvite issues a signed invite token for the caller's room.
	RpcRoomInvite = "room_invite"
	// RpcRedeemInvite resolves an invite token to a joinable match.
	RpcRedeemInvite = "redeem_invite"

	// MatchNameBingo is the authoritative match handler name registered with Nakama.
	MatchNameBingo = "bingo_match"
)

// Match creation param keys.
const (
	ParamRoomCode          = "room_code"
	ParamHostUserID        = "host_user_id"
	ParamPersistentMarking = "persistent_marking"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame      int64 = 1
	OpPauseGame      int64 = 2
	OpResumeGame     int64 = 3
	OpEndGame        int64 = 4
	OpCallNumber     int64 = 5
	OpMarkNumber     int64 = 6
	OpUpdateSettings int64 = 7
	OpGetGameStatus  int64 = 8

	// Server -> Client events
	OpGameJoined      int64 = 101 // send privately
	OpPlayerJoined    int64 = 102
	OpGameStarted     int64 = 103
	OpGamePaused      int64 = 104
	OpGameResumed     int64 = 105
	OpGameEnded       int64 = 106
	OpNumberCalled    int64 = 107
	OpNumberMarked    int64 = 108 // send privately
	OpBingoLetter     int64 = 109
	OpWinner          int64 = 110
	OpPlayerLeft      int64 = 111
	OpHostLeft        int64 = 112
	OpSettingsUpdated int64 = 113
	OpGameStatus      int64 = 114 // send privately
)
