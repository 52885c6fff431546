package app

import "bingo/internal/domain"

// EventKind identifies emitted session events for transport dispatch.
type EventKind string

const (
	EventGameJoined      EventKind = "game_joined"
	EventPlayerJoined    EventKind = "player_joined"
	EventGameStarted     EventKind = "game_started"
	EventGamePaused      EventKind = "game_paused"
	EventGameResumed     EventKind = "game_resumed"
	EventGameEnded       EventKind = "game_ended"
	EventNumberCalled    EventKind = "number_called"
	EventNumberMarked    EventKind = "number_marked"
	EventBingoLetter     EventKind = "bingo_letter"
	EventWinner          EventKind = "winner"
	EventPlayerLeft      EventKind = "player_left"
	EventHostLeft        EventKind = "host_left"
	EventSettingsUpdated EventKind = "settings_updated"
	EventGameStatus      EventKind = "game_status"
)

// Scope selects the recipients of an event relative to the acting connection.
type Scope int

const (
	// ScopeRoom delivers to every member of the room, the actor included.
	ScopeRoom Scope = iota
	// ScopeSender delivers to the acting connection only.
	ScopeSender
	// ScopeOthers delivers to every member except the acting connection.
	ScopeOthers
)

// Event is a session event with a recipient scope. The transport adapter
// resolves the scope against the room's live connections.
type Event struct {
	Kind    EventKind
	Scope   Scope
	Payload any
}

type GameJoinedPayload struct {
	GameID            string      `json:"gameId"`
	BingoCard         domain.Card `json:"bingoCard"`
	RoomCode          string      `json:"roomCode"`
	PersistentMarking bool        `json:"persistentMarking"`
	CalledNumbers     []int       `json:"calledNumbers"`
	GamePaused        bool        `json:"gamePaused"`
}

type PlayerJoinedPayload struct {
	PlayerName  string `json:"playerName"`
	PlayerCount int    `json:"playerCount"`
}

type GameEndedPayload struct {
	Message   string          `json:"message"`
	Winners   []domain.Winner `json:"winners"`
	ForceExit bool            `json:"forceExit"`
}

type NumberCalledPayload struct {
	Number int `json:"number"`
}

// NumberMarkedPayload acknowledges a valid (or repeated) mark with the
// player's full marking state.
type NumberMarkedPayload struct {
	Number         int      `json:"number"`
	Correct        bool     `json:"correct"`
	MarkedNumbers  []int    `json:"markedNumbers"`
	BingoLetters   []string `json:"bingoLetters"`
	CompletedLines int      `json:"completedLines"`
}

// MarkRejectedPayload is the negative acknowledgment for a number that was
// not called or is not on the player's card. No state accompanies it.
type MarkRejectedPayload struct {
	Number  int  `json:"number"`
	Correct bool `json:"correct"`
}

type BingoLetterPayload struct {
	PlayerName     string `json:"playerName"`
	Letter         string `json:"letter"`
	CompletedLines int    `json:"completedLines"`
}

type WinnerPayload struct {
	PlayerName string          `json:"playerName"`
	Position   int             `json:"position"`
	Winners    []domain.Winner `json:"winners"`
}

type PlayerLeftPayload struct {
	PlayerCount int `json:"playerCount"`
}

type SettingsUpdatedPayload struct {
	PersistentMarking bool `json:"persistentMarking"`
}

type PlayerStatus struct {
	Name           string `json:"name"`
	CompletedLines int    `json:"completedLines"`
}

type GameStatusPayload struct {
	Players           []PlayerStatus  `json:"players"`
	CalledNumbers     []int           `json:"calledNumbers"`
	CurrentNumber     int             `json:"currentNumber"`
	Winners           []domain.Winner `json:"winners"`
	GameEnded         bool            `json:"gameEnded"`
	GamePaused        bool            `json:"gamePaused"`
	PersistentMarking bool            `json:"persistentMarking"`
}
