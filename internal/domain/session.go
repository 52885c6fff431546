package domain

import "strings"

// Letters are the five slots struck one by one as a player completes lines.
var Letters = [MaxCompletedLines]string{"B", "I", "N", "G", "O"}

// Player holds the per-connection state for one participant in a room.
// The host connection owns the session but has no Player record.
type Player struct {
	UserID string
	Name   string
	Card   Card

	// Marked preserves insertion order for display; values are a subset of Card.
	Marked            []int
	Letters           [MaxCompletedLines]string // struck slots become ""
	CompletedLines    int
	CompletedPatterns []int
}

// NewPlayer creates a player with a fresh letter rack and the given card.
func NewPlayer(userID, name string, card Card) *Player {
	return &Player{
		UserID:  userID,
		Name:    name,
		Card:    card,
		Marked:  []int{},
		Letters: Letters,
	}
}

// HasMarked reports whether the player already marked the given number.
func (p *Player) HasMarked(number int) bool {
	return containsInt(p.Marked, number)
}

// Reset clears marks, letters and completions for a new game. The card is kept.
func (p *Player) Reset() {
	p.Marked = []int{}
	p.Letters = Letters
	p.CompletedLines = 0
	p.CompletedPatterns = nil
}

// Winner records a player reaching five completed lines. Positions are
// assigned in win order starting at 1.
type Winner struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// Session is the authoritative state of one bingo room.
type Session struct {
	ID         string
	Code       string
	HostUserID string

	Players map[string]*Player // userID -> player

	CalledNumbers []int // no duplicates, call order
	CurrentNumber int   // 0 until the first call
	Winners       []Winner

	Started bool
	Paused  bool
	Ended   bool

	PersistentMarking bool
}

// NewSession creates a room in the lobby state.
func NewSession(id, code, hostUserID string, persistentMarking bool) *Session {
	return &Session{
		ID:                id,
		Code:              code,
		HostUserID:        hostUserID,
		Players:           map[string]*Player{},
		CalledNumbers:     []int{},
		PersistentMarking: persistentMarking,
	}
}

// JoinLocked reports whether new players are currently barred from joining.
// Only an active, unpaused, unended game blocks joins.
func (s *Session) JoinLocked() bool {
	return s.Started && !s.Paused && !s.Ended
}

// NameInUse reports whether a display name is taken, case-insensitively.
func (s *Session) NameInUse(name string) bool {
	for _, p := range s.Players {
		if strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

// HasCalled reports whether the number is in the call history.
func (s *Session) HasCalled(number int) bool {
	return containsInt(s.CalledNumbers, number)
}

// ResetForStart re-enters the playing state with all history cleared.
// This doubles as "new game" after a winner-triggered end.
func (s *Session) ResetForStart() {
	s.Started = true
	s.Paused = false
	s.Ended = false
	s.Winners = nil
	s.CalledNumbers = []int{}
	s.CurrentNumber = 0
	for _, p := range s.Players {
		p.Reset()
	}
}
