package app

import (
	"errors"
	"math/rand"
	"time"

	"bingo/internal/domain"
)

// Service contains the bingo session use-cases. Each method validates its
// guards, applies the transition to the session, and returns the broadcast
// instructions for the transport adapter to dispatch.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrNotHost            = errors.New("actor is not the room host")
	ErrUnknownPlayer      = errors.New("player not found in room")
	ErrInvalidName        = errors.New("player name is required")
	ErrNameTaken          = errors.New("username already taken in this game")
	ErrGameInProgress     = errors.New("game already in progress")
	ErrNotStarted         = errors.New("game not started")
	ErrNotPaused          = errors.New("game not paused")
	ErrGameEnded          = errors.New("game already ended")
	ErrGamePaused         = errors.New("game is paused")
	ErrNoNumbersRemaining = errors.New("no numbers remaining to call")
)

// Join adds a player with a freshly generated card. Joins are blocked only
// while a game is actively running (started, unpaused, unended).
func (s *Service) Join(sess *domain.Session, userID, name string) ([]Event, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if sess.JoinLocked() {
		return nil, ErrGameInProgress
	}
	if sess.NameInUse(name) {
		return nil, ErrNameTaken
	}

	card, err := domain.NewCard(s.rng)
	if err != nil {
		return nil, err
	}
	sess.Players[userID] = domain.NewPlayer(userID, name, card)

	return []Event{
		{
			Kind:  EventGameJoined,
			Scope: ScopeSender,
			Payload: GameJoinedPayload{
				GameID:            sess.ID,
				BingoCard:         card,
				RoomCode:          sess.Code,
				PersistentMarking: sess.PersistentMarking,
				CalledNumbers:     sess.CalledNumbers,
				GamePaused:        sess.Paused,
			},
		},
		{
			Kind:  EventPlayerJoined,
			Scope: ScopeOthers,
			Payload: PlayerJoinedPayload{
				PlayerName:  name,
				PlayerCount: len(sess.Players),
			},
		},
	}, nil
}

// Start (re)enters the playing state with all history cleared. It is allowed
// in any phase and doubles as "new game" after a winner-triggered end.
func (s *Service) Start(sess *domain.Session, actorID string) ([]Event, error) {
	if actorID != sess.HostUserID {
		return nil, ErrNotHost
	}

	sess.ResetForStart()

	return []Event{{Kind: EventGameStarted, Scope: ScopeRoom, Payload: struct{}{}}}, nil
}

// Pause suspends calling and marking without touching history.
func (s *Service) Pause(sess *domain.Session, actorID string) ([]Event, error) {
	if actorID != sess.HostUserID {
		return nil, ErrNotHost
	}
	if !sess.Started {
		return nil, ErrNotStarted
	}
	if sess.Ended {
		return nil, ErrGameEnded
	}

	sess.Paused = true

	return []Event{{Kind: EventGamePaused, Scope: ScopeRoom, Payload: struct{}{}}}, nil
}

// Resume re-enables calling and marking after a pause.
func (s *Service) Resume(sess *domain.Session, actorID string) ([]Event, error) {
	if actorID != sess.HostUserID {
		return nil, ErrNotHost
	}
	if !sess.Started {
		return nil, ErrNotStarted
	}
	if !sess.Paused {
		return nil, ErrNotPaused
	}

	sess.Paused = false

	return []Event{{Kind: EventGameResumed, Scope: ScopeRoom, Payload: struct{}{}}}, nil
}

// CallNumber draws a number in [1,NumberPoolSize] not yet called, appends it
// to the history, and announces it to the room. Once the pool is exhausted
// the draw fails with ErrNoNumbersRemaining rather than looping.
func (s *Service) CallNumber(sess *domain.Session, actorID string) ([]Event, error) {
	if actorID != sess.HostUserID {
		return nil, ErrNotHost
	}
	if !sess.Started {
		return nil, ErrNotStarted
	}
	if sess.Paused {
		return nil, ErrGamePaused
	}
	if sess.Ended {
		return nil, ErrGameEnded
	}
	if len(sess.CalledNumbers) >= domain.NumberPoolSize {
		return nil, ErrNoNumbersRemaining
	}

	number := s.rng.Intn(domain.NumberPoolSize) + 1
	for sess.HasCalled(number) {
		number = s.rng.Intn(domain.NumberPoolSize) + 1
	}

	sess.CalledNumbers = append(sess.CalledNumbers, number)
	sess.CurrentNumber = number

	return []Event{{
		Kind:    EventNumberCalled,
		Scope:   ScopeRoom,
		Payload: NumberCalledPayload{Number: number},
	}}, nil
}

// Mark validates and applies a player's mark. Valid marks are acknowledged
// with the player's full marking state (idempotently for repeats); marks of
// numbers that were not called or are not on the card get a negative
// acknowledgment and mutate nothing. At most one new pattern is credited per
// mark event; the fifth completed line records a winner and ends the game,
// leaving the room alive for a host restart.
func (s *Service) Mark(sess *domain.Session, userID string, number int) ([]Event, error) {
	player, ok := sess.Players[userID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if sess.Ended {
		return nil, ErrGameEnded
	}
	if sess.Paused {
		return nil, ErrGamePaused
	}

	if !sess.HasCalled(number) || !player.Card.Contains(number) {
		return []Event{{
			Kind:    EventNumberMarked,
			Scope:   ScopeSender,
			Payload: MarkRejectedPayload{Number: number, Correct: false},
		}}, nil
	}

	var events []Event
	if !player.HasMarked(number) {
		player.Marked = append(player.Marked, number)

		if completed, patternIndex := domain.CheckNewCompletion(player.Card, player.Marked, player.CompletedPatterns); completed {
			player.CompletedLines++
			player.CompletedPatterns = append(player.CompletedPatterns, patternIndex)

			if player.CompletedLines <= domain.MaxCompletedLines {
				letter := domain.Letters[player.CompletedLines-1]
				player.Letters[player.CompletedLines-1] = ""

				events = append(events, Event{
					Kind:  EventBingoLetter,
					Scope: ScopeOthers,
					Payload: BingoLetterPayload{
						PlayerName:     player.Name,
						Letter:         letter,
						CompletedLines: player.CompletedLines,
					},
				})

				if player.CompletedLines == domain.MaxCompletedLines {
					sess.Winners = append(sess.Winners, domain.Winner{
						Name:     player.Name,
						Position: len(sess.Winners) + 1,
					})
					sess.Ended = true

					events = append(events, Event{
						Kind:  EventWinner,
						Scope: ScopeRoom,
						Payload: WinnerPayload{
							PlayerName: player.Name,
							Position:   len(sess.Winners),
							Winners:    sess.Winners,
						},
					})
				}
			}
		}
	}

	events = append(events, Event{
		Kind:  EventNumberMarked,
		Scope: ScopeSender,
		Payload: NumberMarkedPayload{
			Number:         number,
			Correct:        true,
			MarkedNumbers:  player.Marked,
			BingoLetters:   player.Letters[:],
			CompletedLines: player.CompletedLines,
		},
	})
	return events, nil
}

// End is the host's hard stop: the game ends, the room is terminated, and
// every member is told to exit. The caller is expected to destroy the
// session after dispatching the returned events.
func (s *Service) End(sess *domain.Session, actorID string) ([]Event, error) {
	if actorID != sess.HostUserID {
		return nil, ErrNotHost
	}
	if !sess.Started {
		return nil, ErrNotStarted
	}

	sess.Ended = true
	sess.Paused = false

	return []Event{{
		Kind:  EventGameEnded,
		Scope: ScopeRoom,
		Payload: GameEndedPayload{
			Message:   "Game ended by host - Room terminated",
			Winners:   sess.Winners,
			ForceExit: true,
		},
	}}, nil
}

// UpdateSettings changes the persistent-marking flag and notifies the room.
func (s *Service) UpdateSettings(sess *domain.Session, actorID string, persistentMarking bool) ([]Event, error) {
	if actorID != sess.HostUserID {
		return nil, ErrNotHost
	}

	sess.PersistentMarking = persistentMarking

	return []Event{{
		Kind:    EventSettingsUpdated,
		Scope:   ScopeRoom,
		Payload: SettingsUpdatedPayload{PersistentMarking: persistentMarking},
	}}, nil
}

// Status reports the room's state to the requesting connection.
func (s *Service) Status(sess *domain.Session) Event {
	players := make([]PlayerStatus, 0, len(sess.Players))
	for _, p := range sess.Players {
		players = append(players, PlayerStatus{Name: p.Name, CompletedLines: p.CompletedLines})
	}

	return Event{
		Kind:  EventGameStatus,
		Scope: ScopeSender,
		Payload: GameStatusPayload{
			Players:           players,
			CalledNumbers:     sess.CalledNumbers,
			CurrentNumber:     sess.CurrentNumber,
			Winners:           sess.Winners,
			GameEnded:         sess.Ended,
			GamePaused:        sess.Paused,
			PersistentMarking: sess.PersistentMarking,
		},
	}
}

// Leave removes a departing connection from the session. The second return
// reports whether the host left, in which case the caller must announce it
// and destroy the room.
func (s *Service) Leave(sess *domain.Session, userID string) ([]Event, bool) {
	var events []Event

	if _, ok := sess.Players[userID]; ok {
		delete(sess.Players, userID)
		events = append(events, Event{
			Kind:    EventPlayerLeft,
			Scope:   ScopeRoom,
			Payload: PlayerLeftPayload{PlayerCount: len(sess.Players)},
		})
	}

	if userID == sess.HostUserID {
		events = append(events, Event{Kind: EventHostLeft, Scope: ScopeRoom, Payload: struct{}{}})
		return events, true
	}
	return events, false
}
