package app

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// GeneratedCodeLength is the length of server-issued room codes.
	GeneratedCodeLength = 6
	minCodeLength       = 3
	maxCodeLength       = 8
)

var (
	ErrCodeInUse   = errors.New("room code already exists")
	ErrInvalidCode = errors.New("room code must be 3-8 characters")
	ErrNotFound    = errors.New("room not found")
)

// Registry is the bidirectional code/room lookup for active rooms. Rooms run
// in parallel and never share state, so this table is the only cross-room
// mutable state and takes a mutex.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]string // code -> room id ("" while reserved)
	rng   *rand.Rand
}

// NewRegistry constructs an empty registry with the provided rng or a
// time-seeded default.
func NewRegistry(rng *rand.Rand) *Registry {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Registry{
		rooms: map[string]string{},
		rng:   rng,
	}
}

// Reserve claims a room code ahead of room creation. A non-empty requested
// code is trimmed, upper-cased and validated; a requested code that is
// already active fails with ErrCodeInUse. With no requested code a random
// 6-character code is issued, assumed collision-free. Call Bind once the
// room exists, or Release if creation fails.
func (r *Registry) Reserve(requested string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(requested))

	r.mu.Lock()
	defer r.mu.Unlock()

	if code != "" {
		if len(code) < minCodeLength || len(code) > maxCodeLength {
			return "", ErrInvalidCode
		}
		if _, exists := r.rooms[code]; exists {
			return "", ErrCodeInUse
		}
	} else {
		code = r.generateCode()
	}

	r.rooms[code] = ""
	return code, nil
}

// Bind associates a reserved code with its room id.
func (r *Registry) Bind(code, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rooms[code]; exists {
		r.rooms[code] = roomID
	}
}

// Resolve returns the room id for an active code.
func (r *Registry) Resolve(code string) (string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))

	r.mu.Lock()
	defer r.mu.Unlock()
	roomID, exists := r.rooms[code]
	if !exists || roomID == "" {
		return "", false
	}
	return roomID, true
}

// Release frees a code when its room is destroyed or creation failed.
func (r *Registry) Release(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, strings.ToUpper(strings.TrimSpace(code)))
}

// Len reports the number of reserved and active codes.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms)
}

func (r *Registry) generateCode() string {
	code := make([]byte, GeneratedCodeLength)
	for i := range code {
		code[i] = codeAlphabet[r.rng.Intn(len(codeAlphabet))]
	}
	return string(code)
}
