package app

import "sync"

// Directory maps live connections to the room they belong to, for O(1)
// disconnect cleanup and membership checks from RPC handlers.
type Directory struct {
	mu    sync.Mutex
	rooms map[string]string // user id -> room id
}

// NewDirectory constructs an empty directory.
func NewDirectory() *Directory {
	return &Directory{rooms: map[string]string{}}
}

// Set records the room a connection belongs to.
func (d *Directory) Set(userID, roomID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rooms[userID] = roomID
}

// Room returns the room a connection belongs to, if any.
func (d *Directory) Room(userID string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	roomID, ok := d.rooms[userID]
	return roomID, ok
}

// Remove drops a connection's membership record.
func (d *Directory) Remove(userID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.rooms, userID)
}

// RemoveRoom drops every membership record for a destroyed room.
func (d *Directory) RemoveRoom(roomID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for userID, id := range d.rooms {
		if id == roomID {
			delete(d.rooms, userID)
		}
	}
}
