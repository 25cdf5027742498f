// internal/room/directory.go
package room

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Directory is the explicit registry of active rooms, injected into
// whatever composes the service. Lifecycle is explicit create/delete;
// nothing here is ambient state. The directory mutex guards only the
// map; each room's game carries its own lock for command
// serialization, so different rooms are processed in parallel.
type Directory struct {
	mu    sync.Mutex
	rooms map[uuid.UUID]*Room
}

func NewDirectory() *Directory {
	return &Directory{
		rooms: make(map[uuid.UUID]*Room),
	}
}

// Create registers a new room hosted by the given player.
func (d *Directory) Create(hostID uuid.UUID) *Room {
	r := NewRoom(hostID)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rooms[r.ID] = r
	log.Printf("Directory: created room %s (host %s)", r.ID, hostID)
	return r
}

// Get retrieves a room by ID.
func (d *Directory) Get(id uuid.UUID) (*Room, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, ok := d.rooms[id]
	return r, ok
}

// Delete removes a room from the registry. A finished game goes away
// with its room.
func (d *Directory) Delete(id uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.rooms[id]; ok {
		delete(d.rooms, id)
		log.Printf("Directory: deleted room %s", id)
	}
}

// snapshot copies the current room pointers so callers can inspect
// games without holding the directory mutex. Taking a game's lock
// while holding d.mu would invert the order used by game callbacks
// that delete rooms.
func (d *Directory) snapshot() []*Room {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*Room, 0, len(d.rooms))
	for _, r := range d.rooms {
		out = append(out, r)
	}
	return out
}

// List returns summaries for every active room.
func (d *Directory) List() []Summary {
	rooms := d.snapshot()
	out := make([]Summary, 0, len(rooms))
	for _, r := range rooms {
		view := r.Game.StateView(uuid.Nil)
		out = append(out, Summary{
			ID:          r.ID,
			PlayerCount: len(view.Players),
			Phase:       view.Phase,
			CreatedAt:   r.CreatedAt,
		})
	}
	return out
}

// FindByPlayer returns the room whose game seats the given player, or
// nil if none does.
func (d *Directory) FindByPlayer(playerID uuid.UUID) *Room {
	for _, r := range d.snapshot() {
		view := r.Game.StateView(uuid.Nil)
		for _, p := range view.Players {
			if p.ID == playerID {
				return r
			}
		}
	}
	return nil
}
