package engine

import "github.com/julianstephens/lectern/internal/models"

func (e *Engine) activeAt(day models.Day, t string) []models.Lecture {
	var out []models.Lecture
	for _, l := range e.store.LecturesOn(day) {
		if l.ActiveAt(day, t) {
			out = append(out, l)
		}
	}
	return out
}

// FindEmptyRooms lists rooms that are certainly free at (day, t) and the
// lectures whose room is one of several candidates. Across all divisions, a
// single-room lecture occupies its room and a multi-room lecture makes every
// candidate unavailable while being reported once as ambiguous.
func (e *Engine) FindEmptyRooms(day models.Day, t string, filter RoomFilter) EmptyRooms {
	occupied := map[string]bool{}
	candidate := map[string]bool{}
	result := EmptyRooms{Available: []models.Room{}, Ambiguous: []models.Lecture{}}

	for _, l := range e.activeAt(day, t) {
		if !l.RoomIsAmbiguous() {
			for _, id := range l.RoomID {
				occupied[id] = true
			}
			continue
		}
		for _, id := range l.RoomID {
			candidate[id] = true
		}
		if e.anyRoomMatches(l.RoomID, filter) {
			result.Ambiguous = append(result.Ambiguous, l)
		}
	}

	for _, r := range e.store.Rooms() {
		if filter.matches(r) && !occupied[r.ID] && !candidate[r.ID] {
			result.Available = append(result.Available, r)
		}
	}
	return result
}

func (e *Engine) anyRoomMatches(ids []string, filter RoomFilter) bool {
	if filter.Floor == nil && filter.Type == "" {
		return true
	}
	for _, id := range ids {
		if r, ok := e.store.Room(id); ok && filter.matches(r) {
			return true
		}
	}
	return false
}

// FindRoomStatus reports whether one room is free at (day, t). A lecture
// certainly in the room takes precedence over one that might be.
func (e *Engine) FindRoomStatus(roomID string, day models.Day, t string) RoomResult {
	if _, ok := e.store.Room(roomID); !ok {
		return RoomResult{RoomID: roomID, Status: RoomNotFound}
	}

	var maybe *models.Lecture
	for _, l := range e.activeAt(day, t) {
		if !l.HasRoom(roomID) {
			continue
		}
		if !l.RoomIsAmbiguous() {
			return RoomResult{RoomID: roomID, Status: RoomOccupied, Lecture: ref(l)}
		}
		if maybe == nil {
			maybe = ref(l)
		}
	}
	if maybe != nil {
		return RoomResult{RoomID: roomID, Status: RoomPotentiallyOccupied, Lecture: maybe}
	}
	return RoomResult{RoomID: roomID, Status: RoomAvailable}
}
