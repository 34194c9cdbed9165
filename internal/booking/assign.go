package booking

import (
	"github.com/iliyamo/hotel-property-management/internal/model"
)

// AssignRoom picks a concrete room number for a candidate reservation
// of a given room type.  When the candidate already carries a room
// number the call is an idempotent no-op and returns it unchanged.
//
// Otherwise the matching active containers are scanned in natural room
// number order.  A set of room numbers held by live reservations that
// are neither cancelled nor manually checked out serves as a coarse
// fast path: a room no live reservation holds at all cannot conflict.
// Rooms that are in the set still qualify when a full date-aware
// conflict scan against the candidate's interval comes back clean, so
// back-to-back turnovers and non-overlapping ranges reuse rooms
// correctly.  The coarse set alone is never the final word.
//
// The empty string signals exhaustion: every container of the type is
// blocked for the requested range, or the hotel has no matching
// containers at all.  That is a normal outcome, not an error.  The only
// error case is an unparseable candidate date.
// RoomOccupants narrows a reservation snapshot to the rows that still
// physically hold their room.  The assigner and the authoritative
// pre-write conflict check must scan the same population: a room
// vacated by manual checkout is assignable, so the re-check has to
// ignore the vacated row too or it rejects the very room the assigner
// just picked.
func RoomOccupants(rs []model.Reservation) []model.Reservation {
	out := make([]model.Reservation, 0, len(rs))
	for _, r := range rs {
		if r.OccupiesRoom() {
			out = append(out, r)
		}
	}
	return out
}

func AssignRoom(candidate model.Reservation, grid model.Grid, live []model.Reservation) (string, error) {
	if candidate.RoomNumber != "" {
		return candidate.RoomNumber, nil
	}
	// validate the candidate's own dates before touching the grid
	if _, err := parseInterval(candidate.CheckIn, candidate.CheckOut); err != nil {
		return "", err
	}
	containers := ActiveContainersOfType(grid, candidate.RoomInfo)
	if len(containers) == 0 {
		return "", nil
	}
	// Manually-checked-out rows have vacated their room and never block
	// assignment; drop them from both the coarse set and the full scan.
	occupants := RoomOccupants(live)
	assigned := make(map[string]bool, len(occupants))
	for _, r := range occupants {
		if r.RoomNumber != "" {
			assigned[r.RoomNumber] = true
		}
	}
	for _, c := range containers {
		if !assigned[c.RoomNumber] {
			return c.RoomNumber, nil
		}
		res, err := DetectConflict(candidate, c.RoomNumber, occupants, "")
		if err != nil {
			return "", err
		}
		if !res.Conflict {
			return c.RoomNumber, nil
		}
	}
	return "", nil
}
