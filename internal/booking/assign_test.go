package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-property-management/internal/model"
)

func standardGrid(roomNumbers ...string) model.Grid {
	f := model.Floor{Level: 1}
	for _, rn := range roomNumbers {
		f.Containers = append(f.Containers, model.Container{
			ContainerID: "c" + rn,
			RoomInfo:    "standard",
			RoomNumber:  rn,
			IsActive:    true,
		})
	}
	return model.Grid{Floors: []model.Floor{f}}
}

func TestAssignRoom_IdempotentWhenPreselected(t *testing.T) {
	cand := stay("new", "203", "2025-03-01T15:00:00+09:00", "2025-03-02T11:00:00+09:00")
	got, err := AssignRoom(cand, model.Grid{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "203", got, "a pre-selected room is returned without scanning")
}

func TestAssignRoom_SkipsOverlappingRoom(t *testing.T) {
	// The scenario from the availability walkthrough: 101 is taken for
	// the requested nights, 102 is free.
	existing := stay("agoda-100", "101", "2025-03-01T15:00:00+09:00", "2025-03-03T11:00:00+09:00")
	cand := stay("walkin-1", "", "2025-03-02T15:00:00+09:00", "2025-03-03T11:00:00+09:00")

	got, err := AssignRoom(cand, standardGrid("101", "102"), []model.Reservation{existing})
	require.NoError(t, err)
	assert.Equal(t, "102", got)
}

func TestAssignRoom_ReusesRoomForDisjointRange(t *testing.T) {
	// 101 is held by a live reservation, but for different dates; the
	// date-aware check must reuse it instead of skipping to 102.
	existing := stay("early", "101", "2025-03-01T15:00:00+09:00", "2025-03-03T11:00:00+09:00")
	cand := stay("late", "", "2025-03-10T15:00:00+09:00", "2025-03-12T11:00:00+09:00")

	got, err := AssignRoom(cand, standardGrid("101", "102"), []model.Reservation{existing})
	require.NoError(t, err)
	assert.Equal(t, "101", got)
}

func TestAssignRoom_Exhaustion(t *testing.T) {
	a := stay("a", "101", "2025-03-01T15:00:00+09:00", "2025-03-03T11:00:00+09:00")
	b := stay("b", "102", "2025-03-01T15:00:00+09:00", "2025-03-03T11:00:00+09:00")
	cand := stay("new", "", "2025-03-02T15:00:00+09:00", "2025-03-03T11:00:00+09:00")

	got, err := AssignRoom(cand, standardGrid("101", "102"), []model.Reservation{a, b})
	require.NoError(t, err)
	assert.Equal(t, "", got, "empty string signals a fully booked room type")
}

func TestAssignRoom_NoGridOrNoMatchingContainers(t *testing.T) {
	cand := stay("new", "", "2025-03-01T15:00:00+09:00", "2025-03-02T11:00:00+09:00")

	got, err := AssignRoom(cand, model.Grid{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "", got)

	deluxeOnly := model.Grid{Containers: []model.Container{
		{ContainerID: "c1", RoomInfo: "deluxe", RoomNumber: "501", IsActive: true},
	}}
	got, err = AssignRoom(cand, deluxeOnly, nil)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestAssignRoom_ManualCheckoutFreesRoom(t *testing.T) {
	vacated := stay("gone-early", "101", "2025-03-01T15:00:00+09:00", "2025-03-05T11:00:00+09:00")
	vacated.ManuallyCheckedOut = true
	cand := stay("new", "", "2025-03-03T15:00:00+09:00", "2025-03-04T11:00:00+09:00")

	got, err := AssignRoom(cand, standardGrid("101"), []model.Reservation{vacated})
	require.NoError(t, err)
	assert.Equal(t, "101", got)
}

func TestRoomOccupants(t *testing.T) {
	vacated := stay("gone-early", "101", "2025-03-01T15:00:00+09:00", "2025-03-05T11:00:00+09:00")
	vacated.ManuallyCheckedOut = true
	cancelled := stay("noshow", "102", "2025-03-01T15:00:00+09:00", "2025-03-02T11:00:00+09:00")
	cancelled.IsCancelled = true
	held := stay("agoda-1", "103", "2025-03-01T15:00:00+09:00", "2025-03-02T11:00:00+09:00")

	out := RoomOccupants([]model.Reservation{vacated, cancelled, held})
	require.Len(t, out, 1)
	assert.Equal(t, "agoda-1", out[0].Key)
}

func TestAssignRoom_VacatedRoomSurvivesWriteRecheck(t *testing.T) {
	// The insert path re-runs DetectConflict on a fresh snapshot after
	// assignment.  Both stages must see the same occupants: if the
	// vacated stay reached the re-check the room assigned above would
	// be rejected as conflicting.
	vacated := stay("gone-early", "101", "2025-03-01T15:00:00+09:00", "2025-03-05T11:00:00+09:00")
	vacated.ManuallyCheckedOut = true
	cand := stay("new", "", "2025-03-03T15:00:00+09:00", "2025-03-04T11:00:00+09:00")
	snapshot := []model.Reservation{vacated}

	room, err := AssignRoom(cand, standardGrid("101"), snapshot)
	require.NoError(t, err)
	require.Equal(t, "101", room)
	cand.RoomNumber = room

	res, err := DetectConflict(cand, room, RoomOccupants(snapshot), "")
	require.NoError(t, err)
	assert.False(t, res.Conflict, "a vacated room must stay bookable through the write-time re-check")
}

func TestAssignRoom_PicksLowestNaturalRoomFirst(t *testing.T) {
	cand := stay("new", "", "2025-03-01T15:00:00+09:00", "2025-03-02T11:00:00+09:00")
	got, err := AssignRoom(cand, standardGrid("10", "9", "102"), nil)
	require.NoError(t, err)
	assert.Equal(t, "9", got)
}

func TestAssignRoom_InvalidCandidateDates(t *testing.T) {
	cand := stay("new", "", "garbage", "2025-03-02T11:00:00+09:00")
	_, err := AssignRoom(cand, standardGrid("101"), nil)
	assert.ErrorIs(t, err, ErrInvalidDate)
}
