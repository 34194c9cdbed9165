package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-property-management/internal/model"
)

func stay(key, room, checkIn, checkOut string) model.Reservation {
	return model.Reservation{
		Key:        key,
		HotelID:    1,
		RoomInfo:   "standard",
		RoomNumber: room,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Type:       model.TypeStay,
	}
}

func dayUse(key, room, checkIn, checkOut string) model.Reservation {
	r := stay(key, room, checkIn, checkOut)
	r.Type = model.TypeDayUse
	return r
}

func TestDetectConflict_StayOverlap(t *testing.T) {
	existing := stay("agoda-100", "101", "2025-03-01T15:00:00+09:00", "2025-03-03T11:00:00+09:00")
	cand := stay("walkin-1", "", "2025-03-02T15:00:00+09:00", "2025-03-04T11:00:00+09:00")

	res, err := DetectConflict(cand, "101", []model.Reservation{existing}, "")
	require.NoError(t, err)
	assert.True(t, res.Conflict)
	require.NotNil(t, res.With)
	assert.Equal(t, "agoda-100", res.With.Key)
}

func TestDetectConflict_StayCheckoutDayTurnover(t *testing.T) {
	// B checks in at the exact instant A checks out: same-day turnover.
	a := stay("a", "101", "2025-03-01T15:00:00+09:00", "2025-03-03T11:00:00+09:00")
	b := stay("b", "101", "2025-03-03T11:00:00+09:00", "2025-03-05T11:00:00+09:00")

	res, err := DetectConflict(b, "101", []model.Reservation{a}, "")
	require.NoError(t, err)
	assert.False(t, res.Conflict)

	// and the symmetric direction
	res, err = DetectConflict(a, "101", []model.Reservation{b}, "")
	require.NoError(t, err)
	assert.False(t, res.Conflict)
}

func TestDetectConflict_DayUseBoundary(t *testing.T) {
	a := dayUse("a", "101", "2025-03-01T10:00:00+09:00", "2025-03-01T14:00:00+09:00")
	b := dayUse("b", "101", "2025-03-01T14:00:00+09:00", "2025-03-01T18:00:00+09:00")

	res, err := DetectConflict(b, "101", []model.Reservation{a}, "")
	require.NoError(t, err)
	assert.False(t, res.Conflict, "touching day-use endpoints must not conflict")

	c := dayUse("c", "101", "2025-03-01T13:00:00+09:00", "2025-03-01T15:00:00+09:00")
	res, err = DetectConflict(c, "101", []model.Reservation{a}, "")
	require.NoError(t, err)
	assert.True(t, res.Conflict)
}

func TestDetectConflict_MixedGranularity(t *testing.T) {
	// A day-use session on day D conflicts with a stay whose occupied
	// days include D, even though the exact timestamps never touch.
	session := dayUse("du", "201", "2025-03-01T14:00:00+09:00", "2025-03-01T18:00:00+09:00")
	longStay := stay("st", "201", "2025-03-01T15:00:00+09:00", "2025-03-03T11:00:00+09:00")

	res, err := DetectConflict(session, "201", []model.Reservation{longStay}, "")
	require.NoError(t, err)
	assert.True(t, res.Conflict)

	res, err = DetectConflict(longStay, "201", []model.Reservation{session}, "")
	require.NoError(t, err)
	assert.True(t, res.Conflict, "mixed granularity must be symmetric")
}

func TestDetectConflict_DayUseOnCheckoutDay(t *testing.T) {
	// The checkout day of a stay is free, so a day-use session that
	// morning is fine.
	longStay := stay("st", "201", "2025-03-01T15:00:00+09:00", "2025-03-03T11:00:00+09:00")
	session := dayUse("du", "201", "2025-03-03T12:00:00+09:00", "2025-03-03T16:00:00+09:00")

	res, err := DetectConflict(session, "201", []model.Reservation{longStay}, "")
	require.NoError(t, err)
	assert.False(t, res.Conflict)
}

func TestDetectConflict_DayUseSpanningMidnight(t *testing.T) {
	session := dayUse("du", "201", "2025-03-02T22:00:00+09:00", "2025-03-03T02:00:00+09:00")
	nextStay := stay("st", "201", "2025-03-03T15:00:00+09:00", "2025-03-04T11:00:00+09:00")

	res, err := DetectConflict(nextStay, "201", []model.Reservation{session}, "")
	require.NoError(t, err)
	assert.True(t, res.Conflict, "a session spilling past midnight occupies the next day too")
}

func TestDetectConflict_SelfAndExcludeSkipped(t *testing.T) {
	a := stay("a", "101", "2025-03-01T15:00:00+09:00", "2025-03-03T11:00:00+09:00")

	res, err := DetectConflict(a, "101", []model.Reservation{a}, "")
	require.NoError(t, err)
	assert.False(t, res.Conflict, "a reservation never conflicts with itself")

	edited := a
	edited.Key = "a-edited"
	res, err = DetectConflict(edited, "101", []model.Reservation{a}, "a")
	require.NoError(t, err)
	assert.False(t, res.Conflict, "excludeKey removes the row being edited from the scan")
}

func TestDetectConflict_FiltersRoomAndCancelled(t *testing.T) {
	otherRoom := stay("other", "102", "2025-03-01T15:00:00+09:00", "2025-03-03T11:00:00+09:00")
	cancelled := stay("gone", "101", "2025-03-01T15:00:00+09:00", "2025-03-03T11:00:00+09:00")
	cancelled.IsCancelled = true
	cand := stay("new", "", "2025-03-01T15:00:00+09:00", "2025-03-02T11:00:00+09:00")

	res, err := DetectConflict(cand, "101", []model.Reservation{otherRoom, cancelled}, "")
	require.NoError(t, err)
	assert.False(t, res.Conflict)
}

func TestDetectConflict_InvalidDates(t *testing.T) {
	// The candidate's own dates failing to parse aborts the operation.
	cand := stay("new", "", "not-a-date", "2025-03-02T11:00:00+09:00")
	_, err := DetectConflict(cand, "101", nil, "")
	assert.ErrorIs(t, err, ErrInvalidDate)

	// Dirty dates on an existing row are skipped, not fatal and not a
	// conflict.
	dirty := stay("dirty", "101", "??", "??")
	ok := stay("new", "", "2025-03-01T15:00:00+09:00", "2025-03-02T11:00:00+09:00")
	res, err := DetectConflict(ok, "101", []model.Reservation{dirty}, "")
	require.NoError(t, err)
	assert.False(t, res.Conflict)
}

func TestDetectConflict_Symmetry(t *testing.T) {
	cases := []struct {
		name string
		a, b model.Reservation
	}{
		{"stay overlap", stay("a", "101", "2025-03-01T15:00:00+09:00", "2025-03-03T11:00:00+09:00"),
			stay("b", "101", "2025-03-02T15:00:00+09:00", "2025-03-05T11:00:00+09:00")},
		{"stay disjoint", stay("a", "101", "2025-03-01T15:00:00+09:00", "2025-03-02T11:00:00+09:00"),
			stay("b", "101", "2025-03-05T15:00:00+09:00", "2025-03-06T11:00:00+09:00")},
		{"dayuse overlap", dayUse("a", "101", "2025-03-01T10:00:00+09:00", "2025-03-01T13:00:00+09:00"),
			dayUse("b", "101", "2025-03-01T12:00:00+09:00", "2025-03-01T15:00:00+09:00")},
		{"mixed same day", dayUse("a", "101", "2025-03-01T14:00:00+09:00", "2025-03-01T18:00:00+09:00"),
			stay("b", "101", "2025-03-01T15:00:00+09:00", "2025-03-03T11:00:00+09:00")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ab, err := DetectConflict(tc.a, "101", []model.Reservation{tc.b}, "")
			require.NoError(t, err)
			ba, err := DetectConflict(tc.b, "101", []model.Reservation{tc.a}, "")
			require.NoError(t, err)
			assert.Equal(t, ab.Conflict, ba.Conflict)
		})
	}
}

func TestDetectConflict_FirstMatchWins(t *testing.T) {
	first := stay("first", "101", "2025-03-01T15:00:00+09:00", "2025-03-03T11:00:00+09:00")
	second := stay("second", "101", "2025-03-02T15:00:00+09:00", "2025-03-04T11:00:00+09:00")
	cand := stay("new", "", "2025-03-02T15:00:00+09:00", "2025-03-03T11:00:00+09:00")

	res, err := DetectConflict(cand, "101", []model.Reservation{first, second}, "")
	require.NoError(t, err)
	require.True(t, res.Conflict)
	assert.Equal(t, "first", res.With.Key)
}
