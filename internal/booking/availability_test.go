package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-property-management/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, KST)
}

func standardType(stock int) model.RoomType {
	return model.RoomType{HotelID: 1, RoomInfo: "standard", Price: 90000, Stock: stock}
}

func TestComputeAvailability_StayOccupiesNightsNotCheckoutDay(t *testing.T) {
	live := []model.Reservation{
		stay("agoda-100", "101", "2025-03-01T15:00:00+09:00", "2025-03-03T11:00:00+09:00"),
	}
	av := ComputeAvailability(live, []model.RoomType{standardType(2)}, day(2025, 3, 1), day(2025, 3, 4))

	require.Len(t, av, 3)
	assert.Equal(t, 1, av["2025-03-01"]["standard"].Remain)
	assert.Equal(t, 1, av["2025-03-02"]["standard"].Remain)
	assert.Equal(t, 2, av["2025-03-03"]["standard"].Remain, "checkout day is free")
}

func TestComputeAvailability_DayUseSpanningMidnight(t *testing.T) {
	live := []model.Reservation{
		dayUse("du-1", "101", "2025-03-01T23:00:00+09:00", "2025-03-02T01:00:00+09:00"),
	}
	av := ComputeAvailability(live, []model.RoomType{standardType(2)}, day(2025, 3, 1), day(2025, 3, 4))

	assert.Equal(t, 1, av["2025-03-01"]["standard"].Remain)
	assert.Equal(t, 1, av["2025-03-02"]["standard"].Remain, "a session past midnight occupies both days")
	assert.Equal(t, 2, av["2025-03-03"]["standard"].Remain)
}

func TestComputeAvailability_NegativeRemainSurfaced(t *testing.T) {
	live := []model.Reservation{
		stay("a", "101", "2025-03-01T15:00:00+09:00", "2025-03-02T11:00:00+09:00"),
		stay("b", "102", "2025-03-01T15:00:00+09:00", "2025-03-02T11:00:00+09:00"),
	}
	av := ComputeAvailability(live, []model.RoomType{standardType(1)}, day(2025, 3, 1), day(2025, 3, 2))
	assert.Equal(t, -1, av["2025-03-01"]["standard"].Remain, "overbooking must not be hidden")
}

func TestComputeAvailability_CancelledAndUnassignedRows(t *testing.T) {
	cancelled := stay("gone", "101", "2025-03-01T15:00:00+09:00", "2025-03-02T11:00:00+09:00")
	cancelled.IsCancelled = true
	// unassigned bookings still consume commercial stock
	unassigned := stay("pending", "", "2025-03-01T15:00:00+09:00", "2025-03-02T11:00:00+09:00")

	av := ComputeAvailability([]model.Reservation{cancelled, unassigned},
		[]model.RoomType{standardType(2)}, day(2025, 3, 1), day(2025, 3, 2))
	assert.Equal(t, 1, av["2025-03-01"]["standard"].Remain)
}

func TestComputeAvailability_AddingReservationNeverIncreasesRemain(t *testing.T) {
	types := []model.RoomType{standardType(3)}
	base := []model.Reservation{
		stay("a", "101", "2025-03-01T15:00:00+09:00", "2025-03-03T11:00:00+09:00"),
	}
	more := append(append([]model.Reservation{}, base...),
		stay("b", "102", "2025-03-02T15:00:00+09:00", "2025-03-04T11:00:00+09:00"))

	before := ComputeAvailability(base, types, day(2025, 3, 1), day(2025, 3, 5))
	after := ComputeAvailability(more, types, day(2025, 3, 1), day(2025, 3, 5))
	for date, byType := range before {
		for key, r := range byType {
			assert.LessOrEqual(t, after[date][key].Remain, r.Remain, "%s/%s", date, key)
		}
	}
}

func TestComputeAvailability_TypeKeyCaseInsensitive(t *testing.T) {
	r := stay("a", "101", "2025-03-01T15:00:00+09:00", "2025-03-02T11:00:00+09:00")
	r.RoomInfo = "Standard"
	rt := standardType(2)
	rt.RoomInfo = "STANDARD"

	av := ComputeAvailability([]model.Reservation{r}, []model.RoomType{rt}, day(2025, 3, 1), day(2025, 3, 2))
	assert.Equal(t, 1, av["2025-03-01"]["standard"].Remain, "map keys are lowercased")
}

func TestMinRemain(t *testing.T) {
	live := []model.Reservation{
		stay("a", "101", "2025-03-01T15:00:00+09:00", "2025-03-03T11:00:00+09:00"),
		stay("b", "102", "2025-03-02T15:00:00+09:00", "2025-03-03T11:00:00+09:00"),
	}
	av := ComputeAvailability(live, []model.RoomType{standardType(2)}, day(2025, 3, 1), day(2025, 3, 4))

	assert.Equal(t, 0, MinRemain(av, "standard", day(2025, 3, 1), day(2025, 3, 3), 2))
	assert.Equal(t, 1, MinRemain(av, "standard", day(2025, 3, 1), day(2025, 3, 2), 2))
	assert.Equal(t, 2, MinRemain(av, "standard", day(2025, 3, 3), day(2025, 3, 4), 2))
	// dates outside the computed window fall back to the stock baseline
	assert.Equal(t, 2, MinRemain(av, "standard", day(2025, 4, 1), day(2025, 4, 3), 2))
}

func TestRequestWindow(t *testing.T) {
	from, to, err := RequestWindow("2025-03-01T15:00:00+09:00", "2025-03-03T11:00:00+09:00", "stay")
	require.NoError(t, err)
	assert.Equal(t, day(2025, 3, 1), from)
	assert.Equal(t, day(2025, 3, 3), to, "checkout day excluded")

	from, to, err = RequestWindow("2025-03-01T23:00:00+09:00", "2025-03-02T01:00:00+09:00", "dayUse")
	require.NoError(t, err)
	assert.Equal(t, day(2025, 3, 1), from)
	assert.Equal(t, day(2025, 3, 3), to, "midnight-spanning session occupies both days")

	// degenerate same-day stay still occupies its one day
	from, to, err = RequestWindow("2025-03-01T13:00:00+09:00", "2025-03-01T18:00:00+09:00", "stay")
	require.NoError(t, err)
	assert.Equal(t, day(2025, 3, 1), from)
	assert.Equal(t, day(2025, 3, 2), to)

	_, _, err = RequestWindow("2025-03-03", "2025-03-01", "stay")
	assert.ErrorIs(t, err, ErrInvalidDate, "reversed range rejected")

	_, _, err = RequestWindow("soon", "2025-03-01", "stay")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
