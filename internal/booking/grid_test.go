package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-property-management/internal/model"
)

func container(id, roomInfo, roomNumber string, active bool) model.Container {
	return model.Container{ContainerID: id, RoomInfo: roomInfo, RoomNumber: roomNumber, IsActive: active}
}

func TestActiveContainersOfType_FlattensAndSorts(t *testing.T) {
	grid := model.Grid{Floors: []model.Floor{
		{Level: 2, Containers: []model.Container{
			container("c3", "standard", "10", true),
			container("c4", "deluxe", "20", true),
		}},
		{Level: 1, Containers: []model.Container{
			container("c1", "standard", "9", true),
			container("c2", "Standard", "2", true),
		}},
	}}

	got := ActiveContainersOfType(grid, "standard")
	require.Len(t, got, 3)
	assert.Equal(t, "2", got[0].RoomNumber)
	assert.Equal(t, "9", got[1].RoomNumber, `natural sort puts "9" before "10"`)
	assert.Equal(t, "10", got[2].RoomNumber)
}

func TestActiveContainersOfType_SkipsInactive(t *testing.T) {
	grid := model.Grid{Floors: []model.Floor{
		{Level: 1, Containers: []model.Container{
			container("c1", "standard", "101", true),
			container("c2", "standard", "102", false),
		}},
	}}
	got := ActiveContainersOfType(grid, "STANDARD")
	require.Len(t, got, 1)
	assert.Equal(t, "101", got[0].RoomNumber)
}

func TestActiveContainersOfType_LegacyFlatShape(t *testing.T) {
	grid := model.Grid{Containers: []model.Container{
		container("c1", "deluxe", "B10", true),
		container("c2", "deluxe", "B2", true),
	}}
	got := ActiveContainersOfType(grid, "deluxe")
	require.Len(t, got, 2)
	assert.Equal(t, "B2", got[0].RoomNumber)
	assert.Equal(t, "B10", got[1].RoomNumber)
}

func TestActiveContainersOfType_EmptyCases(t *testing.T) {
	assert.Empty(t, ActiveContainersOfType(model.Grid{}, "standard"))

	grid := model.Grid{Floors: []model.Floor{
		{Level: 1, Containers: []model.Container{container("c1", "deluxe", "101", true)}},
	}}
	assert.Empty(t, ActiveContainersOfType(grid, "standard"))
}

func TestNaturalLess(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"9", "10", true},
		{"10", "9", false},
		{"101", "101", false},
		{"B2", "B10", true},
		{"A1", "B1", true},
		{"2", "02", true}, // equal value, fewer leading zeros first
		{"02", "2", false},
		{"101", "101A", true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, naturalLess(tc.a, tc.b), "%q < %q", tc.a, tc.b)
	}
}
