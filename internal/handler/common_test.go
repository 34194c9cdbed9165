package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-property-management/internal/model"
)

func testContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestGetUserID(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		want  uint64
		ok    bool
	}{
		{"uint64", uint64(7), 7, true},
		{"float64 from jwt claims", float64(42), 42, true},
		{"int", 3, 3, true},
		{"numeric string", "19", 19, true},
		{"garbage string", "abc", 0, false},
		{"nil", nil, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := testContext(t)
			if tc.value != nil {
				c.Set("user_id", tc.value)
			}
			got, err := getUserID(c)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestHotelIDParam(t *testing.T) {
	c, _ := testContext(t)
	c.SetParamNames("id")
	c.SetParamValues("12")
	id, err := hotelIDParam(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), id)

	c.SetParamValues("0")
	_, err = hotelIDParam(c)
	assert.Error(t, err)

	c.SetParamValues("twelve")
	_, err = hotelIDParam(c)
	assert.Error(t, err)
}

func TestConflictResponse(t *testing.T) {
	c, rec := testContext(t)
	blocker := &model.Reservation{
		Key:        "agoda-555",
		RoomNumber: "203",
		CheckIn:    "2025-07-01T15:00:00+09:00",
		CheckOut:   "2025-07-03T11:00:00+09:00",
		Type:       model.TypeStay,
	}
	require.NoError(t, conflictResponse(c, blocker))
	assert.Equal(t, http.StatusConflict, rec.Code)

	var body struct {
		Error    string `json:"error"`
		Conflict struct {
			Key        string `json:"key"`
			RoomNumber string `json:"room_number"`
			CheckIn    string `json:"check_in"`
			CheckOut   string `json:"check_out"`
		} `json:"conflict"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "agoda-555", body.Conflict.Key)
	assert.Equal(t, "203", body.Conflict.RoomNumber)
	assert.NotEmpty(t, body.Conflict.CheckIn)
	assert.NotEmpty(t, body.Conflict.CheckOut)

	// exhaustion case: no specific blocker
	c2, rec2 := testContext(t)
	require.NoError(t, conflictResponse(c2, nil))
	assert.Equal(t, http.StatusConflict, rec2.Code)
	assert.NotContains(t, rec2.Body.String(), "conflict\"")
}
