package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-property-management/internal/booking"
	"github.com/iliyamo/hotel-property-management/internal/repository"
)

// AvailabilityHandler serves the date-by-date remaining-stock view the
// booking calendar renders.  The result is derived on every call from
// the live reservation set; the Redis response cache in front of the
// route absorbs repeat queries.
type AvailabilityHandler struct {
	Reservations *repository.ReservationRepo
	Hotels       *repository.HotelRepo
}

func NewAvailabilityHandler(res *repository.ReservationRepo, hotels *repository.HotelRepo) *AvailabilityHandler {
	return &AvailabilityHandler{Reservations: res, Hotels: hotels}
}

// Get handles GET /v1/hotels/:id/availability?from=2025-07-01&to=2025-07-31.
// `to` is inclusive the way calendar UIs send it; internally the range
// is [from, to+1day).  Omitted parameters default to a 30-day window
// starting today.
func (h *AvailabilityHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hotel, err := loadHotelForCaller(ctx, c, h.Hotels, false)
	if err != nil {
		return hotelAccessError(c, err)
	}

	now := time.Now().In(booking.KST)
	from := now
	if s := c.QueryParam("from"); s != "" {
		from, err = booking.ParseCheckTime(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid from date"})
		}
	}
	to := from.AddDate(0, 0, 29)
	if s := c.QueryParam("to"); s != "" {
		to, err = booking.ParseCheckTime(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid to date"})
		}
	}
	toExcl := to.AddDate(0, 0, 1)
	if !from.Before(toExcl) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must not precede from"})
	}
	if toExcl.Sub(from) > 370*24*time.Hour {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "range too large"})
	}

	live, err := h.Reservations.FindLive(ctx, hotel.ID, "")
	if err != nil {
		return err
	}
	types, err := h.Hotels.GetRoomTypes(ctx, hotel.ID)
	if err != nil {
		return err
	}

	av := booking.ComputeAvailability(live, types, from, toExcl)
	return c.JSON(http.StatusOK, echo.Map{
		"hotel_id":     hotel.ID,
		"availability": av,
	})
}
