package handler // handler defines http handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-property-management/internal/model"
	"github.com/iliyamo/hotel-property-management/internal/repository"
)

// getUserID extracts the user_id from echo.Context and converts it to
// uint64.  JWT numeric claims decode as float64, so several shapes are
// accepted.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// hotelIDParam parses the :id path parameter as a hotel identifier.
func hotelIDParam(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid hotel id")
	}
	return id, nil
}

// loadHotelForCaller resolves :id and checks access.  ADMIN callers
// must own the hotel; STAFF accounts operate on any hotel they front
// for (staff accounts are provisioned per property by the admin, the
// system does not model a separate membership table).  When needOwner
// is set only the owning admin passes, which protects grid and
// room-type configuration.
func loadHotelForCaller(ctx context.Context, c echo.Context, hotels *repository.HotelRepo, needOwner bool) (model.Hotel, error) {
	hotelID, err := hotelIDParam(c)
	if err != nil {
		return model.Hotel{}, err
	}
	hotel, err := hotels.GetByID(ctx, hotelID)
	if err != nil {
		return model.Hotel{}, err
	}
	role, _ := c.Get("role").(string)
	uid, err := getUserID(c)
	if err != nil {
		return model.Hotel{}, repository.ErrForbidden
	}
	if role == "ADMIN" {
		if hotel.OwnerID != uid {
			return model.Hotel{}, repository.ErrForbidden
		}
		return hotel, nil
	}
	if needOwner {
		return model.Hotel{}, repository.ErrForbidden
	}
	return hotel, nil
}
