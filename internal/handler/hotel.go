package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-property-management/internal/model"
	"github.com/iliyamo/hotel-property-management/internal/repository"
)

// HotelHandler covers tenant onboarding and configuration: the room
// grid and the room-type catalog.  All writes are owner-admin only.
type HotelHandler struct {
	Hotels *repository.HotelRepo
}

func NewHotelHandler(hotels *repository.HotelRepo) *HotelHandler {
	return &HotelHandler{Hotels: hotels}
}

type createHotelReq struct {
	Name string `json:"name"`
}

// Create handles POST /v1/hotels.  The calling admin becomes the owner.
func (h *HotelHandler) Create(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createHotelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	id, err := h.Hotels.Create(ctx, uid, req.Name)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create hotel failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "name": req.Name, "owner_id": uid})
}

// Get handles GET /v1/hotels/:id.
func (h *HotelHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hotel, err := loadHotelForCaller(ctx, c, h.Hotels, false)
	if err != nil {
		return hotelAccessError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":       hotel.ID,
		"name":     hotel.Name,
		"owner_id": hotel.OwnerID,
	})
}

// GetGrid handles GET /v1/hotels/:id/grid.  Staff read it to render
// the room board; only the owner may change it.
func (h *HotelHandler) GetGrid(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hotel, err := loadHotelForCaller(ctx, c, h.Hotels, false)
	if err != nil {
		return hotelAccessError(c, err)
	}
	grid, err := h.Hotels.GetGrid(ctx, hotel.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, grid)
}

// PutGrid handles PUT /v1/hotels/:id/grid, replacing the whole layout.
// Grid edits happen rarely (renovations, adding a floor) and always as
// a full save from the admin layout editor, so replace semantics keep
// the persistence simple.
func (h *HotelHandler) PutGrid(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	hotel, err := loadHotelForCaller(ctx, c, h.Hotels, true)
	if err != nil {
		return hotelAccessError(c, err)
	}
	var grid model.Grid
	if err := c.Bind(&grid); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	seen := map[string]bool{}
	for _, f := range grid.Floors {
		for _, cont := range f.Containers {
			num := strings.TrimSpace(cont.RoomNumber)
			if num == "" {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "container missing room_number"})
			}
			if seen[num] {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "duplicate room_number " + num})
			}
			seen[num] = true
		}
	}
	if err := h.Hotels.ReplaceGrid(ctx, hotel.ID, grid); err != nil {
		return err
	}
	saved, err := h.Hotels.GetGrid(ctx, hotel.ID)
	if err != nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, saved)
}

type roomTypeReq struct {
	RoomInfo    string `json:"room_info"`
	DisplayName string `json:"display_name"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
}

// ListRoomTypes handles GET /v1/hotels/:id/room-types.
func (h *HotelHandler) ListRoomTypes(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hotel, err := loadHotelForCaller(ctx, c, h.Hotels, false)
	if err != nil {
		return hotelAccessError(c, err)
	}
	types, err := h.Hotels.GetRoomTypes(ctx, hotel.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"room_types": types})
}

// UpsertRoomType handles PUT /v1/hotels/:id/room-types.
func (h *HotelHandler) UpsertRoomType(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hotel, err := loadHotelForCaller(ctx, c, h.Hotels, true)
	if err != nil {
		return hotelAccessError(c, err)
	}
	var req roomTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.RoomInfo = strings.TrimSpace(req.RoomInfo)
	if req.RoomInfo == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_info required"})
	}
	if req.Stock < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "stock must not be negative"})
	}
	rt := model.RoomType{
		HotelID:     hotel.ID,
		RoomInfo:    req.RoomInfo,
		DisplayName: req.DisplayName,
		Price:       req.Price,
		Stock:       req.Stock,
	}
	if err := h.Hotels.UpsertRoomType(ctx, &rt); err != nil {
		return err
	}
	saved, err := h.Hotels.GetRoomType(ctx, hotel.ID, req.RoomInfo)
	if err != nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, saved)
}

// DeleteRoomType handles DELETE /v1/hotels/:id/room-types/:roomInfo.
func (h *HotelHandler) DeleteRoomType(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hotel, err := loadHotelForCaller(ctx, c, h.Hotels, true)
	if err != nil {
		return hotelAccessError(c, err)
	}
	roomInfo := c.Param("roomInfo")
	if err := h.Hotels.DeleteRoomType(ctx, hotel.ID, roomInfo); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
