package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-property-management/internal/booking"
	"github.com/iliyamo/hotel-property-management/internal/model"
	"github.com/iliyamo/hotel-property-management/internal/queue"
	"github.com/iliyamo/hotel-property-management/internal/repository"
)

// OTAHandler ingests bookings collected from online travel agency
// back-offices.  Collectors re-submit whole pages, so the endpoint is
// idempotent: a booking whose key already exists is acknowledged, not
// re-created.
type OTAHandler struct {
	Reservations *repository.ReservationRepo
	Hotels       *repository.HotelRepo
	Res          *ReservationHandler
}

func NewOTAHandler(res *ReservationHandler) *OTAHandler {
	return &OTAHandler{Reservations: res.Reservations, Hotels: res.Hotels, Res: res}
}

type otaBookingReq struct {
	SiteName   string `json:"site_name"`
	ExternalNo string `json:"external_no"`
	RoomInfo   string `json:"room_info"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Type       string `json:"type"` // defaults to stay
	Price      int64  `json:"price"`
	// Per-night rate quoted by the OTA page; when present the total is
	// cross-checked against rate*nights with one unit of rounding slack.
	NightlyRate int64  `json:"nightly_rate"`
	GuestName   string `json:"guest_name"`
	GuestPhone  string `json:"guest_phone"`
	Memo        string `json:"memo"`
}

// Ingest handles POST /v1/hotels/:id/ota/bookings.
func (h *OTAHandler) Ingest(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	hotel, err := loadHotelForCaller(ctx, c, h.Hotels, false)
	if err != nil {
		return hotelAccessError(c, err)
	}

	var req otaBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.SiteName = strings.TrimSpace(req.SiteName)
	req.ExternalNo = strings.TrimSpace(req.ExternalNo)
	req.RoomInfo = strings.TrimSpace(req.RoomInfo)
	if req.SiteName == "" || req.ExternalNo == "" || req.RoomInfo == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "site_name, external_no and room_info required"})
	}
	if req.Type == "" {
		req.Type = model.TypeStay
	}
	if req.Type != model.TypeStay && req.Type != model.TypeDayUse {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type must be stay or dayUse"})
	}
	from, toExcl, err := booking.RequestWindow(req.CheckIn, req.CheckOut, req.Type)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	// OTA pages render totals with inconsistent rounding, so the
	// cross-check tolerates a difference of one currency unit.
	if req.NightlyRate > 0 && req.Type == model.TypeStay {
		nights := int64(toExcl.Sub(from).Hours() / 24)
		expected := req.NightlyRate * nights
		if diff := req.Price - expected; diff < -1 || diff > 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error":    fmt.Sprintf("price %d does not match %d nights at %d", req.Price, nights, req.NightlyRate),
				"expected": expected,
			})
		}
	}

	key := req.SiteName + "-" + req.ExternalNo
	if existing, err := h.Reservations.GetByKey(ctx, hotel.ID, key); err == nil {
		// already imported on a previous collector run
		return c.JSON(http.StatusOK, echo.Map{
			"imported":    false,
			"reservation": viewOf(existing),
		})
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	cand := model.Reservation{
		Key:        key,
		HotelID:    hotel.ID,
		RoomInfo:   req.RoomInfo,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Type:       req.Type,
		Price:      req.Price,
		SiteName:   req.SiteName,
		GuestName:  req.GuestName,
		GuestPhone: req.GuestPhone,
		Memo:       req.Memo,
	}

	status, with, err := h.Res.book(ctx, hotel.ID, &cand, from, toExcl)
	if err != nil {
		return err
	}
	switch status {
	case 0:
	case http.StatusConflict:
		// lost a key race to a concurrent collector run: idempotent ack
		if existing, gerr := h.Reservations.GetByKey(ctx, hotel.ID, key); gerr == nil {
			return c.JSON(http.StatusOK, echo.Map{
				"imported":    false,
				"reservation": viewOf(existing),
			})
		}
		return conflictResponse(c, with)
	default:
		return c.JSON(status, echo.Map{"error": bookErrMsg(status)})
	}

	publishEvent(queue.ActionCreated, cand)
	stored, err := h.Reservations.GetByKey(ctx, hotel.ID, key)
	if err != nil {
		stored = cand
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"imported":    true,
		"reservation": viewOf(stored),
	})
}
