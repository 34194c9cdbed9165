package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-property-management/internal/booking"
	"github.com/iliyamo/hotel-property-management/internal/model"
	"github.com/iliyamo/hotel-property-management/internal/queue"
	"github.com/iliyamo/hotel-property-management/internal/repository"
	queue_publisher "github.com/iliyamo/hotel-property-management/internal/service"
)

// ReservationHandler owns the front-desk booking endpoints.  Every
// write follows the same shape: snapshot from the repository, decide in
// the booking package, lock the target room, re-check against a fresh
// snapshot, persist.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Hotels       *repository.HotelRepo
	Locker       *booking.RoomLocker
}

func NewReservationHandler(res *repository.ReservationRepo, hotels *repository.HotelRepo, locker *booking.RoomLocker) *ReservationHandler {
	return &ReservationHandler{Reservations: res, Hotels: hotels, Locker: locker}
}

type createReservationReq struct {
	RoomInfo   string `json:"room_info"`
	RoomNumber string `json:"room_number"` // optional preset; skips auto-assignment
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Type       string `json:"type"` // stay | dayUse
	Price      int64  `json:"price"`
	SiteName   string `json:"site_name"`
	GuestName  string `json:"guest_name"`
	GuestPhone string `json:"guest_phone"`
	Memo       string `json:"memo"`
}

type patchReservationReq struct {
	RoomNumber *string `json:"room_number"`
	CheckIn    *string `json:"check_in"`
	CheckOut   *string `json:"check_out"`
	Type       *string `json:"type"`
	Price      *int64  `json:"price"`
	GuestName  *string `json:"guest_name"`
	GuestPhone *string `json:"guest_phone"`
	Memo       *string `json:"memo"`
}

// reservationView is the JSON shape returned for a reservation.
type reservationView struct {
	Key                string `json:"key"`
	HotelID            uint64 `json:"hotel_id"`
	RoomInfo           string `json:"room_info"`
	RoomNumber         string `json:"room_number"`
	CheckIn            string `json:"check_in"`
	CheckOut           string `json:"check_out"`
	Type               string `json:"type"`
	IsCancelled        bool   `json:"is_cancelled"`
	ManuallyCheckedOut bool   `json:"manually_checked_out"`
	Price              int64  `json:"price"`
	SiteName           string `json:"site_name"`
	GuestName          string `json:"guest_name"`
	GuestPhone         string `json:"guest_phone"`
	Memo               string `json:"memo"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
}

func viewOf(r model.Reservation) reservationView {
	return reservationView{
		Key:                r.Key,
		HotelID:            r.HotelID,
		RoomInfo:           r.RoomInfo,
		RoomNumber:         r.RoomNumber,
		CheckIn:            r.CheckIn,
		CheckOut:           r.CheckOut,
		Type:               r.Type,
		IsCancelled:        r.IsCancelled,
		ManuallyCheckedOut: r.ManuallyCheckedOut,
		Price:              r.Price,
		SiteName:           r.SiteName,
		GuestName:          r.GuestName,
		GuestPhone:         r.GuestPhone,
		Memo:               r.Memo,
		CreatedAt:          r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:          r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// conflictResponse renders the 409 payload for a blocked write,
// including the blocking reservation's key and occupied range so the
// front desk can see exactly what is in the way.
func conflictResponse(c echo.Context, with *model.Reservation) error {
	payload := echo.Map{"error": "room occupied for the requested range"}
	if with != nil {
		payload["conflict"] = echo.Map{
			"key":         with.Key,
			"room_number": with.RoomNumber,
			"check_in":    with.CheckIn,
			"check_out":   with.CheckOut,
			"type":        with.Type,
		}
	}
	return c.JSON(http.StatusConflict, payload)
}

func hotelAccessError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
}

func publishEvent(action string, r model.Reservation) {
	ev := queue.ReservationEvent{
		Action:     action,
		HotelID:    r.HotelID,
		Key:        r.Key,
		RoomInfo:   r.RoomInfo,
		RoomNumber: r.RoomNumber,
		CheckIn:    r.CheckIn,
		CheckOut:   r.CheckOut,
		Type:       r.Type,
		SiteName:   r.SiteName,
		Price:      r.Price,
	}
	if err := queue_publisher.PublishReservationEvent(context.Background(), ev); err != nil {
		log.Printf("[QUEUE] publish %s for %s failed: %v", action, r.Key, err)
	}
}

// Create handles POST /v1/hotels/:id/reservations.  A walk-in booking
// gets a generated key and runs the full pipeline: capacity check for
// stays, room auto-assignment, then a final conflict check under the
// room lock before the insert.
func (h *ReservationHandler) Create(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	hotel, err := loadHotelForCaller(ctx, c, h.Hotels, false)
	if err != nil {
		return hotelAccessError(c, err)
	}

	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.RoomInfo = strings.TrimSpace(req.RoomInfo)
	if req.RoomInfo == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_info required"})
	}
	if req.Type != model.TypeStay && req.Type != model.TypeDayUse {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type must be stay or dayUse"})
	}
	from, toExcl, err := booking.RequestWindow(req.CheckIn, req.CheckOut, req.Type)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	siteName := strings.TrimSpace(req.SiteName)
	if siteName == "" {
		siteName = "walkin"
	}
	cand := model.Reservation{
		Key:        "walkin-" + uuid.NewString(),
		HotelID:    hotel.ID,
		RoomInfo:   req.RoomInfo,
		RoomNumber: strings.TrimSpace(req.RoomNumber),
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Type:       req.Type,
		Price:      req.Price,
		SiteName:   siteName,
		GuestName:  req.GuestName,
		GuestPhone: req.GuestPhone,
		Memo:       req.Memo,
	}

	status, v, err := h.book(ctx, hotel.ID, &cand, from, toExcl)
	if err != nil {
		return err
	}
	if status == http.StatusConflict {
		return conflictResponse(c, v)
	}
	if status != 0 {
		return c.JSON(status, echo.Map{"error": bookErrMsg(status)})
	}
	publishEvent(queue.ActionCreated, cand)
	// re-read so created_at/updated_at come back populated
	stored, err := h.Reservations.GetByKey(ctx, hotel.ID, cand.Key)
	if err != nil {
		stored = cand
	}
	return c.JSON(http.StatusCreated, viewOf(stored))
}

func bookErrMsg(status int) string {
	switch status {
	case http.StatusUnprocessableEntity:
		return "no stock remaining for the requested range"
	case http.StatusNotFound:
		return "unknown room type"
	default:
		return "booking failed"
	}
}

// book runs the capacity check, auto-assignment, lock, final conflict
// check and insert for a fully built candidate.  It returns a non-zero
// HTTP status when the booking is rejected; on 409 the second return
// value is the blocking reservation.  The OTA ingestion path shares it.
func (h *ReservationHandler) book(ctx context.Context, hotelID uint64, cand *model.Reservation, from, toExcl time.Time) (int, *model.Reservation, error) {
	rt, err := h.Hotels.GetRoomType(ctx, hotelID, cand.RoomInfo)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return http.StatusNotFound, nil, nil
		}
		return 0, nil, err
	}

	live, err := h.Reservations.FindLive(ctx, hotelID, "")
	if err != nil {
		return 0, nil, err
	}

	// Stays consume commercial stock; check the whole range before
	// touching the grid.  Day-use sessions only need a physical room.
	if cand.Type == model.TypeStay {
		types, err := h.Hotels.GetRoomTypes(ctx, hotelID)
		if err != nil {
			return 0, nil, err
		}
		av := booking.ComputeAvailability(live, types, from, toExcl)
		if booking.MinRemain(av, cand.RoomInfo, from, toExcl, rt.Stock) < 1 {
			return http.StatusUnprocessableEntity, nil, nil
		}
	}

	grid, err := h.Hotels.GetGrid(ctx, hotelID)
	if err != nil {
		return 0, nil, err
	}
	room, err := booking.AssignRoom(*cand, grid, live)
	if err != nil {
		return 0, nil, err
	}
	if room == "" {
		// no physical room free: surface as a conflict without a
		// specific blocker
		return http.StatusConflict, nil, nil
	}
	cand.RoomNumber = room

	unlock := h.Locker.Lock(hotelID, room)
	defer unlock()

	// Authoritative re-check against a fresh per-room snapshot taken
	// under the lock, narrowed to rows that still hold the room so a
	// manual checkout the assigner honored is honored here too.
	fresh, err := h.Reservations.FindLive(ctx, hotelID, room)
	if err != nil {
		return 0, nil, err
	}
	result, err := booking.DetectConflict(*cand, room, booking.RoomOccupants(fresh), "")
	if err != nil {
		return 0, nil, err
	}
	if result.Conflict {
		return http.StatusConflict, result.With, nil
	}
	if err := h.Reservations.Create(ctx, cand); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return http.StatusConflict, nil, nil
		}
		return 0, nil, err
	}
	return 0, nil, nil
}

// Patch handles PATCH /v1/hotels/:id/reservations/:key.  Drag
// operations on the room board arrive here as a room_number or date
// change; the reservation's own key is excluded from conflict scans so
// it never blocks itself, and room moves go through the
// compare-and-swap update.
func (h *ReservationHandler) Patch(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	hotel, err := loadHotelForCaller(ctx, c, h.Hotels, false)
	if err != nil {
		return hotelAccessError(c, err)
	}
	key := c.Param("key")
	existing, err := h.Reservations.GetByKey(ctx, hotel.ID, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return err
	}
	if existing.IsCancelled {
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is cancelled"})
	}

	var req patchReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	updated := existing
	if req.CheckIn != nil {
		updated.CheckIn = *req.CheckIn
	}
	if req.CheckOut != nil {
		updated.CheckOut = *req.CheckOut
	}
	if req.Type != nil {
		if *req.Type != model.TypeStay && *req.Type != model.TypeDayUse {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "type must be stay or dayUse"})
		}
		updated.Type = *req.Type
	}
	if req.Price != nil {
		updated.Price = *req.Price
	}
	if req.GuestName != nil {
		updated.GuestName = *req.GuestName
	}
	if req.GuestPhone != nil {
		updated.GuestPhone = *req.GuestPhone
	}
	if req.Memo != nil {
		updated.Memo = *req.Memo
	}
	targetRoom := existing.RoomNumber
	if req.RoomNumber != nil && strings.TrimSpace(*req.RoomNumber) != "" {
		targetRoom = strings.TrimSpace(*req.RoomNumber)
	}
	if targetRoom == "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "reservation has no room; include room_number"})
	}
	updated.RoomNumber = targetRoom

	if _, _, err := booking.RequestWindow(updated.CheckIn, updated.CheckOut, updated.Type); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	unlock := h.Locker.Lock(hotel.ID, targetRoom)
	defer unlock()

	fresh, err := h.Reservations.FindLive(ctx, hotel.ID, targetRoom)
	if err != nil {
		return err
	}
	result, err := booking.DetectConflict(updated, targetRoom, booking.RoomOccupants(fresh), existing.Key)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if result.Conflict {
		return conflictResponse(c, result.With)
	}

	moved := targetRoom != existing.RoomNumber
	if moved {
		if err := h.Reservations.ReassignRoom(ctx, hotel.ID, existing.Key, existing.RoomNumber, targetRoom); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return conflictResponse(c, nil)
			}
			return err
		}
	}
	if err := h.Reservations.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return err
	}

	action := queue.ActionUpdated
	if moved {
		action = queue.ActionReassigned
	}
	publishEvent(action, updated)

	stored, err := h.Reservations.GetByKey(ctx, hotel.ID, key)
	if err != nil {
		stored = updated
	}
	return c.JSON(http.StatusOK, viewOf(stored))
}

// Checkout handles POST /v1/hotels/:id/reservations/:key/checkout.
// The room frees up for new assignments immediately; the stay keeps
// counting against stock for its booked nights.
func (h *ReservationHandler) Checkout(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hotel, err := loadHotelForCaller(ctx, c, h.Hotels, false)
	if err != nil {
		return hotelAccessError(c, err)
	}
	key := c.Param("key")
	if err := h.Reservations.SetManualCheckout(ctx, hotel.ID, key, true); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return err
	}
	stored, err := h.Reservations.GetByKey(ctx, hotel.ID, key)
	if err == nil {
		publishEvent(queue.ActionCheckedOut, stored)
		return c.JSON(http.StatusOK, viewOf(stored))
	}
	return c.NoContent(http.StatusOK)
}

// Cancel handles DELETE /v1/hotels/:id/reservations/:key.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hotel, err := loadHotelForCaller(ctx, c, h.Hotels, false)
	if err != nil {
		return hotelAccessError(c, err)
	}
	key := c.Param("key")
	existing, err := h.Reservations.GetByKey(ctx, hotel.ID, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return err
	}
	if err := h.Reservations.Cancel(ctx, hotel.ID, key); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// already cancelled
			return c.NoContent(http.StatusNoContent)
		}
		return err
	}
	existing.IsCancelled = true
	publishEvent(queue.ActionCancelled, existing)
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/hotels/:id/reservations, returning the full
// history including cancelled rows.
func (h *ReservationHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hotel, err := loadHotelForCaller(ctx, c, h.Hotels, false)
	if err != nil {
		return hotelAccessError(c, err)
	}
	rows, err := h.Reservations.ListByHotel(ctx, hotel.ID)
	if err != nil {
		return err
	}
	views := make([]reservationView, 0, len(rows))
	for _, r := range rows {
		views = append(views, viewOf(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": views})
}
