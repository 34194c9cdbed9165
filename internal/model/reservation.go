package model

import "time"

// Reservation types as stored in the `type` column.  A stay occupies
// whole calendar days from the check-in day up to but excluding the
// checkout day.  A day-use session occupies an hour-precise interval
// inside a single day and the same room can turn over several times
// per day.
const (
	TypeStay   = "stay"
	TypeDayUse = "dayUse"
)

// Reservation records a booking for one room at one hotel.  It
// corresponds to a row in the `reservations` table.  All rows carry a
// hotel_id so that every query is scoped to a single tenant.
//
// The reservation key is an opaque, human-meaningful string that is
// immutable after creation: OTA bookings use "{siteName}-{externalNo}"
// and walk-ins use a generated "walkin-<uuid>" key.
//
// CheckIn and CheckOut are kept as the raw civil-time strings the
// booking sources deliver (always carrying an explicit UTC+9 offset or
// a legacy offset-less format).  They are normalized into timestamps
// only at the booking package's parse boundary; nothing else in the
// system does date math on the raw strings.
//
// Fields:
//  Key                – unique reservation key, immutable.
//  HotelID            – tenant scope; every query filters on it.
//  RoomInfo           – room-type key, compared case-insensitively.
//  RoomNumber         – concrete room; empty until assignment succeeds.
//  CheckIn, CheckOut  – civil-time strings; checkout is exclusive.
//  Type               – TypeStay or TypeDayUse.
//  IsCancelled        – cancelled rows never affect conflicts or stock.
//  ManuallyCheckedOut – the guest left early; the room is free for new
//                       assignments but the row stays in history.
//  Price              – total price in KRW.
//  SiteName           – booking source ("walkin" or an OTA name).
//  GuestName, GuestPhone, Memo – operator-facing details.
type Reservation struct {
	Key                string    // reservations.res_key
	HotelID            uint64    // reservations.hotel_id
	RoomInfo           string    // reservations.room_info
	RoomNumber         string    // reservations.room_number
	CheckIn            string    // reservations.check_in
	CheckOut           string    // reservations.check_out
	Type               string    // reservations.type
	IsCancelled        bool      // reservations.is_cancelled
	ManuallyCheckedOut bool      // reservations.manually_checked_out
	Price              int64     // reservations.price
	SiteName           string    // reservations.site_name
	GuestName          string    // reservations.guest_name
	GuestPhone         string    // reservations.guest_phone
	Memo               string    // reservations.memo
	CreatedAt          time.Time // reservations.created_at
	UpdatedAt          time.Time // reservations.updated_at
}

// Live reports whether the reservation still participates in conflict
// detection and availability counting.
func (r *Reservation) Live() bool { return !r.IsCancelled }

// OccupiesRoom reports whether the reservation still physically holds
// its room.  A manually-checked-out guest has left early: the row stays
// in history and keeps counting against stock, but room-level conflict
// scans must ignore it so the room can be resold.
func (r *Reservation) OccupiesRoom() bool { return !r.IsCancelled && !r.ManuallyCheckedOut }
