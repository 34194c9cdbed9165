package model

import "time"

// RoomType is a commercial room category ("standard", "deluxe", ...)
// configured per hotel.  Stock is the commercial cap on simultaneous
// bookings of the type and is independent of how many physical
// containers carry the type; availability is computed against Stock,
// assignment against the containers.
//
// Fields:
//  ID          – primary key identifier.
//  HotelID     – owning hotel.
//  RoomInfo    – type key referenced by reservations and containers.
//  DisplayName – operator-facing name.
//  Price       – nightly (or per-session) rate in KRW.
//  Stock       – bookable rooms of this type per date.
type RoomType struct {
	ID          uint64    `json:"id"`           // room_types.id
	HotelID     uint64    `json:"hotel_id"`     // room_types.hotel_id
	RoomInfo    string    `json:"room_info"`    // room_types.room_info
	DisplayName string    `json:"display_name"` // room_types.display_name
	Price       int64     `json:"price"`        // room_types.price
	Stock       int       `json:"stock"`        // room_types.stock
	CreatedAt   time.Time `json:"created_at"`   // room_types.created_at
	UpdatedAt   time.Time `json:"updated_at"`   // room_types.updated_at
}
