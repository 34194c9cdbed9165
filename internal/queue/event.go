// Package queue defines message payloads exchanged over the message broker.
package queue

// Reservation event actions published to the reservation.events queue.
const (
	ActionCreated    = "created"
	ActionUpdated    = "updated"
	ActionReassigned = "reassigned"
	ActionCancelled  = "cancelled"
	ActionCheckedOut = "checkedOut"
)

// ReservationEvent is published whenever a reservation changes.  It is
// the real-time push feed: front-desk dashboards and downstream
// notifiers consume it to refresh their room boards without polling
// the primary database.
type ReservationEvent struct {
	Action     string `json:"action"`
	HotelID    uint64 `json:"hotel_id"`
	Key        string `json:"key"`
	RoomInfo   string `json:"room_info"`
	RoomNumber string `json:"room_number"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Type       string `json:"type"`
	SiteName   string `json:"site_name"`
	Price      int64  `json:"price"`
	OccurredAt string `json:"occurred_at"`
}
