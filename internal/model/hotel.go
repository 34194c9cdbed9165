package model

import "time"

// Hotel represents one tenant of the property-management system.
// All reservations, room types and grid rows reference a hotel by ID.
//
// Fields:
//  ID        – primary key identifier.
//  OwnerID   – user ID of the hotel's admin account.
//  Name      – unique hotel name per owner.
//  CreatedAt – timestamp when the hotel was onboarded.
//  UpdatedAt – timestamp of last update.
type Hotel struct {
	ID        uint64    // hotels.id
	OwnerID   uint64    // hotels.owner_id
	Name      string    // hotels.name
	CreatedAt time.Time // hotels.created_at
	UpdatedAt time.Time // hotels.updated_at
}
