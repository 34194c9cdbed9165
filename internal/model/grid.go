package model

// Container is a physical, addressable room slot on a floor.  The
// container catalog is the only source of truth for "is this room
// number valid / usable".  Containers are configured by hotel admins
// and read-only from the booking engine's perspective.
//
// Fields:
//  ContainerID – stable identifier within the hotel grid.
//  RoomInfo    – room-type key; compared case-insensitively.
//  RoomNumber  – physical room identifier, unique within the hotel.
//  IsActive    – inactive containers never receive assignments.
type Container struct {
	ContainerID string `json:"container_id"` // containers.container_id
	RoomInfo    string `json:"room_info"`    // containers.room_info
	RoomNumber  string `json:"room_number"`  // containers.room_number
	IsActive    bool   `json:"is_active"`    // containers.is_active
}

// Floor groups an ordered list of containers under a numeric level.
type Floor struct {
	Level      int         `json:"level"`      // containers.floor_level
	Containers []Container `json:"containers"` // ordered containers on this floor
}

// Grid is a hotel's physical room layout.  Current data stores rooms
// nested under Floors; grids imported from the legacy configuration
// format carry a flat Containers list instead.  Consumers must handle
// either shape.
type Grid struct {
	Floors     []Floor     `json:"floors"`
	Containers []Container `json:"containers,omitempty"` // legacy flat shape, used when Floors is empty
}
