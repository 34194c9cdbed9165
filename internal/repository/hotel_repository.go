package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-property-management/internal/model"
)

// HotelRepo provides access to hotels and their configuration: the
// physical room grid and the commercial room-type catalog.  The booking
// engine reads both as immutable snapshots; only ADMIN configuration
// endpoints write here.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo returns a new HotelRepo bound to the given database.
func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

// GetByID returns one hotel or ErrNotFound.
func (r *HotelRepo) GetByID(ctx context.Context, hotelID uint64) (model.Hotel, error) {
	const q = `SELECT id, owner_id, name, created_at, updated_at FROM hotels WHERE id=? LIMIT 1`
	var h model.Hotel
	err := r.db.QueryRowContext(ctx, q, hotelID).
		Scan(&h.ID, &h.OwnerID, &h.Name, &h.CreatedAt, &h.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Hotel{}, ErrNotFound
	}
	return h, err
}

// Create inserts a hotel owned by the given user and returns its ID.
func (r *HotelRepo) Create(ctx context.Context, ownerID uint64, name string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO hotels (owner_id, name) VALUES (?,?)`, ownerID, name)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetGrid loads the hotel's room grid.  Containers are stored flat with
// their floor level and position; rows come back ordered so the grid
// reconstructs deterministically.  A hotel with no containers yields an
// empty grid, which the booking engine treats as "no rooms available"
// rather than an error; a freshly onboarded hotel legitimately has no
// configuration yet.
func (r *HotelRepo) GetGrid(ctx context.Context, hotelID uint64) (model.Grid, error) {
	const q = `SELECT floor_level, container_id, room_info, room_number, is_active
		FROM containers WHERE hotel_id=? ORDER BY floor_level, position, container_id`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return model.Grid{}, err
	}
	defer rows.Close()
	var grid model.Grid
	for rows.Next() {
		var level int
		var c model.Container
		if err := rows.Scan(&level, &c.ContainerID, &c.RoomInfo, &c.RoomNumber, &c.IsActive); err != nil {
			return model.Grid{}, err
		}
		if n := len(grid.Floors); n == 0 || grid.Floors[n-1].Level != level {
			grid.Floors = append(grid.Floors, model.Floor{Level: level})
		}
		last := &grid.Floors[len(grid.Floors)-1]
		last.Containers = append(last.Containers, c)
	}
	return grid, rows.Err()
}

// ReplaceGrid atomically swaps the hotel's entire container layout for
// the supplied one.  Admin grid edits arrive as a full document, so a
// delete-and-reinsert inside one transaction keeps the stored shape in
// lockstep with what the admin saved.
func (r *HotelRepo) ReplaceGrid(ctx context.Context, hotelID uint64, grid model.Grid) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `DELETE FROM containers WHERE hotel_id=?`, hotelID); err != nil {
		return err
	}
	const ins = `INSERT INTO containers
		(hotel_id, floor_level, position, container_id, room_info, room_number, is_active)
		VALUES (?,?,?,?,?,?,?)`
	insert := func(level, pos int, c model.Container) error {
		_, err := tx.ExecContext(ctx, ins,
			hotelID, level, pos, c.ContainerID, c.RoomInfo, c.RoomNumber, c.IsActive)
		return err
	}
	if len(grid.Floors) > 0 {
		for _, f := range grid.Floors {
			for i, c := range f.Containers {
				if err := insert(f.Level, i, c); err != nil {
					return err
				}
			}
		}
	} else {
		// legacy flat payloads land on floor 0
		for i, c := range grid.Containers {
			if err := insert(0, i, c); err != nil {
				return err
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetRoomTypes returns the hotel's room-type catalog in stable order.
func (r *HotelRepo) GetRoomTypes(ctx context.Context, hotelID uint64) ([]model.RoomType, error) {
	const q = `SELECT id, hotel_id, room_info, display_name, price, stock, created_at, updated_at
		FROM room_types WHERE hotel_id=? ORDER BY room_info`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.RoomType, 0)
	for rows.Next() {
		var rt model.RoomType
		if err := rows.Scan(&rt.ID, &rt.HotelID, &rt.RoomInfo, &rt.DisplayName,
			&rt.Price, &rt.Stock, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

// GetRoomType returns one room type by its key, or ErrNotFound.
func (r *HotelRepo) GetRoomType(ctx context.Context, hotelID uint64, roomInfo string) (model.RoomType, error) {
	const q = `SELECT id, hotel_id, room_info, display_name, price, stock, created_at, updated_at
		FROM room_types WHERE hotel_id=? AND LOWER(room_info)=LOWER(?) LIMIT 1`
	var rt model.RoomType
	err := r.db.QueryRowContext(ctx, q, hotelID, roomInfo).
		Scan(&rt.ID, &rt.HotelID, &rt.RoomInfo, &rt.DisplayName,
			&rt.Price, &rt.Stock, &rt.CreatedAt, &rt.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.RoomType{}, ErrNotFound
	}
	return rt, err
}

// UpsertRoomType creates or updates a room type keyed by (hotel,
// room_info).
func (r *HotelRepo) UpsertRoomType(ctx context.Context, rt *model.RoomType) error {
	const q = `INSERT INTO room_types (hotel_id, room_info, display_name, price, stock)
		VALUES (?,?,?,?,?)
		ON DUPLICATE KEY UPDATE display_name=VALUES(display_name),
			price=VALUES(price), stock=VALUES(stock), updated_at=NOW()`
	_, err := r.db.ExecContext(ctx, q, rt.HotelID, rt.RoomInfo, rt.DisplayName, rt.Price, rt.Stock)
	return err
}

// DeleteRoomType removes a room type from the catalog.  Reservations
// referencing the key are untouched; they simply stop matching stock.
func (r *HotelRepo) DeleteRoomType(ctx context.Context, hotelID uint64, roomInfo string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM room_types WHERE hotel_id=? AND LOWER(room_info)=LOWER(?)`, hotelID, roomInfo)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
