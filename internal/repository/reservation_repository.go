package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/hotel-property-management/internal/model"
)

// ReservationRepo provides CRUD operations for reservations.  Every
// query is scoped by hotel_id: the schema is one shared table with a
// mandatory tenant column, so cross-tenant leaks are a WHERE clause
// away from impossible rather than a naming convention.  Check-in/out
// are stored as the raw civil-time strings delivered by the booking
// source; the booking package owns their interpretation.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationCols = `res_key, hotel_id, room_info, room_number, check_in, check_out,
	type, is_cancelled, manually_checked_out, price, site_name, guest_name, guest_phone, memo,
	created_at, updated_at`

// scanReservation reads one row in reservationCols order.
func scanReservation(row interface{ Scan(...any) error }) (model.Reservation, error) {
	var res model.Reservation
	err := row.Scan(
		&res.Key, &res.HotelID, &res.RoomInfo, &res.RoomNumber, &res.CheckIn, &res.CheckOut,
		&res.Type, &res.IsCancelled, &res.ManuallyCheckedOut, &res.Price,
		&res.SiteName, &res.GuestName, &res.GuestPhone, &res.Memo,
		&res.CreatedAt, &res.UpdatedAt,
	)
	return res, err
}

// Create inserts a new reservation.  The key must be unique per hotel;
// a duplicate insert returns ErrDuplicateKey so OTA ingestion can treat
// re-scraped bookings idempotently.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations
		(res_key, hotel_id, room_info, room_number, check_in, check_out,
		 type, is_cancelled, manually_checked_out, price, site_name, guest_name, guest_phone, memo)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	_, err := r.db.ExecContext(ctx, q,
		res.Key, res.HotelID, res.RoomInfo, res.RoomNumber, res.CheckIn, res.CheckOut,
		res.Type, res.IsCancelled, res.ManuallyCheckedOut, res.Price,
		res.SiteName, res.GuestName, res.GuestPhone, res.Memo,
	)
	if err != nil {
		// MySQL duplicate-entry code; same detection the user repo uses
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

// GetByKey returns one reservation for the hotel, or ErrNotFound.
func (r *ReservationRepo) GetByKey(ctx context.Context, hotelID uint64, key string) (model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE hotel_id=? AND res_key=? LIMIT 1`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, hotelID, key))
	if err == sql.ErrNoRows {
		return model.Reservation{}, ErrNotFound
	}
	return res, err
}

// FindLive returns the hotel's non-cancelled reservations, optionally
// restricted to one room number, ordered by creation so conflict scans
// see a deterministic sequence.  This is the snapshot the booking
// engine's conflict and availability functions operate on; callers
// fetch it immediately before checking.
func (r *ReservationRepo) FindLive(ctx context.Context, hotelID uint64, roomNumber string) ([]model.Reservation, error) {
	q := `SELECT ` + reservationCols + ` FROM reservations WHERE hotel_id=? AND is_cancelled=0`
	args := []any{hotelID}
	if roomNumber != "" {
		q += ` AND room_number=?`
		args = append(args, roomNumber)
	}
	q += ` ORDER BY created_at, res_key`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Update rewrites the mutable fields of a reservation identified by its
// immutable key.  Returns ErrNotFound when no row matched.
func (r *ReservationRepo) Update(ctx context.Context, res *model.Reservation) error {
	const q = `UPDATE reservations SET room_info=?, room_number=?, check_in=?, check_out=?,
		type=?, price=?, guest_name=?, guest_phone=?, memo=?, updated_at=NOW()
		WHERE hotel_id=? AND res_key=?`
	result, err := r.db.ExecContext(ctx, q,
		res.RoomInfo, res.RoomNumber, res.CheckIn, res.CheckOut,
		res.Type, res.Price, res.GuestName, res.GuestPhone, res.Memo,
		res.HotelID, res.Key,
	)
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

// ReassignRoom moves a reservation to a new room with a compare-and-swap
// on the current room number.  If another writer already moved the row,
// zero rows match and ErrConflict is returned.  Together with the
// per-room lock this is the write-time guard backing the no-overlap
// invariant; the conflict detector alone is best-effort under true
// concurrency.
func (r *ReservationRepo) ReassignRoom(ctx context.Context, hotelID uint64, key, fromRoom, toRoom string) error {
	const q = `UPDATE reservations SET room_number=?, updated_at=NOW()
		WHERE hotel_id=? AND res_key=? AND room_number=? AND is_cancelled=0`
	result, err := r.db.ExecContext(ctx, q, toRoom, hotelID, key, fromRoom)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

// Cancel marks a reservation cancelled.  Cancelled rows stay in history
// but stop participating in conflicts and availability immediately.
func (r *ReservationRepo) Cancel(ctx context.Context, hotelID uint64, key string) error {
	const q = `UPDATE reservations SET is_cancelled=1, updated_at=NOW()
		WHERE hotel_id=? AND res_key=? AND is_cancelled=0`
	result, err := r.db.ExecContext(ctx, q, hotelID, key)
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

// SetManualCheckout flags a reservation as vacated early.  The row
// keeps blocking commercial stock for its nights but releases its room
// for new assignments.
func (r *ReservationRepo) SetManualCheckout(ctx context.Context, hotelID uint64, key string, checkedOut bool) error {
	const q = `UPDATE reservations SET manually_checked_out=?, updated_at=NOW()
		WHERE hotel_id=? AND res_key=?`
	result, err := r.db.ExecContext(ctx, q, checkedOut, hotelID, key)
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

// ListByHotel returns all reservations for a hotel, newest first,
// including cancelled ones; the front desk needs the full history view.
func (r *ReservationRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations
		WHERE hotel_id=? ORDER BY created_at DESC, res_key`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
