package booking

import (
	"github.com/iliyamo/hotel-property-management/internal/model"
)

// ConflictResult is the outcome of a conflict scan.  When Conflict is
// true, With points at the first blocking reservation found so callers
// can report its key and occupied range to the user, not just a
// boolean.
type ConflictResult struct {
	Conflict bool
	With     *model.Reservation
}

// DetectConflict decides whether the candidate reservation's interval
// overlaps any existing live reservation in targetRoomNumber.  The live
// slice should already be scoped to one hotel with cancelled rows
// filtered out; the detector defends anyway by re-filtering on room
// number, the candidate's own key, excludeKey and the cancelled flag.
// Iteration follows input order and the first conflict wins.
//
// Granularity pairing:
//   - day-use vs day-use: exact timestamps, strict half-open overlap;
//     one session ending exactly when the next begins is fine.
//   - stay vs stay: exact timestamps with same-day turnover allowed;
//     a checkout at another booking's check-in instant is not a
//     conflict.
//   - mixed: both intervals widen to the civil days they occupy (the
//     stay's checkout day stays free) and the day ranges are compared,
//     because a day-use session anywhere inside a stay's occupied days
//     must block the room for that whole day.
//
// An unparseable candidate date is a hard error wrapping
// ErrInvalidDate.  Unparseable dates on an existing row cause that row
// to be skipped: dirty historical data must not block new bookings,
// and must not fake a conflict either.
func DetectConflict(candidate model.Reservation, targetRoomNumber string, live []model.Reservation, excludeKey string) (ConflictResult, error) {
	cand, err := parseInterval(candidate.CheckIn, candidate.CheckOut)
	if err != nil {
		return ConflictResult{}, err
	}
	for i := range live {
		r := &live[i]
		if r.RoomNumber != targetRoomNumber {
			continue
		}
		if r.Key == candidate.Key || (excludeKey != "" && r.Key == excludeKey) {
			continue
		}
		if !r.Live() {
			continue
		}
		other, err := parseInterval(r.CheckIn, r.CheckOut)
		if err != nil {
			continue // skip dirty rows, never fatal
		}
		if intervalsConflict(cand, candidate.Type, other, r.Type) {
			return ConflictResult{Conflict: true, With: r}, nil
		}
	}
	return ConflictResult{}, nil
}

// intervalsConflict applies the granularity rule for one candidate /
// existing pair.
func intervalsConflict(cand Interval, candType string, other Interval, otherType string) bool {
	candDayUse := candType == model.TypeDayUse
	otherDayUse := otherType == model.TypeDayUse
	switch {
	case candDayUse && otherDayUse:
		return cand.Overlaps(other)
	case !candDayUse && !otherDayUse:
		return cand.Start.Before(other.End) &&
			cand.End.After(other.Start) &&
			!cand.Start.Equal(other.End)
	default:
		return dayRange(cand, candType).Overlaps(dayRange(other, otherType))
	}
}
