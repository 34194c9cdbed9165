// Package booking implements the room-inventory conflict-detection and
// availability-calculation engine.  Everything in this package is a pure
// computation over an already-fetched snapshot of reservations: callers
// load the snapshot from the repository layer immediately before
// invoking these functions and persist results afterwards.  The package
// performs no I/O of its own.
package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/hotel-property-management/internal/model"
)

// KST is the fixed civil-time offset all reservation times are
// normalized to.  Booking sources deliver check-in/out with an explicit
// +09:00 offset; legacy rows may lack one, in which case the string is
// interpreted as KST wall-clock time.
var KST = time.FixedZone("KST", 9*60*60)

// ErrInvalidDate is returned when a candidate reservation's own
// check-in or check-out string cannot be parsed.  Handlers translate it
// into a 400 and abort the write.  Unparseable dates on existing rows
// are never fatal; those rows are skipped during scans instead.
var ErrInvalidDate = errors.New("invalid reservation date")

// checkTimeLayouts are tried in order by ParseCheckTime.  The first two
// carry an explicit offset; the rest are legacy formats assumed to be
// KST wall-clock.
var checkTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseCheckTime is the single parse boundary between raw check-in/out
// strings and the timestamp math in this package.  It accepts RFC3339
// and the legacy formats above and returns the instant normalized to
// KST.  An empty or unrecognized string yields an error wrapping
// ErrInvalidDate.
func ParseCheckTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	for _, layout := range checkTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, KST); err == nil {
			return t.In(KST), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// Interval is a half-open occupancy span [Start, End) in KST.
type Interval struct {
	Start time.Time
	End   time.Time
}

// parseInterval parses a reservation's check-in/out pair into an
// Interval.  Both endpoints must parse; callers decide whether a
// failure is fatal (candidate) or skippable (existing row).
func parseInterval(checkIn, checkOut string) (Interval, error) {
	start, err := ParseCheckTime(checkIn)
	if err != nil {
		return Interval{}, err
	}
	end, err := ParseCheckTime(checkOut)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps reports strict half-open overlap: touching endpoints are not
// an overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// dayStart truncates t to the start of its civil day in KST.
func dayStart(t time.Time) time.Time {
	t = t.In(KST)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, KST)
}

// dayCeil rounds t up to the next day start unless it already sits
// exactly on a day boundary.
func dayCeil(t time.Time) time.Time {
	d := dayStart(t)
	if d.Equal(t.In(KST)) {
		return d
	}
	return d.AddDate(0, 0, 1)
}

// dayRange converts an interval into the half-open range of civil days
// it occupies, applying the granularity rule for the reservation type.
// A stay occupies [check-in day, checkout day): the checkout day is
// free, even when checkout is mid-morning.  A day-use session occupies
// every day its interval touches, so a session spanning midnight blocks
// both days.
func dayRange(iv Interval, typ string) Interval {
	if typ == model.TypeDayUse {
		return Interval{Start: dayStart(iv.Start), End: dayCeil(iv.End)}
	}
	return Interval{Start: dayStart(iv.Start), End: dayStart(iv.End)}
}
