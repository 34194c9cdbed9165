package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/hotel-property-management/internal/model"
)

// Remain is the computed rooms-available figure for one date and room
// type.  Negative values are deliberate: they signal overbooking and
// must be surfaced, never clamped away.
type Remain struct {
	Remain int `json:"remain"`
}

// AvailabilityByDate maps "yyyy-MM-dd" date keys to lowercased
// room-type keys to the remaining stock for that pairing.  It is
// derived data: recomputed on every query, never persisted.
type AvailabilityByDate map[string]map[string]Remain

// occupancy is a reservation pre-resolved to the civil days it blocks.
type occupancy struct {
	roomInfo string
	days     Interval
}

// ComputeAvailability counts, for every date in [from, toExcl) and
// every supplied room type, how many live reservations of that type
// occupy the date, and returns stock minus that count.  Occupancy uses
// the same granularity rules as conflict detection: a stay blocks every
// day from check-in day up to but excluding the checkout day; a day-use
// session blocks each civil day its interval touches.  Rows with
// unparseable dates are skipped.  from and toExcl are truncated to KST
// day starts.
func ComputeAvailability(live []model.Reservation, roomTypes []model.RoomType, from, toExcl time.Time) AvailabilityByDate {
	from = dayStart(from)
	toExcl = dayStart(toExcl)

	occ := make([]occupancy, 0, len(live))
	for _, r := range live {
		if !r.Live() {
			continue
		}
		iv, err := parseInterval(r.CheckIn, r.CheckOut)
		if err != nil {
			continue
		}
		occ = append(occ, occupancy{roomInfo: r.RoomInfo, days: dayRange(iv, r.Type)})
	}

	out := make(AvailabilityByDate)
	for d := from; d.Before(toExcl); d = d.AddDate(0, 0, 1) {
		dateKey := d.Format("2006-01-02")
		byType := make(map[string]Remain, len(roomTypes))
		for _, rt := range roomTypes {
			count := 0
			for _, o := range occ {
				if !strings.EqualFold(o.roomInfo, rt.RoomInfo) {
					continue
				}
				if !d.Before(o.days.Start) && d.Before(o.days.End) {
					count++
				}
			}
			byType[strings.ToLower(rt.RoomInfo)] = Remain{Remain: rt.Stock - count}
		}
		out[dateKey] = byType
	}
	return out
}

// RequestWindow parses a candidate's check-in/out strings and returns
// the half-open civil-day window it occupies under the granularity rule
// for its type.  It is the bridge between an incoming booking request
// and the date-keyed availability map.
func RequestWindow(checkIn, checkOut, typ string) (time.Time, time.Time, error) {
	iv, err := parseInterval(checkIn, checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !iv.Start.Before(iv.End) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: check-out not after check-in", ErrInvalidDate)
	}
	d := dayRange(iv, typ)
	// A stay whose check-in and checkout fall on the same civil day
	// still occupies that one day.
	if !d.Start.Before(d.End) {
		d.End = d.Start.AddDate(0, 0, 1)
	}
	return d.Start, d.End, nil
}

// MinRemain answers the per-request capacity question "is there at
// least one room of this type free on every day of my range" by taking
// the minimum remain across [from, toExcl).  Dates absent from the map
// fall back to the supplied stock baseline, which keeps the answer
// consistent with whatever room-type snapshot produced av even if
// stock has since been edited.
func MinRemain(av AvailabilityByDate, roomInfo string, from, toExcl time.Time, stock int) int {
	key := strings.ToLower(roomInfo)
	min := stock
	first := true
	for d := dayStart(from); d.Before(dayStart(toExcl)); d = d.AddDate(0, 0, 1) {
		remain := stock
		if byType, ok := av[d.Format("2006-01-02")]; ok {
			if r, ok := byType[key]; ok {
				remain = r.Remain
			}
		}
		if first || remain < min {
			min = remain
			first = false
		}
	}
	return min
}
