package booking

import (
	"sort"
	"strings"

	"github.com/iliyamo/hotel-property-management/internal/model"
)

// ActiveContainersOfType returns every active container whose room-type
// key matches roomTypeKey (case-insensitive), sorted by room number
// using a numeric-aware comparison so "9" sorts before "10".  Floors
// are flattened in order; grids in the legacy flat shape are read from
// the Containers list instead.  A hotel with no grid configured yields
// an empty slice: callers treat that as "no rooms available", not an
// error.
func ActiveContainersOfType(grid model.Grid, roomTypeKey string) []model.Container {
	var all []model.Container
	if len(grid.Floors) > 0 {
		for _, f := range grid.Floors {
			all = append(all, f.Containers...)
		}
	} else {
		all = grid.Containers
	}
	out := make([]model.Container, 0, len(all))
	for _, c := range all {
		if !c.IsActive {
			continue
		}
		if !strings.EqualFold(c.RoomInfo, roomTypeKey) {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return naturalLess(out[i].RoomNumber, out[j].RoomNumber)
	})
	return out
}

// naturalLess compares two strings treating runs of digits as numbers,
// so "B2" < "B10" and "9" < "10".  Leading zeros break ties by string
// length to keep the ordering total and deterministic.
func naturalLess(a, b string) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			// compare the full digit runs numerically
			ia, ja := i, j
			for ia < len(a) && isDigit(a[ia]) {
				ia++
			}
			for ja < len(b) && isDigit(b[ja]) {
				ja++
			}
			na := strings.TrimLeft(a[i:ia], "0")
			nb := strings.TrimLeft(b[j:ja], "0")
			if len(na) != len(nb) {
				return len(na) < len(nb)
			}
			if na != nb {
				return na < nb
			}
			// same value; shorter run (fewer leading zeros) first
			if ia-i != ja-j {
				return ia-i < ja-j
			}
			i, j = ia, ja
			continue
		}
		if ca != cb {
			return ca < cb
		}
		i++
		j++
	}
	return len(a)-i < len(b)-j
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
