// Package aircraft tracks the live picture of aircraft currently being
// received: one entry per ICAO address, built up from successive
// pipeline.PositionReport values and expired automatically once a
// configurable number of seconds pass without a new report.
//
// This replaces a map-plus-mutex Sky/Aircraft pair with a patrickmn/go-cache
// table so that staleness is handled by the cache's own janitor instead of
// a hand-rolled sweep (the prior sweep, RemoveStaleAircrafts, built its
// removal list but never deleted from the map).
package aircraft

import (
	"sort"
	"time"

	"github.com/patrickmn/go-cache"

	"adsb1090/pipeline"
)

// DefaultTTL mirrors the conventional MODES_AIRCRAFT_TTL value: an
// aircraft not heard from in this long is considered gone.
const DefaultTTL = 60 * time.Second

// View is one row of the live picture: the latest PositionReport plus
// when it was last refreshed.
type View struct {
	pipeline.PositionReport
	Seen time.Time
}

// Table is the live, self-expiring aircraft picture for one session.
type Table struct {
	c *cache.Cache
}

// NewTable builds a Table that drops an entry after ttl of silence,
// sweeping for expirations every ttl/2.
func NewTable(ttl time.Duration) *Table {
	return &Table{c: cache.New(ttl, ttl/2)}
}

// Update records a freshly decoded report, keyed by ICAO, resetting its
// TTL countdown. Reports with HasFix false still update altitude/ICAO
// but are merged onto any previously known fix rather than clearing it,
// since a position-less report (NoFix) carries no coordinates to lose.
func (t *Table) Update(r pipeline.PositionReport) {
	key := icaoKey(r.ICAO)
	if !r.HasFix {
		if prev, ok := t.c.Get(key); ok {
			pv := prev.(View)
			r.Lat, r.Lon, r.HasFix = pv.Lat, pv.Lon, pv.HasFix
		}
	}
	t.c.SetDefault(key, View{PositionReport: r, Seen: time.Now()})
}

// Count returns the number of aircraft currently tracked.
func (t *Table) Count() int {
	return t.c.ItemCount()
}

// Snapshot returns all tracked aircraft sorted by ICAO address, for a
// stable display order.
func (t *Table) Snapshot() []View {
	items := t.c.Items()
	out := make([]View, 0, len(items))
	for _, item := range items {
		out = append(out, item.Object.(View))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ICAO < out[j].ICAO })
	return out
}

func icaoKey(icao uint32) string {
	const hexDigits = "0123456789ABCDEF"
	b := make([]byte, 6)
	for i := 5; i >= 0; i-- {
		b[i] = hexDigits[icao&0xF]
		icao >>= 4
	}
	return string(b)
}
