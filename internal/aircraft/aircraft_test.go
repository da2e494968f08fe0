package aircraft

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adsb1090/pipeline"
)

func TestTable_UpdateAndSnapshot(t *testing.T) {
	tab := NewTable(time.Hour)
	tab.Update(pipeline.PositionReport{ICAO: 0x40621D, AltitudeFt: 38000, Lat: 52.2572, Lon: 3.9194, HasFix: true})

	require.Equal(t, 1, tab.Count())
	snap := tab.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, uint32(0x40621D), snap[0].ICAO)
	assert.True(t, snap[0].HasFix)
}

// A later NoFix report must not erase a previously known position fix.
func TestTable_NoFixReportPreservesPriorPosition(t *testing.T) {
	tab := NewTable(time.Hour)
	tab.Update(pipeline.PositionReport{ICAO: 0x40621D, AltitudeFt: 38000, Lat: 52.2572, Lon: 3.9194, HasFix: true})
	tab.Update(pipeline.PositionReport{ICAO: 0x40621D, AltitudeFt: 38025, HasFix: false})

	snap := tab.Snapshot()
	require.Len(t, snap, 1)
	assert.True(t, snap[0].HasFix)
	assert.Equal(t, 52.2572, snap[0].Lat)
	assert.Equal(t, 38025, snap[0].AltitudeFt)
}

func TestTable_ExpiresStaleEntries(t *testing.T) {
	tab := NewTable(20 * time.Millisecond)
	tab.Update(pipeline.PositionReport{ICAO: 0x40621D})
	require.Equal(t, 1, tab.Count())

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 0, tab.Count())
}

func TestTable_SnapshotSortedByICAO(t *testing.T) {
	tab := NewTable(time.Hour)
	tab.Update(pipeline.PositionReport{ICAO: 0x02})
	tab.Update(pipeline.PositionReport{ICAO: 0x01})
	tab.Update(pipeline.PositionReport{ICAO: 0x03})

	snap := tab.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, uint32(0x01), snap[0].ICAO)
	assert.Equal(t, uint32(0x02), snap[1].ICAO)
	assert.Equal(t, uint32(0x03), snap[2].ICAO)
}
