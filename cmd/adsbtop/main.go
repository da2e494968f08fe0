// Command adsbtop replays a stored IQ capture file through the decode
// pipeline and renders the resulting aircraft picture with gocui/aurora
// as it comes in. Chunk delivery is paced by --replay-rate so the table
// fills in the way a live session would, without talking to any radio
// hardware.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/awesome-gocui/gocui"
	. "github.com/logrusorgru/aurora"
	"github.com/spf13/pflag"

	"adsb1090/internal/aircraft"
	"adsb1090/internal/capture"
	"adsb1090/pipeline"
)

var (
	sourceExec = pflag.String("source-exec", "cat", "executable used to stream the capture file's bytes to stdout")
	input      = pflag.StringP("input", "i", "", "raw IQ capture file to replay (required)")
	chunkSize  = pflag.Int("chunk-bytes", 256*1024, "bytes of IQ decoded per pipeline pass")
	replayRate = pflag.Duration("replay-rate", 200*time.Millisecond, "minimum spacing between chunk deliveries, simulating a live feed")
	ttl        = pflag.Duration("ttl", aircraft.DefaultTTL, "drop an aircraft after this long without a new report")
)

type tableSink struct{ table *aircraft.Table }

func (s tableSink) Emit(r pipeline.PositionReport) { s.table.Update(r) }

func main() {
	pflag.Parse()
	if *input == "" {
		log.Fatalln("error: -i/--input is required (path to a raw IQ capture file to replay)")
	}

	g, err := gocui.NewGui(gocui.OutputNormal, false)
	if err != nil {
		log.Panicln(err)
	}
	defer g.Close()

	g.SetManagerFunc(layout)
	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		log.Panicln(err)
	}

	table := aircraft.NewTable(*ttl)
	dec := pipeline.NewDecoder()
	sink := tableSink{table: table}
	ctx := context.Background()

	pacer := newPacer(*replayRate)
	stop, err := capture.Start(*sourceExec, []string{*input}, *chunkSize, func(chunk []byte) {
		pacer.wait()
		if _, err := dec.Decode(ctx, rawChunk(chunk), sink); err != nil {
			// a frame cut off at a chunk boundary is absorbed inside
			// Decode as Truncated; BadInput here just means this chunk
			// was unusable.
			return
		}
		g.Update(func(g *gocui.Gui) error { return render(g, table) })
	})
	if err != nil {
		log.Panicln("error: ", err)
	}

	go func() {
		for range time.Tick(time.Second) {
			g.Update(func(g *gocui.Gui) error { return render(g, table) })
		}
	}()

	if err := g.MainLoop(); err != nil && !gocui.IsQuit(err) {
		log.Panicln(err)
	}
	stop()
}

// pacer throttles chunk delivery to no faster than one per interval, so
// replaying a file on disk still fills the table at a watchable rate
// instead of all at once.
type pacer struct {
	interval time.Duration
	last     time.Time
}

func newPacer(interval time.Duration) *pacer { return &pacer{interval: interval} }

func (p *pacer) wait() {
	if p.interval <= 0 {
		return
	}
	if elapsed := time.Since(p.last); elapsed < p.interval {
		time.Sleep(p.interval - elapsed)
	}
	p.last = time.Now()
}

// rawChunk adapts a []byte to pipeline.ByteSource for one decode pass.
type rawChunk []byte

func (r rawChunk) ReadAll(ctx context.Context) ([]byte, error) { return r, nil }

func render(g *gocui.Gui, table *aircraft.Table) error {
	s, err := g.View("status")
	if err != nil {
		return nil
	}
	s.Clear()
	fmt.Fprintf(s, " A/C: %02d  LAST UPDATE: %s\n",
		Green(table.Count()),
		Bold(Green(time.Now().Format("2006-01-02 15:04:05"))))

	l, err := g.View("list")
	if err != nil {
		return nil
	}
	l.Clear()
	fmt.Fprintln(l, " ICAO ADDR     ALT      LAT      LON    FIX")
	fmt.Fprintln(l, " ===================================================")

	for _, v := range table.Snapshot() {
		fixMark := Red("no")
		if v.HasFix {
			fixMark = Green("yes")
		}
		fmt.Fprintln(l, Sprintf(Yellow(" %06X     %-5d  %8.4f  %8.4f  %s"),
			v.ICAO, v.AltitudeFt, v.Lat, v.Lon, fixMark))
	}
	return nil
}

func layout(g *gocui.Gui) error {
	const maxX = 80
	_, maxY := g.Size()

	v, err := g.SetView("status", 0, 0, maxX-2, 2, 0)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Title = " STATUS "
	fmt.Fprintln(v, " A/C: --  LAST UPDATE: 0000-00-00 00:00:00")

	v, err = g.SetView("list", 0, 3, maxX-2, maxY-1, 0)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Title = " A/C "
	return nil
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}
