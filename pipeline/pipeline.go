// Package pipeline wires the signal-processing front end (dsp), the
// wire-format parser (modes) and the CPR position resolver (cpr) into the
// single batch entry point: ByteSource in, PositionReports out.
package pipeline

import (
	"context"

	charmlog "github.com/charmbracelet/log"

	"adsb1090/cpr"
	"adsb1090/dsp"
	"adsb1090/modes"
)

// ByteSource is the capability boundary for the input byte source: an
// RTL-SDR capture file, a network stream, a test fixture; the pipeline
// only ever needs the whole buffer up front, since there are no
// suspension points within the decode itself.
type ByteSource interface {
	ReadAll(ctx context.Context) ([]byte, error)
}

// ReportSink is the capability boundary for the output sink. Emit is
// called once per decoded DF17 airborne-position frame, in pipeline
// (Candidate) order.
type ReportSink interface {
	Emit(PositionReport)
}

// PositionReport is the externally-visible output of one decoded DF17
// airborne-position frame.
type PositionReport struct {
	ICAO       uint32
	AltitudeFt int
	Lat        float64
	Lon        float64
	HasFix     bool // false = CPR global decode not yet possible for this ICAO
	RawHex     string
}

// Stats are non-functional counters exposed for observability only; no
// functional contract depends on them.
type Stats struct {
	Candidates     int
	Truncated      int
	CRCFailed      int
	NotDF17        int
	NotAirbornePos int
	NoFix          int
	ReportsEmitted int
}

// Decoder is the batch decode pipeline (C1-C9). It holds only
// configuration; all session state (the CPR resolver) is created fresh
// inside Decode, so a Decoder is safe to reuse across independent
// sessions and decode remains a pure function of its input buffer.
type Decoder struct {
	CheckCRC        bool
	StrictPreamble  bool
	PreferRecentCPR bool // opt-in: report the more recently observed parity instead of always even
	Logger          *charmlog.Logger
}

// NewDecoder returns a Decoder with the recommended defaults: CRC
// checking on, lenient (non-strict) preamble detection.
func NewDecoder() *Decoder {
	return &Decoder{CheckCRC: true}
}

// Decode drains src, runs the full C1-C9 pipeline over the resulting
// buffer, and calls sink.Emit once per DF17 airborne-position frame, in
// Candidate order. ctx is checked once per candidate (never mid-frame) so
// an embedding caller can bound the whole batch call; there are no
// internal suspension points. The only error Decode itself returns is the
// BadInput kind (an unreadable or empty byte source, or ctx ending before
// every candidate was processed); every other
// condition is absorbed and reflected only in Stats and (if Logger is
// set) diagnostic log events.
func (d *Decoder) Decode(ctx context.Context, src ByteSource, sink ReportSink) (Stats, error) {
	var stats Stats

	raw, err := src.ReadAll(ctx)
	if err != nil {
		return stats, wrapBadInput(err, "pipeline: reading byte source")
	}

	mag, err := dsp.NewMagnitude(raw)
	if err != nil {
		return stats, wrapBadInput(err, "pipeline: converting IQ to magnitude")
	}

	threshold := dsp.EstimateThreshold(mag)
	detector := dsp.NewPreambleDetector(d.StrictPreamble)
	candidates := detector.Scan(mag, threshold)

	resolver := d.newResolver()

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return stats, wrapBadInput(err, "pipeline: context canceled mid-buffer")
		}
		stats.Candidates++
		d.decodeCandidate(mag, c, resolver, sink, &stats)
	}

	d.logf("decode session complete candidates=%d reports=%d crc_failed=%d truncated=%d",
		stats.Candidates, stats.ReportsEmitted, stats.CRCFailed, stats.Truncated)

	return stats, nil
}

// DecodeHex runs the pipeline from modes.Message onward (C6-C9) over a
// batch of already-demodulated 28-char hex frames, skipping C1-C5
// entirely. This is the entry point adsbdecode's `--hex` ingestion
// mode uses: its hex lines never pass through a captured IQ buffer, so
// there is no dsp stage to run, but CRC/DF17/CPR and the CPR resolver's
// cross-frame state behave identically to the IQ path. Malformed hex
// lines are skipped (counted nowhere; Stats has no counter for them)
// rather than aborting the whole batch.
func (d *Decoder) DecodeHex(hexLines []string, sink ReportSink) Stats {
	var stats Stats
	resolver := d.newResolver()

	for _, line := range hexLines {
		msg, err := modes.ParseHex(line)
		if err != nil {
			d.logf("hex line %q: %v", line, err)
			continue
		}
		d.decodeMessage(msg, resolver, sink, &stats)
	}

	d.logf("hex decode session complete reports=%d crc_failed=%d", stats.ReportsEmitted, stats.CRCFailed)
	return stats
}

func (d *Decoder) decodeCandidate(mag dsp.Magnitude, c dsp.Candidate, resolver *cpr.Resolver, sink ReportSink, stats *Stats) {
	rf, err := dsp.SliceBits(mag, c)
	if err != nil {
		stats.Truncated++
		d.logf("candidate offset=%d truncated", c.Offset)
		return
	}

	d.decodeMessage(modes.Assemble(rf), resolver, sink, stats)
}

func (d *Decoder) decodeMessage(msg modes.Message, resolver *cpr.Resolver, sink ReportSink, stats *Stats) {
	if d.CheckCRC && !modes.CRCValid(msg) {
		stats.CRCFailed++
		d.logf("message %s crc failed", msg.Hex())
		return
	}

	fields, err := modes.ParseDF17(msg)
	switch err {
	case nil:
		// fall through
	case modes.ErrNotDF17:
		stats.NotDF17++
		return
	case modes.ErrNotAirbornePosition:
		stats.NotAirbornePos++
		return
	default:
		return
	}

	report := PositionReport{
		ICAO:       fields.ICAO,
		AltitudeFt: fields.AltitudeFt,
		RawHex:     msg.Hex(),
	}

	if result, ok := resolver.Update(fields.ICAO, fields.CPRFormat, fields.CPRLatEnc, fields.CPRLonEnc); ok {
		report.Lat = result.Lat
		report.Lon = result.Lon
		report.HasFix = true
	} else {
		stats.NoFix++
		d.logf("icao=%06X no fix yet", fields.ICAO)
	}

	stats.ReportsEmitted++
	sink.Emit(report)
}

func (d *Decoder) newResolver() *cpr.Resolver {
	if d.PreferRecentCPR {
		return cpr.NewResolver(cpr.WithPreferRecent())
	}
	return cpr.NewResolver()
}

func (d *Decoder) logf(format string, args ...any) {
	if d.Logger == nil {
		return
	}
	d.Logger.Debugf(format, args...)
}
