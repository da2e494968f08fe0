package cpr

// slot holds the most recent frame of one parity for one aircraft, plus
// the monotonic sequence number assigned when it was stored (breaks ties
// on which frame is "later").
type slot struct {
	frame Frame
	seq   int64
	set   bool
}

// aircraftState is the CprFramePair for one ICAO: at most one even and one
// odd slot, each holding only the most recent frame of its parity.
type aircraftState struct {
	even, odd slot
}

// Resolver is the per-session, per-aircraft CPR state machine. It is
// owned exclusively by one pipeline.Decoder for the duration of one decode
// session: instance-owned, not package-level; no locking needed in the
// single-threaded batch model.
type Resolver struct {
	states       map[uint32]*aircraftState
	seq          int64
	preferRecent bool
}

// NewResolver constructs an empty, session-scoped resolver. By default it
// always reports the even frame's latitude/longitude when both parities
// are available, matching the "just pick even for the final lat" choice
// of the original decoder this module is based on. Pass WithPreferRecent
// to instead report whichever parity was observed more recently.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{states: make(map[uint32]*aircraftState)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolverOption configures a Resolver at construction time.
type ResolverOption func(*Resolver)

// WithPreferRecent makes the resolver report the more recently observed
// parity's latitude/longitude instead of always the even frame's.
func WithPreferRecent() ResolverOption {
	return func(r *Resolver) { r.preferRecent = true }
}

// Update records a new CPR observation for icao (format 0=even, 1=odd) and
// attempts a global decode if both parities are now populated. It returns
// (Result{}, false), meaning "no fix", if either slot is still empty, if the
// arithmetic/latitude-zone checks fail, or if format is neither 0 nor 1.
//
// Update must be called in the order frames were decoded from the
// magnitude buffer (Candidate order); "most recent wins" then coincides
// with source order, and only matters at all when the resolver was built
// with WithPreferRecent.
func (r *Resolver) Update(icao uint32, format int, latEnc, lonEnc uint32) (Result, bool) {
	st, ok := r.states[icao]
	if !ok {
		st = &aircraftState{}
		r.states[icao] = st
	}

	r.seq++
	newSlot := slot{frame: Frame{LatEnc: latEnc, LonEnc: lonEnc}, seq: r.seq, set: true}

	switch format {
	case 0:
		st.even = newSlot
	case 1:
		st.odd = newSlot
	default:
		return Result{}, false
	}

	if !st.even.set || !st.odd.set {
		return Result{}, false
	}

	preferOdd := r.preferRecent && st.odd.seq > st.even.seq
	return decode(st.even.frame, st.odd.frame, preferOdd)
}

// HasBoth reports whether both parities have been observed for icao,
// useful for tests asserting the HAVE_EVEN/HAVE_ODD/HAVE_BOTH state
// machine.
func (r *Resolver) HasBoth(icao uint32) bool {
	st, ok := r.states[icao]
	if !ok {
		return false
	}
	return st.even.set && st.odd.set
}
