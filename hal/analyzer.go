package hal

import (
	"sort"
	"sync"

	"tasktrace-go/x/tick"
)

// Edge is one recorded level change.
type Edge struct {
	Pin   PinID
	Level bool
	At    tick.Tick
}

// PinStats summarises the trace of one pin.
type PinStats struct {
	Pin      PinID
	Level    bool
	Rises    uint64
	LastRise tick.Tick
	Period   tick.Ticks // between the last two rising edges
	High     tick.Ticks // last completed high window
	MaxHigh  tick.Ticks
}

// Analyzer stands in for the logic analyzer clipped onto the board: it
// timestamps every pin change and keeps a bounded edge log.
type Analyzer struct {
	mu    sync.Mutex
	stats map[PinID]*PinStats
	log   []Edge
	next  int
	full  bool
}

// NewAnalyzer keeps the last logCap edges; 0 keeps statistics only.
func NewAnalyzer(logCap int) *Analyzer {
	if logCap < 0 {
		logCap = 0
	}
	return &Analyzer{stats: map[PinID]*PinStats{}, log: make([]Edge, logCap)}
}

func (a *Analyzer) PinChanged(id PinID, level bool, at tick.Tick) {
	a.mu.Lock()
	defer a.mu.Unlock()

	st := a.stats[id]
	if st == nil {
		st = &PinStats{Pin: id}
		a.stats[id] = st
	}
	if level == st.Level && st.Rises > 0 {
		return
	}
	if level {
		if st.Rises > 0 {
			st.Period = at.Since(st.LastRise)
		}
		st.Rises++
		st.LastRise = at
	} else if st.Rises > 0 {
		st.High = at.Since(st.LastRise)
		if st.High > st.MaxHigh {
			st.MaxHigh = st.High
		}
	}
	st.Level = level

	if len(a.log) > 0 {
		a.log[a.next] = Edge{Pin: id, Level: level, At: at}
		a.next++
		if a.next == len(a.log) {
			a.next = 0
			a.full = true
		}
	}
}

// Stats returns the summary for one pin.
func (a *Analyzer) Stats(id PinID) (PinStats, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	st, ok := a.stats[id]
	if !ok {
		return PinStats{}, false
	}
	return *st, true
}

// Snapshot returns every pin seen so far, ordered by PinID.
func (a *Analyzer) Snapshot() []PinStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]PinStats, 0, len(a.stats))
	for _, st := range a.stats {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pin < out[j].Pin })
	return out
}

// Edges returns the logged edges, oldest first.
func (a *Analyzer) Edges() []Edge {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.full {
		return append([]Edge(nil), a.log[:a.next]...)
	}
	out := make([]Edge, 0, len(a.log))
	out = append(out, a.log[a.next:]...)
	return append(out, a.log[:a.next]...)
}

// RisingEdges returns the logged rising-edge times of one pin.
func (a *Analyzer) RisingEdges(id PinID) []tick.Tick {
	var out []tick.Tick
	for _, e := range a.Edges() {
		if e.Pin == id && e.Level {
			out = append(out, e.At)
		}
	}
	return out
}
