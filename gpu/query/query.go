// Package query implements the GPU resource coordinator's
// per-frame timestamp and pipeline-statistics query allocation,
// with soft capacity-exceeded behavior: callers that run out of
// query slots for a frame simply skip instrumenting that span.
package query

import "github.com/kestrelui/core/driver"

// Record is a single labeled timespan, read back one frame
// after it was written.
type Record struct {
	Label      string
	Begin, End uint64
}

// Stat is a single labeled pipeline-statistics sample, read
// back one frame after it was written.
type Stat struct {
	Label string
	driver.Statistics
}

// Set allocates timestamp and statistics query slots for a
// single frame, up to a fixed per-frame capacity. Allocation
// ids are handed out linearly and reset every frame; overflow
// returns ok=false so the caller skips instrumentation for
// that span rather than failing the frame.
type Set struct {
	ts  driver.TimestampQuery
	st  driver.StatisticsQuery
	cap int

	labels  []string
	used    []bool
	next    int
}

// New creates a Set with room for cap labeled spans per frame.
// gq may be nil, or may fail to support one or both query
// kinds; in that case the corresponding BeginTimestamp/
// BeginStatistics calls always report ok=false, so the caller
// degrades to "no instrumentation" rather than erroring.
func New(gq driver.GPUQuery, n int) (*Set, error) {
	if n <= 0 {
		panic("query: New called with cap <= 0")
	}
	s := &Set{cap: n, labels: make([]string, n), used: make([]bool, n)}
	if gq == nil {
		return s, nil
	}
	var err error
	s.ts, err = gq.NewTimestampQuery(n * 2)
	if err != nil {
		s.ts = nil
	}
	s.st, err = gq.NewStatisticsQuery(n)
	if err != nil {
		s.st = nil
	}
	return s, nil
}

// BeginTimestamp allocates a timespan slot and, if the command
// buffer supports CmdBufferTrace, writes the span's begin
// timestamp. It returns ok=false (QueryCapacityExceeded,
// handled as a soft error) when the frame's slots are
// exhausted or timestamp queries are unsupported.
func (s *Set) BeginTimestamp(cb driver.CmdBuffer, label string) (slot int, ok bool) {
	if s.ts == nil {
		return 0, false
	}
	slot, ok = s.alloc(label)
	if !ok {
		return
	}
	if t, canTrace := cb.(driver.CmdBufferTrace); canTrace {
		t.WriteTimestamp(s.ts, slot*2)
	}
	return
}

// EndTimestamp writes the end timestamp for a slot returned by
// a prior, successful BeginTimestamp call.
func (s *Set) EndTimestamp(cb driver.CmdBuffer, slot int) {
	if s.ts == nil || slot < 0 || slot >= s.cap {
		return
	}
	if t, ok := cb.(driver.CmdBufferTrace); ok {
		t.WriteTimestamp(s.ts, slot*2+1)
	}
}

// BeginStatistics allocates a statistics slot and, if the
// command buffer supports it, begins accumulating pipeline
// statistics into it.
func (s *Set) BeginStatistics(cb driver.CmdBuffer, label string) (slot int, ok bool) {
	if s.st == nil {
		return 0, false
	}
	slot, ok = s.alloc(label)
	if !ok {
		return
	}
	if t, canTrace := cb.(driver.CmdBufferTrace); canTrace {
		t.BeginStatistics(s.st, slot)
	}
	return
}

// EndStatistics ends the statistics span started by a prior,
// successful BeginStatistics call.
func (s *Set) EndStatistics(cb driver.CmdBuffer, slot int) {
	if s.st == nil || slot < 0 || slot >= s.cap {
		return
	}
	if t, ok := cb.(driver.CmdBufferTrace); ok {
		t.EndStatistics(s.st, slot)
	}
}

func (s *Set) alloc(label string) (int, bool) {
	if s.next >= s.cap {
		return 0, false
	}
	slot := s.next
	s.next++
	s.labels[slot] = label
	s.used[slot] = true
	return slot, true
}

// Reset reads back every span allocated since the previous
// call to Reset, resets the timestamp/statistics query ranges
// for reuse, and clears the allocation counter for the next
// frame. Call it once per frame, after the command buffer(s)
// that wrote the previous frame's queries have completed
// execution.
func (s *Set) Reset(cb driver.CmdBuffer) ([]Record, []Stat) {
	var records []Record
	var stats []Stat

	for i := 0; i < s.next; i++ {
		if !s.used[i] {
			continue
		}
		if s.ts != nil {
			begin, errB := s.ts.Result(i * 2)
			end, errE := s.ts.Result(i*2 + 1)
			if errB == nil && errE == nil {
				records = append(records, Record{Label: s.labels[i], Begin: begin, End: end})
			}
		}
		if s.st != nil {
			st, err := s.st.Result(i)
			if err == nil {
				stats = append(stats, Stat{Label: s.labels[i], Statistics: st})
			}
		}
		s.used[i] = false
	}

	if t, ok := cb.(driver.CmdBufferTrace); ok {
		if s.ts != nil {
			t.ResetTimestampQuery(s.ts, 0, s.next*2)
		}
	}

	s.next = 0
	return records, stats
}

// Destroy releases the underlying timestamp and statistics
// query pools, if any were created.
func (s *Set) Destroy() {
	if s.ts != nil {
		s.ts.Destroy()
	}
	if s.st != nil {
		s.st.Destroy()
	}
}
