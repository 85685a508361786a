package patchepi

import "github.com/segmentio/ksuid"

// Statistics is the four-way SEIR-style tally tracked per query per tick:
// susceptible, infected (incubating), infectious, recovered.
type Statistics struct {
	Susceptible int
	Infected    int
	Infectious  int
	Recovered   int
}

// Add returns the element-wise sum of s and o, used by the driver to merge
// per-patch partial statistics for the same query and tick.
func (s Statistics) Add(o Statistics) Statistics {
	return Statistics{
		Susceptible: s.Susceptible + o.Susceptible,
		Infected:    s.Infected + o.Infected,
		Infectious:  s.Infectious + o.Infectious,
		Recovered:   s.Recovered + o.Recovered,
	}
}

// tally adds one person's contribution to s according to its health state.
func (s Statistics) tally(state HealthState) Statistics {
	switch state {
	case Susceptible:
		s.Susceptible++
	case Incubating:
		s.Infected++
	case Infectious:
		s.Infectious++
	case Recovered:
		s.Recovered++
	}
	return s
}

// TraceEntry is one global tick's worth of person snapshots, restricted to
// persons owned (not haloed) by the patch that produced it before merging,
// and to the full population after the driver merges and sorts it.
type TraceEntry struct {
	Population []PersonInfo
}

// Output is the complete result of one Launch call: the scenario that was
// run, the per-tick trace (empty if the scenario disabled tracing), and the
// per-query, per-tick statistics series.
type Output struct {
	RunID      ksuid.KSUID
	Scenario   Scenario
	Trace      []TraceEntry
	Statistics map[string][]Statistics
}
