package patchepi

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
)

// Launch validates padding against the scenario's infection radius, builds
// the patch geometry and neighbor graph, spawns one worker per patch, and
// merges their partial outputs into a single canonical Output (component
// C5 of the driver, and spec.md §6's sole entry point).
//
// starship selects an alternate implementation that is out of scope for
// this module; Launch always rejects it rather than attempting it.
func Launch(scenario *Scenario, padding int, validator Validator, starship bool) (*Output, error) {
	if starship {
		return nil, ErrStarshipNotImplemented
	}
	if validator == nil {
		validator = NoopValidator{}
	}

	required := scenario.Parameters.InfectionRadius + 2
	if padding < required {
		return nil, &InsufficientPadding{Padding: padding}
	}

	runID := ksuid.New()
	patchCount := scenario.Partition.PatchCount()

	padded := make([]Rectangle, patchCount)
	owned := make([]Rectangle, patchCount)
	for id := 0; id < patchCount; id++ {
		p, o, err := PaddedPatch(id, scenario.Partition, scenario.GridSize, padding)
		if err != nil {
			return nil, errors.Wrapf(err, "run %s: building patch %d geometry", runID, id)
		}
		padded[id] = p
		owned[id] = o
	}

	k := CalcIndependentTicks(padding, scenario.Parameters.IncubationTime, scenario.Parameters.InfectionRadius)
	links := BuildNeighborGraph(scenario, padded, owned, scenario.Ticks, k)

	results := make(chan workerResult)
	workers := make([]*worker, patchCount)
	for id := 0; id < patchCount; id++ {
		local := scenario.Clone()
		workers[id] = newWorker(id, &local, padded[id], owned[id], k, links[id], validator)
	}
	for _, w := range workers {
		go w.run(results)
	}

	return collect(scenario, patchCount, results, runID)
}

// collect receives one result per patch from the result channel in the
// order the workers finish -- not a sync.WaitGroup barrier -- storing each
// worker's partial trace and statistics by patch id as it arrives, and
// merges them once every patch has reported. The first worker error ends
// the collection (SPEC_FULL.md §5).
func collect(scenario *Scenario, patchCount int, results <-chan workerResult, runID ksuid.KSUID) (*Output, error) {
	traces := make([][]TraceEntry, patchCount)
	stats := make([]map[string][]Statistics, patchCount)

	for i := 0; i < patchCount; i++ {
		res := <-results
		if res.err != nil {
			return nil, errors.Wrapf(res.err, "run %s", runID)
		}
		traces[res.patchID] = res.trace
		stats[res.patchID] = res.statistics
	}

	return &Output{
		RunID:      runID,
		Scenario:   *scenario,
		Trace:      mergeTrace(scenario, traces),
		Statistics: mergeStatistics(scenario, stats),
	}, nil
}

// mergeTrace concatenates every patch's per-tick entries and sorts each
// tick's population by PersonId, producing the globally canonical trace
// described in spec.md §3 and §4.5. Each PersonId appears in exactly one
// patch's owned rectangle at any tick, so no dedup is needed -- only a
// sort.
func mergeTrace(scenario *Scenario, traces [][]TraceEntry) []TraceEntry {
	if !scenario.Trace {
		return nil
	}
	merged := make([]TraceEntry, scenario.Ticks)
	for t := 0; t < scenario.Ticks; t++ {
		var all []PersonInfo
		for _, patchTrace := range traces {
			if t < len(patchTrace) {
				all = append(all, patchTrace[t].Population...)
			}
		}
		sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
		merged[t] = TraceEntry{Population: all}
	}
	return merged
}

// mergeStatistics element-wise sums each patch's per-query statistics
// series, producing one series per query name (spec.md §4.5).
func mergeStatistics(scenario *Scenario, perPatch []map[string][]Statistics) map[string][]Statistics {
	merged := make(map[string][]Statistics, len(scenario.Queries))
	for name := range scenario.Queries {
		series := make([]Statistics, scenario.Ticks)
		for _, patchStats := range perPatch {
			for t, s := range patchStats[name] {
				series[t] = series[t].Add(s)
			}
		}
		merged[name] = series
	}
	return merged
}
