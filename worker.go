package patchepi

import (
	"fmt"
	"sort"
)

// workerResult is what a patch worker sends back to the driver over the
// shared, unbuffered result channel when it terminates, successfully or
// not (component C4's half of the C4/C5 handoff).
type workerResult struct {
	patchID    int
	trace      []TraceEntry
	statistics map[string][]Statistics
	err        error
}

// worker owns one patch's slice of the population for the lifetime of a
// run. It is constructed once by the driver and then runs entirely on its
// own goroutine; after construction the driver never touches a worker's
// fields directly, only its result channel.
type worker struct {
	patchID    int
	scenario   *Scenario
	owned      Rectangle
	padded     Rectangle
	k          int
	ticksTotal int
	validator  Validator
	links      patchLinks

	population []*Person
	positions  map[PersonId]Point
	ghosts     []Point

	trace      []TraceEntry
	statistics map[string][]Statistics
}

// newWorker builds a patch worker: it filters the global population down
// to this patch's padded rectangle, sorts it by PersonId, and prepares
// empty, query-keyed output accumulators (spec.md §4.4, "on construction").
func newWorker(patchID int, scenario *Scenario, padded, owned Rectangle, k int, links patchLinks, validator Validator) *worker {
	w := &worker{
		patchID:    patchID,
		scenario:   scenario,
		owned:      owned,
		padded:     padded,
		k:          k,
		ticksTotal: scenario.Ticks,
		validator:  validator,
		links:      links,
		positions:  make(map[PersonId]Point),
		statistics: make(map[string][]Statistics, len(scenario.Queries)),
	}

	for _, info := range scenario.Population {
		if !padded.Contains(info.Position) {
			continue
		}
		w.population = append(w.population, NewPerson(info.ID, info, scenario.Parameters))
	}
	w.sortPopulation()
	w.rebuildPositions()

	for name := range scenario.Queries {
		w.statistics[name] = make([]Statistics, 0, w.ticksTotal)
	}
	if scenario.Trace {
		w.trace = make([]TraceEntry, 0, w.ticksTotal)
	}

	return w
}

func (w *worker) sortPopulation() {
	sort.Slice(w.population, func(i, j int) bool {
		return w.population[i].ID() < w.population[j].ID()
	})
}

func (w *worker) rebuildPositions() {
	w.positions = make(map[PersonId]Point, len(w.population))
	for _, p := range w.population {
		w.positions[p.ID()] = p.Position()
	}
}

func (w *worker) positionSnapshot() []Point {
	pts := make([]Point, 0, len(w.positions))
	for _, pt := range w.positions {
		pts = append(pts, pt)
	}
	return pts
}

// run drives the patch through every global tick, returning the result
// the driver will merge. A panic recovered here is reported as a
// WorkerFailed instead of propagating to the driver's goroutine (spec.md
// §7's documented improvement over the naive panic-to-driver design).
func (w *worker) run(results chan<- workerResult) {
	defer func() {
		if r := recover(); r != nil {
			results <- workerResult{patchID: w.patchID, err: &WorkerFailed{PatchID: w.patchID, Cause: recoverToError(r)}}
		}
	}()

	for t := 0; t < w.ticksTotal; t++ {
		w.validator.OnPatchTick(t, w.patchID)

		if (t+1)%w.k == 0 {
			w.wipe()
			w.sync()
		}

		w.tick(t)
		w.contagionSweep()
		w.extendOutput()
	}

	w.wipe()
	results <- workerResult{patchID: w.patchID, trace: w.trace, statistics: w.statistics}
}

// tick advances every patch-local person by one step, in PersonId order,
// recording start-of-tick ghosts as it goes and clearing them once the
// whole patch has moved (spec.md §4.4 step 3).
func (w *worker) tick(t int) {
	obstacles := w.scenario.Obstacles
	for _, p := range w.population {
		w.ghosts = append(w.ghosts, p.Position())
		w.validator.OnPersonTick(t, w.patchID, p.ID())
		p.Tick(w.padded, obstacles, w.positionSnapshot(), w.ghosts)
		w.positions[p.ID()] = p.Position()
	}
	w.ghosts = w.ghosts[:0]
}

// contagionSweep evaluates every unordered pair of patch-local persons
// within infection radius and infects susceptible, breathing targets from
// infectious, coughing sources, independently in both directions (spec.md
// §4.4 step 4).
func (w *worker) contagionSweep() {
	radius := w.scenario.Parameters.InfectionRadius
	n := len(w.population)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := w.population[i], w.population[j]
			if manhattan(a.Position(), b.Position()) > radius {
				continue
			}
			if a.IsInfectious() && a.IsCoughing() && b.IsBreathing() {
				b.Infect()
			}
			if b.IsInfectious() && b.IsCoughing() && a.IsBreathing() {
				a.Infect()
			}
		}
	}
}

func manhattan(a, b Point) int {
	return absInt(a.X-b.X) + absInt(a.Y-b.Y)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// extendOutput appends this tick's trace entry (owned persons only, in
// population order) and statistics entry (owned-and-query-area persons
// only) to the worker's accumulators (spec.md §4.4 step 5).
func (w *worker) extendOutput() {
	if w.trace != nil {
		var owned []PersonInfo
		for _, p := range w.population {
			if w.owned.Contains(p.Position()) {
				owned = append(owned, p.Info())
			}
		}
		w.trace = append(w.trace, TraceEntry{Population: owned})
	}

	for name, query := range w.scenario.Queries {
		area := w.owned.Intersect(query.Area)
		var s Statistics
		for _, p := range w.population {
			if area.Contains(p.Position()) {
				s = s.tally(p.Info().State)
			}
		}
		w.statistics[name] = append(w.statistics[name], s)
	}
}

// wipe discards persons whose current position has drifted into the halo,
// keeping only those inside the owned rectangle, and rebuilds the
// positions index from the survivors (spec.md §4.4, "Wipe").
func (w *worker) wipe() {
	kept := w.population[:0]
	for _, p := range w.population {
		if w.owned.Contains(p.Position()) {
			kept = append(kept, p)
		}
	}
	w.population = kept
	w.rebuildPositions()
}

// sync performs the bulk-synchronous halo exchange: send the full current
// (post-wipe) population to every reachable neighbor, then receive from
// every reachable neighbor, keeping only arrivals that land in this
// patch's padded rectangle, then re-sort and rebuild the positions index
// (spec.md §4.4, "Sync"). Sends precede receives across the whole patch
// set, so with the syncRounds-sized channels neighbor_graph.go allocates,
// no cycle in the neighbor graph can deadlock the exchange: a send can
// never block, regardless of how far a worker's goroutine runs ahead of
// its neighbors'.
func (w *worker) sync() {
	for _, out := range w.links.outbound {
		clones := make([]*Person, len(w.population))
		for i, p := range w.population {
			clones[i] = p.Clone()
		}
		out <- clones
	}

	for _, in := range w.links.inbound {
		arrivals := <-in
		for _, p := range arrivals {
			if w.padded.Contains(p.Position()) {
				w.population = append(w.population, p)
			}
		}
	}

	w.sortPopulation()
	w.rebuildPositions()
}

func recoverToError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return &panicError{value: r}
}

type panicError struct{ value interface{} }

func (e *panicError) Error() string { return fmt.Sprintf("worker panic: %v", e.value) }
