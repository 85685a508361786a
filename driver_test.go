package patchepi

import (
	"reflect"
	"testing"
	"time"
)

func TestLaunch_InsufficientPadding(t *testing.T) {
	scenario := sampleScenario(3)
	_, err := Launch(scenario, scenario.Parameters.InfectionRadius+1, NoopValidator{}, false)
	if err == nil {
		t.Fatal("expected an InsufficientPadding error")
	}
	if _, ok := err.(*InsufficientPadding); !ok {
		t.Errorf("expected *InsufficientPadding, got %T", err)
	}
}

func TestLaunch_Starship_NotImplemented(t *testing.T) {
	scenario := sampleScenario(3)
	_, err := Launch(scenario, scenario.Parameters.InfectionRadius+2, NoopValidator{}, true)
	if err != ErrStarshipNotImplemented {
		t.Errorf("expected ErrStarshipNotImplemented, got %v", err)
	}
}

func TestLaunch_SinglePatch_ConservesPopulation(t *testing.T) {
	scenario := &Scenario{
		GridSize: Point{10, 10},
		Parameters: Parameters{
			InfectionRadius:    1,
			IncubationTime:     2,
			InfectiousDuration: 2,
			RandomSeed:         1,
		},
		Queries: map[string]Query{
			"all": {Area: NewRectangle(Point{0, 0}, Point{10, 10})},
		},
		Trace: true,
		Ticks: 3,
		Population: []PersonInfo{
			{ID: 0, Position: Point{1, 1}, State: Susceptible},
			{ID: 1, Position: Point{2, 2}, State: Infectious},
			{ID: 2, Position: Point{8, 8}, State: Susceptible},
		},
	}

	output, err := Launch(scenario, 3, NoopValidator{}, false)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(output.Trace) != scenario.Ticks {
		t.Fatalf("expected %d trace entries, got %d", scenario.Ticks, len(output.Trace))
	}
	for t2, entry := range output.Trace {
		if len(entry.Population) != len(scenario.Population) {
			t.Errorf("tick %d: expected %d persons, got %d", t2, len(scenario.Population), len(entry.Population))
		}
	}

	series := output.Statistics["all"]
	if len(series) != scenario.Ticks {
		t.Fatalf("expected %d statistics entries, got %d", scenario.Ticks, len(series))
	}
	for t2, s := range series {
		total := s.Susceptible + s.Infected + s.Infectious + s.Recovered
		if total != len(scenario.Population) {
			t.Errorf("tick %d: statistics total %d, want %d", t2, total, len(scenario.Population))
		}
	}
}

func TestLaunch_MultiPatch_PersonConservation(t *testing.T) {
	scenario := sampleScenario(4)
	padding := scenario.Parameters.InfectionRadius + 2

	output, err := Launch(scenario, padding, NoopValidator{}, false)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(output.Trace) != scenario.Ticks {
		t.Fatalf("expected %d trace entries, got %d", scenario.Ticks, len(output.Trace))
	}

	for tick, entry := range output.Trace {
		if len(entry.Population) != len(scenario.Population) {
			t.Fatalf("tick %d: expected %d persons, got %d", tick, len(scenario.Population), len(entry.Population))
		}
		seen := make(map[PersonId]bool, len(entry.Population))
		for _, info := range entry.Population {
			if seen[info.ID] {
				t.Fatalf("tick %d: person %d appears more than once in the merged trace", tick, info.ID)
			}
			seen[info.ID] = true
		}
	}
}

// TestLaunch_TwoByTwoPartition_DoesNotDeadlock exercises spec.md §9's named
// risk case directly: a 2x2 partition makes four patches meet at a
// corner, producing a cyclic neighbor graph. With bounded, fixed-capacity
// sync channels and no barrier between workers, a worker that races ahead
// of its neighbors can block forever on a send that completes the cycle.
// Launch is run on its own goroutine and given a generous deadline; if it
// has not returned by then the run is presumed deadlocked.
func TestLaunch_TwoByTwoPartition_DoesNotDeadlock(t *testing.T) {
	scenario := &Scenario{
		GridSize: Point{10, 10},
		Partition: Partition{
			X: []int{5},
			Y: []int{5},
		},
		Parameters: Parameters{
			InfectionRadius:    1,
			IncubationTime:     2,
			InfectiousDuration: 2,
			RandomSeed:         17,
		},
		Queries: map[string]Query{
			"all": {Area: NewRectangle(Point{0, 0}, Point{10, 10})},
		},
		Trace: true,
		Ticks: 12,
		Population: []PersonInfo{
			{ID: 0, Position: Point{1, 1}, State: Susceptible},
			{ID: 1, Position: Point{4, 4}, State: Infectious},
			{ID: 2, Position: Point{5, 5}, State: Susceptible},
			{ID: 3, Position: Point{6, 6}, State: Susceptible},
			{ID: 4, Position: Point{4, 6}, State: Susceptible},
			{ID: 5, Position: Point{6, 4}, State: Susceptible},
			{ID: 6, Position: Point{9, 9}, State: Susceptible},
			{ID: 7, Position: Point{0, 9}, State: Susceptible},
		},
	}
	// padding = infection_radius + 2 drives k = 1, forcing a sync every
	// single tick -- the highest-contention schedule for the cyclic
	// channel topology.
	padding := scenario.Parameters.InfectionRadius + 2

	done := make(chan struct{})
	var output *Output
	var err error
	go func() {
		output, err = Launch(scenario, padding, NoopValidator{}, false)
		close(done)
	}()

	select {
	case <-done:
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if len(output.Trace) != scenario.Ticks {
			t.Fatalf("expected %d trace entries, got %d", scenario.Ticks, len(output.Trace))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Launch did not return within the deadline -- the 2x2 corner topology appears to have deadlocked")
	}
}

// TestLaunch_PartitionInvariance_TraceEquality checks spec.md §8's named
// testable property: a two-patch run and a single-patch run of the same
// scenario must produce identical trace and statistics for every padding
// from 7 to 12, with infection_radius=5 and incubation_time=3 (the
// parameters of the first three k-planner seed cases).
func TestLaunch_PartitionInvariance_TraceEquality(t *testing.T) {
	population := []PersonInfo{
		{ID: 0, Position: Point{5, 2}, State: Susceptible},
		{ID: 1, Position: Point{12, 3}, State: Infectious},
		{ID: 2, Position: Point{14, 1}, State: Susceptible},
		{ID: 3, Position: Point{16, 4}, State: Susceptible},
		{ID: 4, Position: Point{18, 2}, State: Susceptible},
		{ID: 5, Position: Point{20, 3}, State: Recovered},
		{ID: 6, Position: Point{25, 5}, State: Susceptible},
		{ID: 7, Position: Point{2, 0}, State: Susceptible},
	}
	parameters := Parameters{
		InfectionRadius:    5,
		IncubationTime:     3,
		InfectiousDuration: 4,
		RandomSeed:         55,
	}
	queries := map[string]Query{
		"all": {Area: NewRectangle(Point{0, 0}, Point{30, 6})},
	}

	buildScenario := func(partition Partition) *Scenario {
		return &Scenario{
			GridSize:   Point{30, 6},
			Parameters: parameters,
			Partition:  partition,
			Queries:    queries,
			Trace:      true,
			Ticks:      6,
			Population: append([]PersonInfo(nil), population...),
		}
	}

	single := buildScenario(Partition{})
	multi := buildScenario(Partition{X: []int{15}})

	for padding := 7; padding <= 12; padding++ {
		singleOut, err := Launch(single, padding, NoopValidator{}, false)
		if err != nil {
			t.Fatalf("padding %d: single-patch run failed: %s", padding, err)
		}
		multiOut, err := Launch(multi, padding, NoopValidator{}, false)
		if err != nil {
			t.Fatalf("padding %d: multi-patch run failed: %s", padding, err)
		}

		if !reflect.DeepEqual(singleOut.Trace, multiOut.Trace) {
			t.Errorf("padding %d: single-patch and multi-patch traces differ", padding)
		}
		if !reflect.DeepEqual(singleOut.Statistics, multiOut.Statistics) {
			t.Errorf("padding %d: single-patch and multi-patch statistics differ", padding)
		}
	}
}
