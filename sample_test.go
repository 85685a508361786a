package patchepi

// sampleScenario builds a small, two-patch-friendly scenario used across
// worker and driver tests: a 10x2 grid split once on X, a handful of
// persons on each side, and one query covering the whole grid.
func sampleScenario(ticks int) *Scenario {
	return &Scenario{
		GridSize: Point{10, 2},
		Parameters: Parameters{
			InfectionRadius:    1,
			IncubationTime:     2,
			InfectiousDuration: 2,
			RandomSeed:         123,
		},
		Partition: Partition{X: []int{5}},
		Obstacles: nil,
		Queries: map[string]Query{
			"all": {Area: NewRectangle(Point{0, 0}, Point{10, 2})},
		},
		Trace: true,
		Ticks: ticks,
		Population: []PersonInfo{
			{ID: 0, Position: Point{0, 0}, State: Susceptible},
			{ID: 1, Position: Point{1, 1}, State: Susceptible},
			{ID: 2, Position: Point{4, 0}, State: Infectious},
			{ID: 3, Position: Point{5, 0}, State: Susceptible},
			{ID: 4, Position: Point{8, 1}, State: Susceptible},
			{ID: 5, Position: Point{9, 0}, State: Recovered},
		},
	}
}

// samplePersonSet returns the (id, position) pairs for every person in
// scenario's starting population, for round-trip comparisons.
func samplePersonSet(scenario *Scenario) map[PersonId]Point {
	out := make(map[PersonId]Point, len(scenario.Population))
	for _, info := range scenario.Population {
		out[info.ID] = info.Position
	}
	return out
}
