package patchepi

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// rawRect is the flat, TOML-friendly encoding of a Rectangle:
// [originX, originY, sizeX, sizeY].
type rawRect [4]int

func (r rawRect) toRectangle() Rectangle {
	return NewRectangle(Point{r[0], r[1]}, Point{r[2], r[3]})
}

// rawQuery is the TOML-friendly encoding of a Query.
type rawQuery struct {
	Area rawRect `toml:"area"`
}

// rawPerson is the TOML-friendly encoding of a starting PersonInfo.
type rawPerson struct {
	X     int    `toml:"x"`
	Y     int    `toml:"y"`
	State string `toml:"state"`
}

func (r rawPerson) toPersonInfo(id int) (PersonInfo, error) {
	state, err := parseHealthState(r.State)
	if err != nil {
		return PersonInfo{}, err
	}
	return PersonInfo{ID: PersonId(id), Position: Point{r.X, r.Y}, State: state}, nil
}

func parseHealthState(s string) (HealthState, error) {
	switch s {
	case "", "susceptible":
		return Susceptible, nil
	case "incubating":
		return Incubating, nil
	case "infectious":
		return Infectious, nil
	case "recovered":
		return Recovered, nil
	default:
		return 0, errors.Errorf(UnrecognizedKeywordError, s, "population[].state")
	}
}

// rawScenario mirrors the TOML file layout; fields that need conversion
// (rectangles, the grid size, population) are kept flat here and expanded
// into Scenario by LoadScenario.
type rawScenario struct {
	GridSize   rawRect              `toml:"grid_size"`
	Parameters Parameters           `toml:"parameters"`
	Partition  Partition            `toml:"partition"`
	Obstacles  []rawRect            `toml:"obstacles"`
	Queries    map[string]rawQuery  `toml:"queries"`
	Trace      bool                 `toml:"trace"`
	Ticks      int                  `toml:"ticks"`
	Population []rawPerson          `toml:"population"`
}

// LoadScenario parses a TOML scenario file into a Scenario, the way
// LoadEvoEpiConfig parses an EvoEpiConfig in the teacher library.
func LoadScenario(path string) (*Scenario, error) {
	var raw rawScenario
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, errors.Wrapf(err, "decoding scenario file %q", path)
	}

	scenario := &Scenario{
		GridSize:   Point{raw.GridSize[2], raw.GridSize[3]},
		Parameters: raw.Parameters,
		Partition:  raw.Partition,
		Trace:      raw.Trace,
		Ticks:      raw.Ticks,
	}
	for _, o := range raw.Obstacles {
		scenario.Obstacles = append(scenario.Obstacles, o.toRectangle())
	}
	scenario.Queries = make(map[string]Query, len(raw.Queries))
	for name, q := range raw.Queries {
		scenario.Queries[name] = Query{Area: q.Area.toRectangle()}
	}
	scenario.Population = make([]PersonInfo, len(raw.Population))
	for i, p := range raw.Population {
		info, err := p.toPersonInfo(i)
		if err != nil {
			return nil, errors.Wrapf(err, "population entry %d", i)
		}
		scenario.Population[i] = info
	}

	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return scenario, nil
}

// Validate checks the internal consistency of a scenario: strictly
// increasing, in-bounds partition splits, and a positive tick count.
func (s *Scenario) Validate() error {
	if s.Ticks <= 0 {
		return errors.Errorf(InvalidIntParameterError, "ticks", s.Ticks, "ticks <= 0")
	}
	if err := validateSplits(s.Partition.X, s.GridSize.X, "partition.x"); err != nil {
		return err
	}
	if err := validateSplits(s.Partition.Y, s.GridSize.Y, "partition.y"); err != nil {
		return err
	}
	return nil
}

func validateSplits(splits []int, bound int, name string) error {
	prev := 0
	for i, v := range splits {
		if v <= prev || v >= bound {
			return errors.Errorf(InvalidIntParameterError, name, v, "splits must be strictly increasing and within the grid")
		}
		if i == 0 && v <= 0 {
			return errors.Errorf(InvalidIntParameterError, name, v, "splits must be strictly increasing and within the grid")
		}
		prev = v
	}
	return nil
}
