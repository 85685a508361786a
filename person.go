package patchepi

import "math/rand"

// HealthState is a person's stage in the SEIR-like progression used by
// this simulator: Susceptible -> Incubating -> Infectious -> Recovered.
type HealthState int

const (
	// Susceptible persons have never been infected.
	Susceptible HealthState = iota
	// Incubating persons carry the pathogen but are not yet contagious.
	Incubating
	// Infectious persons carry the pathogen and can transmit it.
	Infectious
	// Recovered persons are no longer susceptible or contagious.
	Recovered
)

func (s HealthState) String() string {
	switch s {
	case Susceptible:
		return "susceptible"
	case Incubating:
		return "incubating"
	case Infectious:
		return "infectious"
	case Recovered:
		return "recovered"
	default:
		return "unknown"
	}
}

// PersonId uniquely and stably identifies a person for the lifetime of a
// simulation run. Assigned in scenario population order.
type PersonId int

// PersonInfo is the immutable, serializable snapshot of a person recorded
// into a trace entry.
type PersonInfo struct {
	ID       PersonId
	Position Point
	State    HealthState
}

// Person is a single simulated individual: opaque position-and-state data
// plus the movement/contagion behavior the patch worker drives every tick.
// Person is not safe for concurrent use; a given PersonId is owned by
// exactly one patch worker at any instant.
type Person struct {
	id       PersonId
	position Point
	state    HealthState

	incubationRemaining int
	infectiousRemaining int

	params Parameters
	rng    *rand.Rand
}

// NewPerson constructs a person from its scenario-supplied starting info.
// Each person gets a private RNG stream seeded from the scenario seed and
// the person's own id, so a person's sequence of random draws is the same
// regardless of which patch happens to own it at a given tick -- this is
// what makes the simulation's output independent of the partitioning.
func NewPerson(id PersonId, info PersonInfo, params Parameters) *Person {
	seed := params.RandomSeed ^ (int64(id) * 2654435761)
	p := &Person{
		id:       id,
		position: info.Position,
		state:    info.State,
		params:   params,
		rng:      rand.New(rand.NewSource(seed)),
	}
	if p.state == Incubating {
		p.incubationRemaining = params.IncubationTime
	}
	if p.state == Infectious {
		p.infectiousRemaining = params.InfectiousDuration
	}
	return p
}

// ID returns the person's stable identifier.
func (p *Person) ID() PersonId { return p.id }

// Position returns the person's current grid position.
func (p *Person) Position() Point { return p.position }

// Info returns the immutable snapshot of the person's current state.
func (p *Person) Info() PersonInfo {
	return PersonInfo{ID: p.id, Position: p.position, State: p.state}
}

// Clone returns a deep, independent copy of the person including its RNG
// state. Used when sending a population snapshot over a sync channel so
// that the sender and receiver sides never alias mutable state.
func (p *Person) Clone() *Person {
	cp := *p
	rngCopy := *p.rng
	cp.rng = &rngCopy
	return &cp
}

func (p *Person) IsSusceptible() bool { return p.state == Susceptible }
func (p *Person) IsInfected() bool    { return p.state == Incubating }
func (p *Person) IsInfectious() bool  { return p.state == Infectious }
func (p *Person) IsRecovered() bool   { return p.state == Recovered }

// IsCoughing reports whether the person currently sheds the pathogen onto
// neighbors within infection radius.
func (p *Person) IsCoughing() bool { return p.state == Infectious }

// IsBreathing reports whether the person can currently contract the
// pathogen from a coughing neighbor.
func (p *Person) IsBreathing() bool { return p.state == Susceptible }

var stepOffsets = [5]Point{{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Tick advances the person's position by at most one cell and advances its
// internal health-state timers. padded is the patch's padded rectangle
// (the region the person is permitted to move within); obstacles block
// movement into their cells; positions holds the current position of every
// other patch-local person (to avoid stepping into an occupied cell);
// ghosts holds every person's start-of-tick position (to forbid swapping
// into a cell a neighbor has just vacated, per the bulk-synchronous
// contract in the driver).
func (p *Person) Tick(padded Rectangle, obstacles []Rectangle, positions, ghosts []Point) {
	occupied := func(pt Point) bool {
		for _, o := range obstacles {
			if o.Contains(pt) {
				return true
			}
		}
		for _, q := range positions {
			if q == pt && q != p.position {
				return true
			}
		}
		for _, g := range ghosts {
			if g == pt && g != p.position {
				return true
			}
		}
		return false
	}

	order := p.rng.Perm(len(stepOffsets))
	for _, idx := range order {
		off := stepOffsets[idx]
		candidate := p.position.Add(off.X, off.Y)
		if !padded.Contains(candidate) {
			continue
		}
		if occupied(candidate) {
			continue
		}
		p.position = candidate
		break
	}

	p.advanceState()
}

func (p *Person) advanceState() {
	switch p.state {
	case Incubating:
		p.incubationRemaining--
		if p.incubationRemaining <= 0 {
			p.state = Infectious
			p.infectiousRemaining = p.params.InfectiousDuration
		}
	case Infectious:
		p.infectiousRemaining--
		if p.infectiousRemaining <= 0 {
			p.state = Recovered
		}
	}
}

// Infect transitions a susceptible person to the incubating state. Calling
// Infect on a non-susceptible person is a no-op: only one infection per
// person's lifetime is modeled.
func (p *Person) Infect() {
	if p.state != Susceptible {
		return
	}
	p.state = Incubating
	p.incubationRemaining = p.params.IncubationTime
}
