package patchepi

import (
	"log"
	"os"

	"github.com/segmentio/ksuid"
)

// Validator is the hook test infrastructure (and, by default, the CLI)
// uses to observe the driver's progress at a finer grain than the final
// Output. Implementations must be safe for concurrent invocation: every
// patch worker calls into the same Validator from its own goroutine.
type Validator interface {
	// OnPatchTick is called once per patch per global tick, before the
	// patch advances that tick.
	OnPatchTick(tick, patchID int)
	// OnPersonTick is called once per global tick for every person in a
	// patch's local population (halo included), before the person moves;
	// a person held by several patches is reported once by each of them.
	OnPersonTick(tick, patchID int, personID PersonId)
}

// NoopValidator discards every notification. Used by default in tests and
// benchmarks that don't care about per-tick observation.
type NoopValidator struct{}

func (NoopValidator) OnPatchTick(tick, patchID int)                    {}
func (NoopValidator) OnPersonTick(tick, patchID int, personID PersonId) {}

// logValidator is a Validator that writes one line per patch tick to a
// standard logger, tagged with a run ID so that concurrent launches can be
// told apart in shared log output. The standard log package is already
// safe for concurrent use, so logValidator needs no additional locking --
// the same property kentwait-contagion relies on when multiple goroutines
// write through a shared *log.Logger.
type logValidator struct {
	runID  ksuid.KSUID
	logger *log.Logger
}

// NewLogValidator creates a Validator that logs patch-tick boundaries to
// logger (or a default stderr logger if nil), tagged with a fresh run ID.
func NewLogValidator(logger *log.Logger) Validator {
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	return &logValidator{runID: ksuid.New(), logger: logger}
}

func (v *logValidator) OnPatchTick(tick, patchID int) {
	v.logger.Printf("run=%s tick=%d patch=%d", v.runID, tick, patchID)
}

func (v *logValidator) OnPersonTick(tick, patchID int, personID PersonId) {
	// Deliberately not logged by default: at population scale this would
	// dominate output. Kept as a no-op hook point for custom validators
	// that do want per-person granularity (e.g. test doubles).
}
