package patchepi

// CalcIndependentTicks computes k, the largest number of ticks a patch may
// execute between halo syncs while its owned region stays correct, given
// the halo width, the pathogen's infection radius, and its incubation
// time (component C2 of the driver). Callers must first reject
// padding < infectionRadius+2 (see InsufficientPadding); this function
// assumes that gate has already passed.
func CalcIndependentTicks(padding, incubationTime, infectionRadius int) int {
	remaining := padding - 2 - infectionRadius
	ticks := 1

	for remaining > 0 {
		for i := 1; i < incubationTime; i++ {
			if remaining <= 1 {
				break
			}
			remaining -= 2
			ticks++
		}
		if remaining <= infectionRadius+1 {
			break
		}
		ticks++
		remaining -= infectionRadius + 2
	}

	return ticks
}
