// File: core/spin/backoff.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package spin

import (
	"runtime"

	"github.com/valyala/fastrand"
)

// yieldEvery bounds how long a waiter burns CPU before handing its
// thread back to the Go scheduler.
const yieldEvery = 64

// backoff spins briefly with a randomized iteration count to
// de-synchronize contending waiters, yielding every yieldEvery rounds.
func backoff(spins *uint32) {
	*spins++
	if *spins%yieldEvery == 0 {
		runtime.Gosched()
		return
	}
	for i := fastrand.Uint32n(16); i > 0; i-- {
		// Burn a few cycles; the loop body is intentionally empty.
	}
}
