// File: coro/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stackful cooperative coroutines and the scheduler that drives them.
//
// Each coroutine runs on a dedicated goroutine whose stack is the
// coroutine stack; suspend and resume are two channel handoffs, so a
// switch allocates nothing. Within one Scheduler at most one coroutine
// body executes at a time: the scheduler goroutine is blocked while a
// body runs, and the body is blocked while the scheduler runs. All
// scheduler state (ready queue, registry, timers) is therefore mutated
// strictly sequentially even though it is touched from body goroutines.
//
// A Scheduler is an explicit instance. There is no global runtime;
// tests construct and tear down their own instances.
package coro
