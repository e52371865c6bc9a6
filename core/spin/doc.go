// File: core/spin/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Busy-wait locks built on ordered atomic cells. None of these ever
// block in the OS; waiters spin with jittered backoff and periodic
// yields to the Go scheduler. Intended for short critical sections
// shared between scheduler instances running on separate threads.
package spin
