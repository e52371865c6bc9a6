// File: core/queue/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bounded lock-free queues. SPSC is a ring with one producer and one
// consumer; MPMC is a Vyukov-style queue with per-slot sequence numbers.
// Slots are addressed by integer position, never by swapped pointers,
// which sidesteps ABA and use-after-free hazards entirely. Both queues
// pad producer-owned and consumer-owned indices onto separate cache
// lines to avoid false sharing.
package queue
