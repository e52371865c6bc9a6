// File: core/queue/capacity.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package queue

import "fortio.org/safecast"

// normalize converts a requested capacity to the power-of-two slot count
// the rings index with. Requests below 2 are raised to 2.
func normalize(capacity int) uint64 {
	size, err := safecast.Conv[uint64](capacity)
	if err != nil || size < 2 {
		size = 2
	}
	if size&(size-1) != 0 {
		size--
		size |= size >> 1
		size |= size >> 2
		size |= size >> 4
		size |= size >> 8
		size |= size >> 16
		size |= size >> 32
		size++
	}
	return size
}
