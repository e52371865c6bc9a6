package queue

import (
	"testing"
)

func TestSPSC_FIFOOrder(t *testing.T) {
	r := NewSPSC[int](16)
	for i := 0; i < 16; i++ {
		if !r.Enqueue(i) {
			t.Fatalf("enqueue %d failed below capacity", i)
		}
	}
	if r.Enqueue(99) {
		t.Fatal("enqueue succeeded on full ring")
	}
	for i := 0; i < 16; i++ {
		v, ok := r.Dequeue()
		if !ok {
			t.Fatalf("dequeue %d failed", i)
		}
		if v != i {
			t.Fatalf("dequeued %d, want %d", v, i)
		}
	}
	if _, ok := r.Dequeue(); ok {
		t.Fatal("dequeue succeeded on empty ring")
	}
}

func TestSPSC_CapacityRounding(t *testing.T) {
	r := NewSPSC[int](10)
	if r.Cap() != 16 {
		t.Fatalf("cap %d, want 16", r.Cap())
	}
	r = NewSPSC[int](0)
	if r.Cap() != 2 {
		t.Fatalf("cap %d, want 2", r.Cap())
	}
}

func TestSPSC_ConcurrentStream(t *testing.T) {
	r := NewSPSC[uint64](256)
	const items = 200000

	done := make(chan uint64, 1)
	go func() {
		var sum uint64
		var got int
		for got < items {
			if v, ok := r.Dequeue(); ok {
				sum += v
				got++
			}
		}
		done <- sum
	}()

	var want uint64
	for i := uint64(1); i <= items; i++ {
		for !r.Enqueue(i) {
		}
		want += i
	}

	if sum := <-done; sum != want {
		t.Fatalf("checksum mismatch: got %d, want %d", sum, want)
	}
	if r.Len() != 0 {
		t.Fatalf("ring not drained, len=%d", r.Len())
	}
}

func BenchmarkSPSC_EnqueueDequeue(b *testing.B) {
	r := NewSPSC[int](1024)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r.Enqueue(i)
		r.Dequeue()
	}
}
