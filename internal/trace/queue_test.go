package trace

import "testing"

func TestQueue_FIFO(t *testing.T) {
	var q queue
	for i := 0; i < 10; i++ {
		q.push(i)
	}
	for i := 0; i < 10; i++ {
		if got := q.pop(); got != i {
			t.Fatalf("pop() = %d, want %d", got, i)
		}
	}
	if q.len() != 0 {
		t.Errorf("len() = %d, want 0", q.len())
	}
}

func TestQueue_GrowWhileWrapped(t *testing.T) {
	var q queue
	next, want := 0, 0
	// Interleave pushes and pops so the head wraps before the buffer grows.
	for round := 0; round < 50; round++ {
		for i := 0; i < 7; i++ {
			q.push(next)
			next++
		}
		for i := 0; i < 5; i++ {
			if got := q.pop(); got != want {
				t.Fatalf("round %d: pop() = %d, want %d", round, got, want)
			}
			want++
		}
	}
	for q.len() > 0 {
		if got := q.pop(); got != want {
			t.Fatalf("drain: pop() = %d, want %d", got, want)
		}
		want++
	}
	if want != next {
		t.Errorf("popped %d values, pushed %d", want, next)
	}
}

func TestQueue_Reset(t *testing.T) {
	var q queue
	q.push(1)
	q.push(2)
	q.reset()
	if q.len() != 0 {
		t.Fatalf("len() = %d after reset", q.len())
	}
	q.push(3)
	if got := q.pop(); got != 3 {
		t.Errorf("pop() = %d, want 3", got)
	}
}
