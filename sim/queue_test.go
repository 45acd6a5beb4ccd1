package sim

import (
	"testing"
)

func TestRequestQueue_FIFOOrder(t *testing.T) {
	// GIVEN a queue with requests [1, 2, 3]
	rq := &RequestQueue{}
	rq.Enqueue(Request{ID: 1})
	rq.Enqueue(Request{ID: 2})
	rq.Enqueue(Request{ID: 3})

	// WHEN all requests are dequeued
	var ids []uint64
	for rq.Len() > 0 {
		req, ok := rq.Dequeue()
		if !ok {
			t.Fatalf("Dequeue returned !ok with %d requests left", rq.Len())
		}
		ids = append(ids, req.ID)
	}

	// THEN they come out strictly in arrival order
	want := []uint64{1, 2, 3}
	for i, id := range ids {
		if id != want[i] {
			t.Errorf("dequeue order[%d]: got %d, want %d", i, id, want[i])
		}
	}
}

func TestRequestQueue_Peek_NonEmpty_ReturnsFront(t *testing.T) {
	// GIVEN a queue with requests [7, 8]
	rq := &RequestQueue{}
	rq.Enqueue(Request{ID: 7})
	rq.Enqueue(Request{ID: 8})

	// WHEN Peek() is called
	got, ok := rq.Peek()

	// THEN it returns the front element without removing it
	if !ok || got.ID != 7 {
		t.Errorf("Peek: got (%v, %v), want request 7", got.ID, ok)
	}
	if rq.Len() != 2 {
		t.Errorf("Peek modified queue length: got %d, want 2", rq.Len())
	}
}

func TestRequestQueue_Empty_DequeueAndPeek(t *testing.T) {
	// GIVEN an empty queue
	rq := &RequestQueue{}

	// WHEN Peek() and Dequeue() are called
	_, peekOK := rq.Peek()
	_, deqOK := rq.Dequeue()

	// THEN both report not-ok
	if peekOK {
		t.Error("Peek on empty queue: got ok, want !ok")
	}
	if deqOK {
		t.Error("Dequeue on empty queue: got ok, want !ok")
	}
	if rq.Len() != 0 {
		t.Errorf("Len on empty queue: got %d, want 0", rq.Len())
	}
}
