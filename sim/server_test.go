package sim

import (
	"testing"
)

func TestServer_TryAssign_Idle_AcceptsCopy(t *testing.T) {
	// GIVEN an idle server and a request with cost 3
	srv := NewServer("1")
	req := Request{ID: 42, Cost: 3, SourceAddr: "1.2.3.4"}

	// WHEN the request is assigned
	ok := srv.TryAssign(&req)

	// THEN the server is busy with its own copy
	if !ok {
		t.Fatal("TryAssign on idle server: got false, want true")
	}
	if srv.IsAvailable() {
		t.Error("server still available after assignment")
	}
	req.Cost = 99 // mutating the caller's request must not affect the server
	if srv.remainingTicks != 3 {
		t.Errorf("remainingTicks: got %d, want 3", srv.remainingTicks)
	}
}

func TestServer_TryAssign_Busy_RefusesWithoutMutation(t *testing.T) {
	// GIVEN a busy server
	srv := NewServer("1")
	srv.TryAssign(&Request{ID: 1, Cost: 5})

	// WHEN a second request is offered
	ok := srv.TryAssign(&Request{ID: 2, Cost: 1})

	// THEN it is refused and the in-flight request is untouched
	if ok {
		t.Error("TryAssign on busy server: got true, want false")
	}
	if srv.currentRequest.ID != 1 {
		t.Errorf("current request: got #%d, want #1", srv.currentRequest.ID)
	}
	if srv.remainingTicks != 5 {
		t.Errorf("remainingTicks: got %d, want 5", srv.remainingTicks)
	}
}

func TestServer_TryAssign_NilRequest_Refused(t *testing.T) {
	srv := NewServer("1")
	if srv.TryAssign(nil) {
		t.Error("TryAssign(nil): got true, want false")
	}
	if !srv.IsAvailable() {
		t.Error("server became busy after nil assignment")
	}
}

func TestServer_Tick_CountsDownAndCompletes(t *testing.T) {
	// GIVEN a server processing a cost-2 request
	srv := NewServer("1")
	srv.TryAssign(&Request{ID: 1, Cost: 2})

	// WHEN ticked twice
	first := srv.Tick()
	second := srv.Tick()

	// THEN only the final tick reports completion
	if first {
		t.Error("first tick: got completion, want none")
	}
	if !second {
		t.Error("second tick: got no completion, want one")
	}
	if !srv.IsAvailable() {
		t.Error("server not idle after completion")
	}
	if srv.currentRequest != nil {
		t.Error("request slot not cleared after completion")
	}
	if srv.CompletedCount() != 1 {
		t.Errorf("CompletedCount: got %d, want 1", srv.CompletedCount())
	}
}

func TestServer_Tick_Idle_NoOp(t *testing.T) {
	// GIVEN an idle server
	srv := NewServer("1")

	// WHEN ticked
	done := srv.Tick()

	// THEN nothing happens
	if done {
		t.Error("idle tick: got completion, want none")
	}
	if srv.CompletedCount() != 0 {
		t.Errorf("CompletedCount after idle tick: got %d, want 0", srv.CompletedCount())
	}
}

func TestServer_CompletedCount_IncrementsOncePerCompletion(t *testing.T) {
	// GIVEN a server that processes three cost-1 requests back to back
	srv := NewServer("1")
	for i := 1; i <= 3; i++ {
		if !srv.TryAssign(&Request{ID: uint64(i), Cost: 1}) {
			t.Fatalf("assignment %d refused on idle server", i)
		}
		if !srv.Tick() {
			t.Fatalf("tick %d: expected completion", i)
		}
	}

	// THEN the counter advanced by exactly one per completion
	if srv.CompletedCount() != 3 {
		t.Errorf("CompletedCount: got %d, want 3", srv.CompletedCount())
	}
}
