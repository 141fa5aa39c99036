package service

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"qcm_backend/internals/features/admissions/intake/parser"
)

func newTestSession(st *SessionStore, n int) *IntakeSession {
	items := make([]*parser.ParsedApplication, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, &parser.ParsedApplication{
			TempID: string(rune('a' + i)),
			Status: parser.ReviewPending,
			Parsed: &parser.Parsed{},
		})
	}
	return st.Create("QTR-B04", items)
}

func fiberStatus(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected *fiber.Error, got %T: %v", err, err)
	}
	return fe.Code
}

func TestSessionCreateAndGet(t *testing.T) {
	st := NewSessionStore(time.Hour)
	s := newTestSession(st, 3)

	if s.SessionID == "" {
		t.Fatal("session id is empty")
	}
	if s.PendingCount() != 3 {
		t.Errorf("PendingCount = %d, want 3", s.PendingCount())
	}
	if s.NextPending() != "a" {
		t.Errorf("NextPending = %q, want a", s.NextPending())
	}

	got, ok := st.Get(s.SessionID)
	if !ok || got.SessionID != s.SessionID {
		t.Fatal("Get did not return the created session")
	}
	if _, ok := st.Get("missing"); ok {
		t.Error("Get(missing) = ok, want miss")
	}
}

func TestSessionTransitions(t *testing.T) {
	st := NewSessionStore(time.Hour)
	s := newTestSession(st, 2)

	if _, err := st.Transition(s.SessionID, "a", parser.ReviewSubmitted); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if s.PendingCount() != 1 {
		t.Errorf("PendingCount = %d, want 1", s.PendingCount())
	}
	if s.NextPending() != "b" {
		t.Errorf("NextPending = %q, want b", s.NextPending())
	}

	// terminal statuses cannot transition again
	_, err := st.Transition(s.SessionID, "a", parser.ReviewCancelled)
	if code := fiberStatus(t, err); code != fiber.StatusConflict {
		t.Errorf("re-transition status = %d, want 409", code)
	}

	// only submitted and cancelled are valid targets
	_, err = st.Transition(s.SessionID, "b", parser.ReviewPending)
	if code := fiberStatus(t, err); code != fiber.StatusBadRequest {
		t.Errorf("invalid target status = %d, want 400", code)
	}

	_, err = st.Transition("missing", "a", parser.ReviewSubmitted)
	if code := fiberStatus(t, err); code != fiber.StatusNotFound {
		t.Errorf("missing session status = %d, want 404", code)
	}

	_, err = st.Transition(s.SessionID, "zz", parser.ReviewSubmitted)
	if code := fiberStatus(t, err); code != fiber.StatusNotFound {
		t.Errorf("missing item status = %d, want 404", code)
	}

	if _, err := st.Transition(s.SessionID, "b", parser.ReviewCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if s.PendingCount() != 0 || s.NextPending() != "" {
		t.Errorf("session should be drained, pending=%d next=%q", s.PendingCount(), s.NextPending())
	}
}

func TestSessionItemLookup(t *testing.T) {
	st := NewSessionStore(time.Hour)
	s := newTestSession(st, 1)

	_, item, err := st.Item(s.SessionID, "a")
	if err != nil {
		t.Fatalf("Item: %v", err)
	}
	if item.TempID != "a" {
		t.Errorf("TempID = %q, want a", item.TempID)
	}

	_, _, err = st.Item(s.SessionID, "zz")
	if code := fiberStatus(t, err); code != fiber.StatusNotFound {
		t.Errorf("missing item status = %d, want 404", code)
	}
}

func TestSessionClaim(t *testing.T) {
	st := NewSessionStore(time.Hour)
	s := newTestSession(st, 2)

	if _, item, err := st.Claim(s.SessionID, "a"); err != nil {
		t.Fatalf("claim: %v", err)
	} else if item.Status != parser.ReviewSubmitting {
		t.Errorf("claimed status = %q, want submitting", item.Status)
	}

	// a second claim on the same item conflicts
	_, _, err := st.Claim(s.SessionID, "a")
	if code := fiberStatus(t, err); code != fiber.StatusConflict {
		t.Errorf("double claim status = %d, want 409", code)
	}

	// a claimed item cannot be cancelled out from under its submitter
	_, err = st.Transition(s.SessionID, "a", parser.ReviewCancelled)
	if code := fiberStatus(t, err); code != fiber.StatusConflict {
		t.Errorf("cancel during claim status = %d, want 409", code)
	}

	// release puts the item back, then a fresh claim succeeds
	st.Release(s.SessionID, "a")
	if _, _, err := st.Claim(s.SessionID, "a"); err != nil {
		t.Fatalf("re-claim after release: %v", err)
	}

	// finalizing the claim is terminal; release is then a no-op
	if _, err := st.Transition(s.SessionID, "a", parser.ReviewSubmitted); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	st.Release(s.SessionID, "a")
	_, item, err := st.Item(s.SessionID, "a")
	if err != nil {
		t.Fatalf("Item: %v", err)
	}
	if item.Status != parser.ReviewSubmitted {
		t.Errorf("status after release = %q, want submitted", item.Status)
	}
}

func TestSessionClaimRace(t *testing.T) {
	st := NewSessionStore(time.Hour)
	s := newTestSession(st, 1)

	const workers = 16
	var wins int32
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, _, err := st.Claim(s.SessionID, "a"); err == nil {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("claim winners = %d, want 1", wins)
	}
}

func TestSessionExpiresAtReadTime(t *testing.T) {
	st := NewSessionStore(time.Nanosecond)
	s := newTestSession(st, 1)

	// no sweeper has run; reads must still treat the session as gone
	time.Sleep(time.Millisecond)
	if _, ok := st.Get(s.SessionID); ok {
		t.Error("Get returned an expired session")
	}
	_, _, err := st.Item(s.SessionID, "a")
	if code := fiberStatus(t, err); code != fiber.StatusNotFound {
		t.Errorf("Item on expired session status = %d, want 404", code)
	}
	_, _, err = st.Claim(s.SessionID, "a")
	if code := fiberStatus(t, err); code != fiber.StatusNotFound {
		t.Errorf("Claim on expired session status = %d, want 404", code)
	}
	_, err = st.Transition(s.SessionID, "a", parser.ReviewSubmitted)
	if code := fiberStatus(t, err); code != fiber.StatusNotFound {
		t.Errorf("Transition on expired session status = %d, want 404", code)
	}
}

func TestSessionCleanupExpired(t *testing.T) {
	st := NewSessionStore(time.Nanosecond)
	s := newTestSession(st, 1)

	time.Sleep(time.Millisecond)
	if n := st.CleanupExpired(); n != 1 {
		t.Fatalf("CleanupExpired = %d, want 1", n)
	}
	if _, ok := st.Get(s.SessionID); ok {
		t.Error("expired session still retrievable")
	}
}
