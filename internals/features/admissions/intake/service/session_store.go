// file: internals/features/admissions/intake/service/session_store.go
package service

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"qcm_backend/internals/features/admissions/intake/parser"
)

// IntakeSession holds one batch paste under review. Sessions live in memory
// only: cancelling an item or letting the session expire discards it.
type IntakeSession struct {
	SessionID string                      `json:"session_id"`
	ClassCode string                      `json:"class_code,omitempty"`
	Items     []*parser.ParsedApplication `json:"items"`
	CreatedAt time.Time                   `json:"created_at"`
}

// PendingCount returns how many items still await review.
func (s *IntakeSession) PendingCount() int {
	n := 0
	for _, it := range s.Items {
		if it.Status == parser.ReviewPending {
			n++
		}
	}
	return n
}

// NextPending returns the temp id of the first pending item, or "".
func (s *IntakeSession) NextPending() string {
	for _, it := range s.Items {
		if it.Status == parser.ReviewPending {
			return it.TempID
		}
	}
	return ""
}

// SessionStore is a mutex-guarded in-memory map of intake sessions.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*IntakeSession
	ttl      time.Duration
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &SessionStore{
		sessions: make(map[string]*IntakeSession),
		ttl:      ttl,
	}
}

func (st *SessionStore) Create(classCode string, items []*parser.ParsedApplication) *IntakeSession {
	s := &IntakeSession{
		SessionID: uuid.NewString(),
		ClassCode: classCode,
		Items:     items,
		CreatedAt: time.Now(),
	}
	st.mu.Lock()
	st.sessions[s.SessionID] = s
	st.mu.Unlock()
	return s
}

// expired reports whether a session has outlived the TTL. Callers hold the
// store lock; removal is left to the cleanup scheduler.
func (st *SessionStore) expired(s *IntakeSession) bool {
	return time.Since(s.CreatedAt) >= st.ttl
}

func (st *SessionStore) Get(sessionID string) (*IntakeSession, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[sessionID]
	if !ok || st.expired(s) {
		return nil, false
	}
	return s, true
}

// Item finds one parsed application inside a session.
func (st *SessionStore) Item(sessionID, tempID string) (*IntakeSession, *parser.ParsedApplication, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[sessionID]
	if !ok || st.expired(s) {
		return nil, nil, fiber.NewError(fiber.StatusNotFound, "Intake session not found or expired")
	}
	for _, it := range s.Items {
		if it.TempID == tempID {
			return s, it, nil
		}
	}
	return nil, nil, fiber.NewError(fiber.StatusNotFound, "Application not found in this session")
}

// Claim atomically takes a pending item for submission by moving it to
// submitting under the write lock. A second caller racing on the same item
// gets a conflict instead of a double submission.
func (st *SessionStore) Claim(sessionID, tempID string) (*IntakeSession, *parser.ParsedApplication, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[sessionID]
	if !ok || st.expired(s) {
		return nil, nil, fiber.NewError(fiber.StatusNotFound, "Intake session not found or expired")
	}
	for _, it := range s.Items {
		if it.TempID != tempID {
			continue
		}
		if it.Status != parser.ReviewPending {
			return nil, nil, fiber.NewError(fiber.StatusConflict, "Item already "+it.Status)
		}
		it.Status = parser.ReviewSubmitting
		return s, it, nil
	}
	return nil, nil, fiber.NewError(fiber.StatusNotFound, "Application not found in this session")
}

// Release returns a claimed item to pending. No-op once the item has reached
// a terminal status, so it is safe to defer after a Claim.
func (st *SessionStore) Release(sessionID, tempID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[sessionID]
	if !ok {
		return
	}
	for _, it := range s.Items {
		if it.TempID == tempID && it.Status == parser.ReviewSubmitting {
			it.Status = parser.ReviewPending
			return
		}
	}
}

// Transition moves an item to a terminal status. Submitted and cancelled are
// both terminal; repeated transitions fail. Submitted is reached from a
// claim, cancelled only from pending: an item mid-submission cannot be
// cancelled out from under its submitter.
func (st *SessionStore) Transition(sessionID, tempID, to string) (*IntakeSession, error) {
	if to != parser.ReviewSubmitted && to != parser.ReviewCancelled {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid status transition")
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[sessionID]
	if !ok || st.expired(s) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Intake session not found or expired")
	}
	for _, it := range s.Items {
		if it.TempID != tempID {
			continue
		}
		switch {
		case it.Status == parser.ReviewPending:
		case it.Status == parser.ReviewSubmitting && to == parser.ReviewSubmitted:
		default:
			return nil, fiber.NewError(fiber.StatusConflict, "Item already "+it.Status)
		}
		it.Status = to
		return s, nil
	}
	return nil, fiber.NewError(fiber.StatusNotFound, "Application not found in this session")
}

// CleanupExpired drops sessions older than the TTL and reports how many.
func (st *SessionStore) CleanupExpired() int {
	cutoff := time.Now().Add(-st.ttl)
	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.sessions {
		if s.CreatedAt.Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// DefaultStore is the process-wide store used by the intake controller.
var DefaultStore = NewSessionStore(sessionTTLFromEnv())

func sessionTTLFromEnv() time.Duration {
	hours := 2
	if val := os.Getenv("INTAKE_SESSION_TTL_HOURS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			hours = parsed
		}
	}
	return time.Duration(hours) * time.Hour
}

// StartSessionCleanupScheduler evicts expired intake sessions periodically.
func StartSessionCleanupScheduler() {
	go func() {
		for {
			time.Sleep(15 * time.Minute)
			if n := DefaultStore.CleanupExpired(); n > 0 {
				log.Printf("[CLEANUP] %d expired intake session(s) removed", n)
			}
		}
	}()
}
