package payment

import (
	"sync"

	paymentmodel "github.com/reyada-homecare/payments/internal/core/datamodel/payment"
)

type sessionState struct {
	current *paymentmodel.PaymentTransaction
	history []paymentmodel.PaymentTransaction
}

// SessionStore owns the per-session "current transaction" and the
// most-recent-first history. All access goes through the mutex so two
// in-flight payments for the same session cannot interleave writes.
// State lives in memory for the lifetime of the process only.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionState
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*sessionState),
	}
}

func (s *SessionStore) state(sessionID string) *sessionState {
	st, ok := s.sessions[sessionID]
	if !ok {
		st = &sessionState{}
		s.sessions[sessionID] = st
	}
	return st
}

// SetCurrent publishes the transaction as the session's current one, so a
// caller can observe the pending state before the gateway call finishes.
func (s *SessionStore) SetCurrent(sessionID string, tx *paymentmodel.PaymentTransaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := copyTransaction(tx)
	s.state(sessionID).current = &cp
}

// Current returns a copy of the session's current transaction, if any.
func (s *SessionStore) Current(sessionID string) (*paymentmodel.PaymentTransaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[sessionID]
	if !ok || st.current == nil {
		return nil, false
	}
	cp := copyTransaction(st.current)
	return &cp, true
}

// Prepend pushes a finalized transaction onto the session history,
// most recent first. History entries are never removed.
func (s *SessionStore) Prepend(sessionID string, tx *paymentmodel.PaymentTransaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(sessionID)
	st.history = append([]paymentmodel.PaymentTransaction{copyTransaction(tx)}, st.history...)
}

// History returns a copy of the session's transaction history.
func (s *SessionStore) History(sessionID string) []paymentmodel.PaymentTransaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	out := make([]paymentmodel.PaymentTransaction, len(st.history))
	for i := range st.history {
		out[i] = copyTransaction(&st.history[i])
	}
	return out
}

// Find returns a copy of the history entry with the given transaction id.
func (s *SessionStore) Find(sessionID, transactionID string) (*paymentmodel.PaymentTransaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	for i := range st.history {
		if st.history[i].ID == transactionID {
			cp := copyTransaction(&st.history[i])
			return &cp, true
		}
	}
	return nil, false
}

// Update mutates the matching history entry under the store lock and
// mirrors the change onto the current transaction when the ids match.
// Returns a copy of the updated entry, or false when the id is unknown.
func (s *SessionStore) Update(sessionID, transactionID string, fn func(*paymentmodel.PaymentTransaction)) (*paymentmodel.PaymentTransaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	for i := range st.history {
		if st.history[i].ID == transactionID {
			fn(&st.history[i])
			if st.current != nil && st.current.ID == transactionID {
				cp := copyTransaction(&st.history[i])
				st.current = &cp
			}
			out := copyTransaction(&st.history[i])
			return &out, true
		}
	}
	return nil, false
}

func copyTransaction(tx *paymentmodel.PaymentTransaction) paymentmodel.PaymentTransaction {
	cp := *tx
	cp.AuditTrail = make([]paymentmodel.AuditEntry, len(tx.AuditTrail))
	copy(cp.AuditTrail, tx.AuditTrail)
	if tx.Timeline.ProcessedAt != nil {
		t := *tx.Timeline.ProcessedAt
		cp.Timeline.ProcessedAt = &t
	}
	if tx.FailureReason != nil {
		r := *tx.FailureReason
		cp.FailureReason = &r
	}
	return cp
}
