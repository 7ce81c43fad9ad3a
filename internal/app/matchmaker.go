package app

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Roulette/internal/core"
	"github.com/dkeye/Roulette/internal/domain"
)

type waiter struct {
	Conn  domain.ConnID
	Since time.Time
}

// Matchmaker owns the per-mode waiting queues and the session table.
// Both live under one mutex so the "at most one session or waiting
// entry per connection" invariant holds under concurrent arrivals and
// departures. Critical sections never perform I/O; callers emit
// notifications after the method returns.
type Matchmaker struct {
	mu       sync.Mutex
	queues   map[domain.Mode][]waiter
	waiting  map[domain.ConnID]domain.Mode
	sessions map[domain.SessionID]*domain.Session
	byConn   map[domain.ConnID]domain.SessionID

	now func() time.Time
}

func NewMatchmaker() *Matchmaker {
	m := &Matchmaker{
		queues:   make(map[domain.Mode][]waiter),
		waiting:  make(map[domain.ConnID]domain.Mode),
		sessions: make(map[domain.SessionID]*domain.Session),
		byConn:   make(map[domain.ConnID]domain.SessionID),
		now:      time.Now,
	}
	for _, mode := range domain.Modes() {
		m.queues[mode] = nil
	}
	return m
}

// RequestMatch pairs cid with the oldest waiter in mode, or enqueues it
// when nobody is waiting. A nil session with a nil error means the
// caller is now pending; the matched event arrives when a partner shows
// up. Connections that are already waiting or already paired are
// rejected without touching any state.
func (m *Matchmaker) RequestMatch(cid domain.ConnID, mode domain.Mode) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byConn[cid]; ok {
		return nil, core.ErrAlreadyQueuedOrPaired
	}
	if _, ok := m.waiting[cid]; ok {
		return nil, core.ErrAlreadyQueuedOrPaired
	}

	q := m.queues[mode]
	if len(q) == 0 {
		m.queues[mode] = append(q, waiter{Conn: cid, Since: m.now()})
		m.waiting[cid] = mode
		log.Info().Str("module", "app.matchmaker").Str("conn", string(cid)).
			Str("mode", string(mode)).Int("queue_len", len(m.queues[mode])).Msg("enqueued")
		return nil, nil
	}

	// Strict FIFO: the head waited longest.
	head := q[0]
	m.queues[mode] = q[1:]
	delete(m.waiting, head.Conn)

	sess := domain.NewSession(cid, head.Conn, mode, m.now())
	m.sessions[sess.ID] = sess
	m.byConn[sess.A] = sess.ID
	m.byConn[sess.B] = sess.ID
	log.Info().Str("module", "app.matchmaker").Str("session", string(sess.ID)).
		Str("a", string(sess.A)).Str("b", string(sess.B)).
		Str("mode", string(mode)).Int("sessions", len(m.sessions)).Msg("matched")
	return sess, nil
}

func (m *Matchmaker) Get(sid domain.SessionID) (*domain.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[sid]
	return sess, ok
}

// SessionOf is the reverse lookup disconnect handling relies on.
func (m *Matchmaker) SessionOf(cid domain.ConnID) (*domain.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sid, ok := m.byConn[cid]
	if !ok {
		return nil, false
	}
	sess, ok := m.sessions[sid]
	return sess, ok
}

// Destroy removes the session and both reverse-index entries. It
// returns the removed record so the caller can notify the members.
func (m *Matchmaker) Destroy(sid domain.SessionID) (*domain.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.destroyLocked(sid)
}

func (m *Matchmaker) destroyLocked(sid domain.SessionID) (*domain.Session, bool) {
	sess, ok := m.sessions[sid]
	if !ok {
		return nil, false
	}
	delete(m.sessions, sid)
	delete(m.byConn, sess.A)
	delete(m.byConn, sess.B)
	log.Info().Str("module", "app.matchmaker").Str("session", string(sid)).
		Int("sessions", len(m.sessions)).Msg("session destroyed")
	return sess, true
}

// RemoveWaiter drops cid from whichever queue holds it. A connection
// can only wait in one queue, but scanning every mode is the simplest
// correct cleanup.
func (m *Matchmaker) RemoveWaiter(cid domain.ConnID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeWaiterLocked(cid)
}

func (m *Matchmaker) removeWaiterLocked(cid domain.ConnID) bool {
	if _, ok := m.waiting[cid]; !ok {
		return false
	}
	delete(m.waiting, cid)
	for mode, q := range m.queues {
		for i, w := range q {
			if w.Conn == cid {
				m.queues[mode] = append(q[:i:i], q[i+1:]...)
				log.Info().Str("module", "app.matchmaker").Str("conn", string(cid)).
					Str("mode", string(mode)).Msg("removed waiter")
				return true
			}
		}
	}
	return false
}

// Disconnect runs the full cleanup for a gone connection under a single
// lock acquisition: drop its waiting entry and destroy any session it
// owns. The destroyed session, if any, is returned so the survivor can
// be notified. Owning neither is a no-op, not an error.
func (m *Matchmaker) Disconnect(cid domain.ConnID) (*domain.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeWaiterLocked(cid)
	if sid, ok := m.byConn[cid]; ok {
		return m.destroyLocked(sid)
	}
	return nil, false
}

// SweepStale destroys every session older than maxAge and returns the
// removed records for notification. Sessions within the threshold are
// untouched no matter how idle they are; only absolute age counts.
func (m *Matchmaker) SweepStale(maxAge time.Duration) []*domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	var stale []*domain.Session
	for sid, sess := range m.sessions {
		if sess.Age(now) > maxAge {
			stale = append(stale, sess)
			m.destroyLocked(sid)
		}
	}
	return stale
}

func (m *Matchmaker) WaitingCount(mode domain.Mode) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queues[mode])
}

func (m *Matchmaker) SessionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
