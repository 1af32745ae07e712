// Package session keeps calculator stacks alive between HTTP requests.
package session

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/njchilds90/gopoly"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrTooMany  = errors.New("too many sessions")
)

// Session is one calculator with its own stack and line counter.
type Session struct {
	ID string

	mu       sync.Mutex
	calc     *gopoly.Calculator
	lastUsed time.Time
}

// Result is what one Exec call produced.
type Result struct {
	Output []string `json:"output"`
	Errors []string `json:"errors"`
	Depth  int      `json:"depth"`
}

// Exec runs lines through the session calculator in order. Diagnostics are
// collected rather than stopping the batch, as on the command line.
func (s *Session) Exec(lines []string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out bytes.Buffer
	s.calc.SetOutput(&out)
	defer s.calc.SetOutput(nil)

	res := Result{Output: []string{}, Errors: []string{}}
	for _, line := range lines {
		if err := s.calc.Exec(line); err != nil {
			res.Errors = append(res.Errors, err.Error())
		}
	}
	if text := strings.TrimSuffix(out.String(), "\n"); text != "" {
		res.Output = strings.Split(text, "\n")
	}
	res.Depth = s.calc.Stack().Len()
	return res
}

// Store holds live sessions. Sessions unused for longer than the TTL are
// dropped by Sweep and are never returned by Get.
type Store struct {
	ttl time.Duration
	max int
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore(ttl time.Duration, max int) *Store {
	return &Store{
		ttl:      ttl,
		max:      max,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session with an empty stack.
func (st *Store) Create() (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.sweepLocked()
	if len(st.sessions) >= st.max {
		return nil, ErrTooMany
	}
	s := &Session{
		ID:       uuid.NewString(),
		calc:     gopoly.NewCalculator(nil),
		lastUsed: st.now(),
	}
	st.sessions[s.ID] = s
	return s, nil
}

// Get returns a live session and marks it as used.
func (st *Store) Get(id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok || st.expired(s) {
		delete(st.sessions, id)
		return nil, ErrNotFound
	}
	s.lastUsed = st.now()
	return s, nil
}

// Delete drops a session. A request already running on it still completes.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	_, ok := st.sessions[id]
	delete(st.sessions, id)
	return ok
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep drops expired sessions and reports how many went.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sweepLocked()
}

// Run sweeps every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			st.Sweep()
		}
	}
}

func (st *Store) expired(s *Session) bool { return st.now().Sub(s.lastUsed) > st.ttl }

func (st *Store) sweepLocked() int {
	n := 0
	for id, s := range st.sessions {
		if st.expired(s) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}
