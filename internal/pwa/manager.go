package pwa

import (
	"context"
	"sync"
)

// Manager keys install sessions by visitor id so the HTTP layer can route
// platform signals to the right session. Sessions live until Close.
type Manager struct {
	mu      sync.Mutex
	entries map[string]*managed
}

type managed struct {
	session *Session
	prompt  *DeferredPrompt
}

func NewManager() *Manager {
	return &Manager{entries: map[string]*managed{}}
}

func (m *Manager) get(id string, standalone bool) *managed {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		e = &managed{session: NewSession(standalone)}
		m.entries[id] = e
	}
	return e
}

func (m *Manager) State(id string) InstallState {
	return m.get(id, false).session.State()
}

// CaptureReadiness registers a fresh deferred prompt for the session,
// replacing any unconsumed one.
func (m *Manager) CaptureReadiness(id string, standalone bool) {
	e := m.get(id, standalone)

	p := NewDeferredPrompt()

	m.mu.Lock()
	e.prompt = p
	m.mu.Unlock()

	e.session.CaptureReadiness(p)
}

// Install suspends the caller until ResolveChoice delivers the outcome.
func (m *Manager) Install(ctx context.Context, id string) (Outcome, error) {
	return m.get(id, false).session.Install(ctx)
}

func (m *Manager) ResolveChoice(id string, o Outcome) {
	e := m.get(id, false)

	m.mu.Lock()
	p := e.prompt
	e.prompt = nil
	m.mu.Unlock()

	if p == nil {
		return
	}

	// A choice with no install suspended on the prompt would park the
	// outcome inside the stored handle, and the next Install would return
	// it instantly without ever showing a prompt. Drop the handle instead.
	if e.session.State() != StatePrompted {
		e.session.DiscardHandle()
		return
	}

	p.Resolve(o)
}

func (m *Manager) MarkInstalled(id string) {
	m.get(id, false).session.MarkInstalled()
}

func (m *Manager) Close(id string) {
	m.mu.Lock()
	e, ok := m.entries[id]
	delete(m.entries, id)
	m.mu.Unlock()

	if ok {
		e.session.Close()
	}
}

func (m *Manager) CloseAll() {
	m.mu.Lock()
	entries := m.entries
	m.entries = map[string]*managed{}
	m.mu.Unlock()

	for _, e := range entries {
		e.session.Close()
	}
}
