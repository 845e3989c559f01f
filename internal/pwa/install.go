package pwa

import (
	"context"
	"sync"

	"github.com/charmcut/charmcut-api/internal/httperr"
)

// ======================================================
// Install-readiness lifecycle
// ======================================================

type InstallState string

const (
	StateUnavailable InstallState = "unavailable"
	StateInstallable InstallState = "installable"
	StatePrompted    InstallState = "prompted"
	StateInstalled   InstallState = "installed"
)

type Outcome string

const (
	OutcomeAccepted Outcome = "accepted"
	OutcomeDeclined Outcome = "declined"
)

// ErrUnavailable is returned when Install runs with no captured handle.
var ErrUnavailable = httperr.ErrBusiness("install_unavailable")

// PromptHandle is the single-shot awaitable the platform hands over with its
// readiness signal. Prompt blocks until the user's choice resolves.
type PromptHandle interface {
	Prompt(ctx context.Context) (Outcome, error)
}

// Session owns the install state for one browser session. It is constructed
// explicitly and torn down with Close; there is no package-level state.
type Session struct {
	mu sync.Mutex

	state       InstallState
	handle      PromptHandle
	lastOutcome Outcome
	closed      bool
}

// NewSession starts at unavailable, or directly at installed when the
// platform reports the app already runs standalone.
func NewSession(standalone bool) *Session {
	s := &Session{state: StateUnavailable}
	if standalone {
		s.state = StateInstalled
	}
	return s
}

func (s *Session) State() InstallState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) LastOutcome() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastOutcome
}

// CaptureReadiness stores the platform's prompt handle. A second signal
// before consumption replaces the stored handle. Ignored once installed or
// closed.
func (s *Session) CaptureReadiness(h PromptHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state == StateInstalled {
		return
	}

	s.handle = h
	s.state = StateInstallable
}

// Install triggers the platform prompt and suspends until the user's choice
// resolves. The handle is single-use: it is discarded whatever the outcome,
// and the state returns to unavailable unless an installed signal arrived
// mid-prompt.
func (s *Session) Install(ctx context.Context) (Outcome, error) {
	s.mu.Lock()
	if s.closed || s.handle == nil {
		s.mu.Unlock()
		return "", ErrUnavailable
	}

	h := s.handle
	s.handle = nil
	s.state = StatePrompted
	s.mu.Unlock()

	outcome, err := h.Prompt(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateInstalled {
		// appinstalled won the race, keep the terminal state.
		return outcome, err
	}

	s.state = StateUnavailable
	if err != nil {
		// Abandoned prompt: the handle is already gone, nothing to revive.
		return "", err
	}

	s.lastOutcome = outcome
	return outcome, nil
}

// DiscardHandle drops an unconsumed handle, as when the user's choice lands
// with no install suspended on the prompt.
func (s *Session) DiscardHandle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.handle = nil
	if s.state == StateInstallable {
		s.state = StateUnavailable
	}
}

// MarkInstalled handles the platform's install-confirmation signal. Terminal
// for the session, regardless of how installation was triggered.
func (s *Session) MarkInstalled() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateInstalled
	s.handle = nil
}

// Close tears the session down and drops the handle.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.handle = nil
	if s.state != StateInstalled {
		s.state = StateUnavailable
	}
}
