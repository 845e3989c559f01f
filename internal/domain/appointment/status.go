package appointment

import (
	"github.com/charmcut/charmcut-api/internal/domain/actor"
	"github.com/charmcut/charmcut-api/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusFinalized  Status = "finalized"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress,
		StatusFinalized, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Terminal states admit no further transition.
func (s Status) Terminal() bool {
	switch s {
	case StatusFinalized, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Transition table
// ===============================

// transitions maps (from, to) to the roles allowed to perform the move.
// no_show is handled separately: any non-terminal state, staff only.
var transitions = map[Status]map[Status][]actor.Role{
	StatusPending: {
		StatusConfirmed: {actor.RoleBarber, actor.RoleAdmin},
		StatusCancelled: {actor.RoleBarber, actor.RoleAdmin, actor.RoleClient},
	},
	StatusConfirmed: {
		StatusInProgress: {actor.RoleBarber, actor.RoleAdmin},
		StatusFinalized:  {actor.RoleBarber, actor.RoleAdmin},
		StatusCancelled:  {actor.RoleBarber, actor.RoleAdmin},
	},
	StatusInProgress: {
		StatusFinalized: {actor.RoleBarber, actor.RoleAdmin},
	},
}

// CanTransition validates a status move for the given role. The terminal
// check runs first: the store itself does not enforce it, so a terminal
// appointment must never be re-opened here.
func CanTransition(from, to Status, role actor.Role) error {
	if !to.Valid() {
		return httperr.ErrBusiness("invalid_status")
	}

	if from.Terminal() {
		return httperr.ErrBusiness("invalid_transition")
	}

	if to == StatusNoShow {
		if role != actor.RoleBarber && role != actor.RoleAdmin {
			return httperr.ErrBusiness("actor_not_allowed")
		}
		return nil
	}

	allowed, ok := transitions[from][to]
	if !ok {
		return httperr.ErrBusiness("invalid_transition")
	}

	for _, r := range allowed {
		if r == role {
			return nil
		}
	}
	return httperr.ErrBusiness("actor_not_allowed")
}
