package actor

// Role tags every authenticated session. All lifecycle operations check it
// against the transition table instead of having one login flow per role.
type Role string

const (
	RoleClient Role = "client"
	RoleBarber Role = "barber"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleBarber, RoleAdmin:
		return true
	}
	return false
}

// Actor is the {identity, role} pair produced by the auth boundary.
type Actor struct {
	ID   uint
	Role Role
}

// Staff covers the roles allowed to progress an appointment.
func (a Actor) Staff() bool {
	return a.Role == RoleBarber || a.Role == RoleAdmin
}
