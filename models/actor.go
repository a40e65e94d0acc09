package models

// Role determines which booking actions an actor may invoke. The role is
// asserted by the upstream auth gateway; this service only authorizes.
type Role string

const (
	RoleTutor   Role = "tutor"
	RoleStudent Role = "student"
)

// Actor is the opaque identity attached to every authenticated request.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}
