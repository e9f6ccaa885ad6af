package services

import "github.com/yourusername/estate-service/internal/models"

// Actor is the caller of a service operation
type Actor struct {
	UserID string
	Role   models.Role
}

// ActorFromState builds an Actor from a session's derived state
func ActorFromState(state models.SessionState) Actor {
	a := Actor{Role: state.Role}
	if state.Identity != nil {
		a.UserID = state.Identity.UID
	}
	if !a.Role.Valid() {
		a.Role = models.RoleUser
	}
	return a
}

func (a Actor) IsAdmin() bool {
	return a.Role.AtLeast(models.RoleAdmin)
}
