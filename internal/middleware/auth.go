package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/estate-service/internal/access"
	"github.com/yourusername/estate-service/internal/models"
	"github.com/yourusername/estate-service/internal/services"
	"github.com/yourusername/estate-service/pkg/response"
)

const (
	SessionKey = "session"
	UserIDKey  = "userID"
	StateKey   = "state"
)

// SessionResolver maps a bearer token onto a live session
type SessionResolver interface {
	Resolve(token string) (*services.Session, error)
}

// RequireSession validates the bearer token and stores the session, the
// caller's ID and a snapshot of the derived state in the context
func RequireSession(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			denyAuth(c, "authorization header required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			denyAuth(c, "invalid authorization header format")
			return
		}

		session, err := resolver.Resolve(parts[1])
		if err != nil {
			denyAuth(c, "invalid or expired session")
			return
		}

		c.Set(SessionKey, session)
		c.Set(UserIDKey, session.Identity().UID)
		c.Set(StateKey, session.State())
		c.Next()
	}
}

func denyAuth(c *gin.Context, message string) {
	response.ErrorWithDetails(c, http.StatusUnauthorized, "UNAUTHORIZED", message, gin.H{"redirect": access.PathLogin})
	c.Abort()
}

// RejectBlocked stops blocked callers. Routes a blocked caller still needs
// (sign-out, support, the admin dashboard) are mounted without it.
func RejectBlocked() gin.HandlerFunc {
	return func(c *gin.Context) {
		if State(c).IsBlocked {
			response.Error(c, http.StatusForbidden, "USER_BLOCKED", "Your account has been blocked. Please contact support.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireProfile requires a name and mobile number on the profile
func RequireProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !State(c).HasCompleteProfile {
			response.ErrorWithDetails(c, http.StatusForbidden, "PROFILE_INCOMPLETE", "Complete your profile to continue", gin.H{"redirect": access.PathProfile})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole requires the caller's tier to be min or above
func RequireRole(min models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !State(c).Role.AtLeast(min) {
			response.ErrorWithDetails(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions", gin.H{"redirect": access.PathHome})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminOnly requires admin or superadmin
func AdminOnly() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin)
}

// Session returns the session set by RequireSession, or nil
func Session(c *gin.Context) *services.Session {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*services.Session)
	return s
}

// State returns the state snapshot set by RequireSession. Without a
// session it is the unauthenticated zero state.
func State(c *gin.Context) models.SessionState {
	v, ok := c.Get(StateKey)
	if !ok {
		return models.SessionState{}
	}
	s, _ := v.(models.SessionState)
	return s
}

// Actor returns the caller for service calls
func Actor(c *gin.Context) services.Actor {
	return services.ActorFromState(State(c))
}

// OptionalSession behaves like RequireSession when a valid bearer token is
// present and lets the request through unauthenticated otherwise
func OptionalSession(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token != "" {
			if session, err := resolver.Resolve(token); err == nil {
				c.Set(SessionKey, session)
				c.Set(UserIDKey, session.Identity().UID)
				c.Set(StateKey, session.State())
			}
		}
		c.Next()
	}
}
