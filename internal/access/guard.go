// Package access decides what a caller may see. Guards are pure functions of
// the session state and the requested path so the HTTP middleware and the
// navigation endpoint give the same answers.
package access

import (
	"strings"

	"github.com/yourusername/estate-service/internal/models"
)

const (
	PathLogin   = "/login"
	PathProfile = "/profile"
	PathHome    = "/home"

	// ViewBlocked is the overlay rendered in place of any view for a
	// blocked caller
	ViewBlocked = "blocked"
)

// Requirement composes the three guard kinds. A zero MinRole means no tier
// check.
type Requirement struct {
	Auth    bool
	Profile bool
	MinRole models.Role
}

// Decision is the outcome for one path. Exactly one of View and Redirect is
// set.
type Decision struct {
	View     string `json:"view,omitempty"`
	Redirect string `json:"redirect,omitempty"`
	Blocked  bool   `json:"blocked"`
}

// Allowed reports whether the requested view renders as is
func (d Decision) Allowed() bool {
	return d.Redirect == "" && !d.Blocked
}

// IsDashboard reports whether the blocked overlay is lifted for path
func IsDashboard(path string) bool {
	return strings.HasSuffix(strings.TrimRight(path, "/"), "/dashboard")
}

// Evaluate applies, in order: authentication, the blocked overlay,
// profile completeness and role tier.
func Evaluate(state models.SessionState, path string, req Requirement) Decision {
	if req.Auth && !state.IsAuthenticated {
		return Decision{Redirect: PathLogin}
	}

	if state.IsAuthenticated && state.IsBlocked && !IsDashboard(path) {
		return Decision{View: ViewBlocked, Blocked: true}
	}

	if req.Profile && !state.HasCompleteProfile {
		return Decision{Redirect: PathProfile}
	}

	if req.MinRole != "" && !state.Role.AtLeast(req.MinRole) {
		return Decision{Redirect: PathHome}
	}

	return Decision{View: path}
}

// Route binds a UI path prefix to its requirement
type Route struct {
	Path        string
	Requirement Requirement
}

var (
	authed   = Requirement{Auth: true}
	complete = Requirement{Auth: true, Profile: true}
)

// Routes mirrors the UI router
var Routes = []Route{
	{Path: "/", Requirement: Requirement{}},
	{Path: PathLogin, Requirement: Requirement{}},
	{Path: PathProfile, Requirement: authed},
	{Path: "/support", Requirement: authed},
	{Path: PathHome, Requirement: complete},
	{Path: "/properties", Requirement: complete},
	{Path: "/my-properties", Requirement: complete},
	{Path: "/favorites", Requirement: complete},
	{Path: "/auctions", Requirement: complete},
	{Path: "/request-role", Requirement: complete},
	{Path: "/broker/dashboard", Requirement: Requirement{Auth: true, Profile: true, MinRole: models.RoleBroker}},
	{Path: "/my-auctions", Requirement: Requirement{Auth: true, Profile: true, MinRole: models.RoleAdmin}},
	{Path: "/admin", Requirement: Requirement{Auth: true, Profile: true, MinRole: models.RoleAdmin}},
	{Path: "/superadmin", Requirement: Requirement{Auth: true, Profile: true, MinRole: models.RoleSuperAdmin}},
}

// RequirementFor returns the requirement of the longest route prefix
// matching path. Unknown paths require authentication.
func RequirementFor(path string) Requirement {
	path = "/" + strings.Trim(path, "/")
	best := -1
	req := authed
	for _, r := range Routes {
		if !matches(path, r.Path) {
			continue
		}
		if len(r.Path) > best {
			best = len(r.Path)
			req = r.Requirement
		}
	}
	return req
}

func matches(path, prefix string) bool {
	if prefix == "/" {
		return path == "/"
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// Navigate evaluates path against the route table
func Navigate(state models.SessionState, path string) Decision {
	return Evaluate(state, path, RequirementFor(path))
}
