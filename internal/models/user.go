package models

import (
	"strings"
	"time"
)

// User represents a profile document in the users collection
type User struct {
	UserID    string    `firestore:"userId" json:"userId"`
	Name      string    `firestore:"name" json:"name"`
	Email     string    `firestore:"email" json:"email"`
	Mobile    string    `firestore:"mobile" json:"mobile"`
	PhotoURL  string    `firestore:"photoURL" json:"photoURL"`
	Role      Role      `firestore:"role" json:"role"`
	Blocked   bool      `firestore:"blocked" json:"blocked"`
	FCMToken  string    `firestore:"fcmToken" json:"-"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// HasCompleteProfile reports whether both name and mobile are filled in
func (u *User) HasCompleteProfile() bool {
	if u == nil {
		return false
	}
	return strings.TrimSpace(u.Name) != "" && strings.TrimSpace(u.Mobile) != ""
}

// Identity is the authenticated caller as reported by the identity provider
type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

// SessionState is the derived view of who the caller is and what they can do
type SessionState struct {
	Identity           *Identity `json:"identity,omitempty"`
	Profile            *User     `json:"profile,omitempty"`
	Role               Role      `json:"role,omitempty"`
	IsAuthenticated    bool      `json:"isAuthenticated"`
	IsBlocked          bool      `json:"isBlocked"`
	HasCompleteProfile bool      `json:"hasCompleteProfile"`
	IsAdmin            bool      `json:"isAdmin"`
	IsSuperAdmin       bool      `json:"isSuperAdmin"`
	IsBroker           bool      `json:"isBroker"`
}

// SignInRequest carries the identity provider's ID token
type SignInRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// SignInResponse represents the session creation response
type SignInResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	State     SessionState `json:"state"`
}

// UpdateProfileRequest represents the profile completion/edit body
type UpdateProfileRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=80"`
	Mobile   string `json:"mobile" binding:"required"`
	PhotoURL string `json:"photoURL" binding:"omitempty,url"`
}

// UpdateFCMTokenRequest represents the FCM token update request
type UpdateFCMTokenRequest struct {
	FCMToken string `json:"fcmToken" binding:"required"`
}

// BlockUserRequest represents the admin block toggle body
type BlockUserRequest struct {
	Blocked bool `json:"blocked"`
}

// SupportRequest is a message a caller (blocked or not) sends to the admins
type SupportRequest struct {
	RequestID string    `firestore:"requestId" json:"requestId"`
	UserID    string    `firestore:"userId" json:"userId"`
	Email     string    `firestore:"email" json:"email"`
	Message   string    `firestore:"message" json:"message"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

// SupportRequestBody represents the contact-support request body
type SupportRequestBody struct {
	Message string `json:"message" binding:"required,min=5,max=2000"`
}

// DashboardStats summarises the admin dashboard counters
type DashboardStats struct {
	UsersByRole         map[Role]int `json:"usersByRole"`
	BlockedUsers        int          `json:"blockedUsers"`
	PendingRoleRequests int          `json:"pendingRoleRequests"`
	ActiveAuctions      int          `json:"activeAuctions"`
	ActiveProperties    int          `json:"activeProperties"`
}
