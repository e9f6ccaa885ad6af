package models

import "time"

// RequestStatus represents the status of a role request
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// RoleRequest represents a user's ask to be promoted to a higher tier
type RoleRequest struct {
	RequestID     string        `firestore:"requestId" json:"requestId"`
	UserID        string        `firestore:"userId" json:"userId"`
	RequestedRole Role          `firestore:"requestedRole" json:"requestedRole"`
	Status        RequestStatus `firestore:"status" json:"status"`
	CreatedAt     time.Time     `firestore:"createdAt" json:"createdAt"`
	ProcessedAt   *time.Time    `firestore:"processedAt" json:"processedAt,omitempty"`
	ProcessedBy   string        `firestore:"processedBy" json:"processedBy,omitempty"`
}

// RequestUser is the slice of the requester's profile shown next to a request
type RequestUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// RoleRequestView is a role request joined with its requester
type RoleRequestView struct {
	RoleRequest
	User RequestUser `json:"user"`
}

// SubmitRoleRequestBody represents the body for requesting a role
type SubmitRoleRequestBody struct {
	RequestedRole Role `json:"requestedRole" binding:"required,oneof=broker admin"`
}

// ProcessRoleRequestBody represents the approver's decision
type ProcessRoleRequestBody struct {
	Status RequestStatus `json:"status" binding:"required,oneof=approved rejected"`
}

// CheckRoleRequestResponse represents the duplicate pre-check response
type CheckRoleRequestResponse struct {
	Exists bool `json:"exists"`
}
