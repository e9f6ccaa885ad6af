// Package queue carries domain events between the API and background workers
// over RabbitMQ.
package queue

import "time"

const RoleRequestProcessedQueue = "role_request.processed"

// RoleRequestProcessedEvent is published after an admin approves or rejects a
// role request. It holds enough to notify the requester without another read
// of the request document.
type RoleRequestProcessedEvent struct {
	RequestID     string    `json:"requestId"`
	UserID        string    `json:"userId"`
	RequestedRole string    `json:"requestedRole"`
	Status        string    `json:"status"`
	ProcessedBy   string    `json:"processedBy"`
	ProcessedAt   time.Time `json:"processedAt"`
}
