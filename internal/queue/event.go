// Package queue defines message payloads exchanged over the message broker.
package queue

// PhotoSharedEvent is published when a user pushes a workout photo to
// the social feed. It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type PhotoSharedEvent struct {
	PhotoID   uint64 `json:"photo_id"`
	UserID    uint64 `json:"user_id"`
	Nickname  string `json:"nickname"`
	PhotoPath string `json:"photo_path"`
	TakenAt   string `json:"taken_at"`
	SharedAt  string `json:"shared_at"`
}
