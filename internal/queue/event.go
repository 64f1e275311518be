// Package queue defines message payloads published to the broker for
// downstream consumers (notifications, analytics).
package queue

// AccountRegisteredEvent is published when a new account is created.
type AccountRegisteredEvent struct {
	UserID     uint64 `json:"user_id"`
	Username   string `json:"username"`
	Login      string `json:"login"`
	Speciality string `json:"speciality"`
	Role       string `json:"role"`
	CreatedAt  string `json:"created_at"`
}

// StatusChangedEvent is published when an account flips its presence
// flag.
type StatusChangedEvent struct {
	UserID    uint64 `json:"user_id"`
	IsOnline  bool   `json:"is_online"`
	ChangedAt string `json:"changed_at"`
}
