package domain

import "time"

// LoginAttempt is an audit row written for every login outcome. It is never
// read back when deciding whether a login succeeds.
type LoginAttempt struct {
	ID          string
	Email       string
	IP          string
	Success     bool
	AttemptedAt time.Time
}
