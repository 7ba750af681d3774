package models

import "time"

// RateLimitResult is the outcome of a single Allow check.
type RateLimitResult struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when not allowed
}

// RateLimitExceededResponse is the 429 body sent to throttled clients.
type RateLimitExceededResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"`
}

// KeyForIP builds the bucket key for a client IP on an endpoint group.
func KeyForIP(group, ip string) string {
	return "ip:" + group + ":" + ip
}
