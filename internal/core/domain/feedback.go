package domain

import "time"

// Feedback is a public rating-plus-message entry. The email is write-only:
// it is stored but stripped from every read path.
type Feedback struct {
	ID       string    `json:"id,omitempty"`
	Name     string    `json:"name"`
	Email    string    `json:"-"`
	Message  string    `json:"message"`
	Rating   int       `json:"rating"`
	Date     time.Time `json:"date"`
	Approved bool      `json:"approved"`
}
