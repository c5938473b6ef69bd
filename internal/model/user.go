package model

import "time"

// User is an account identified by a unique email address.
// There are no credentials; login is an email lookup only.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserRef is the resolved identity embedded in documents and annotations
// for display purposes. It never carries the email.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
