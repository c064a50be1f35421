package entities

import "time"

// User is a back-office operator account.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (username-index): username
//   - GSI2 (email-index): email
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	HashedPassword string    `json:"-"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}
