package domain

import "time"

// RoleStaff is the role assigned to desk operators.
const RoleStaff = "staff"

// User is an operator credential. Read-only at runtime apart from start-up seeding.
type User struct {
	UserID       int64     `json:"userID"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
