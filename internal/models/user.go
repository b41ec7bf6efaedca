package models

import "time"

// User represents an operator account. Passwords are stored as bcrypt hashes.
type User struct {
	UserID       int64     `db:"user_id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}
