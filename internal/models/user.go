package models

// User is a single row of the users table.
type User struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}

// UserInput carries the mutable fields of a User.
type UserInput struct {
	Name  string
	Email string
}
