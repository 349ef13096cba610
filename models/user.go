package models

// User represents an account holder.
// It maps to the `users` table in SQLite. PasswordHash never leaves the server.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	ProfileID    int64  `db:"profile_id" json:"profile_id"`
	CreatedAt    string `db:"created_at" json:"created_at"`
}

// UserInput is the create/update payload for users. Nil fields are left unchanged on update.
type UserInput struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	ProfileID *int64  `json:"profile_id"`
}

// Profile is a role. ID 1 is the administrator profile.
type Profile struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type ProfileInput struct {
	Name *string `json:"name"`
}
