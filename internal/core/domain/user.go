package domain

// User represents a registered account as persisted in users.json.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Password  string `json:"password"` // bcrypt hash, never leaves the auth service
	Age       *int   `json:"age"`
	CreatedAt string `json:"createdAt"`
}
