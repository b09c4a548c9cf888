package domain

// RefreshToken is the server-side record that keeps an issued refresh token
// usable. Removing the record revokes the token even before it expires.
type RefreshToken struct {
	Token  string `json:"token"`
	UserID int64  `json:"userId"`
}
