package dto

import "github.com/SscSPs/todo_api/internal/core/domain"

// UserResponse is the public profile returned by /auth/me. The password hash is never included.
type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Age       *int   `json:"age"`
	CreatedAt string `json:"createdAt"`
}

// ToUserResponse reports an age of 0 as null, like a missing one.
func ToUserResponse(user *domain.User) UserResponse {
	var age *int
	if user.Age != nil && *user.Age != 0 {
		a := *user.Age
		age = &a
	}
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Age:       age,
		CreatedAt: user.CreatedAt,
	}
}
