package dto

import "reviewhub/internal/api/models"

// CreateUserRequest: admin-side account creation.
type CreateUserRequest struct {
	Username  string `json:"username" binding:"required,max=150"`
	Email     string `json:"email" binding:"required,email,max=254"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

// UpdateUserRequest: admin-side partial update; nil fields stay untouched.
type UpdateUserRequest struct {
	Username  *string `json:"username" binding:"omitempty,max=150"`
	Email     *string `json:"email" binding:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

// UpdateMeRequest deliberately has no role field: callers cannot escalate
// themselves through /users/me.
type UpdateMeRequest struct {
	Username  *string `json:"username" binding:"omitempty,max=150"`
	Email     *string `json:"email" binding:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
	Bio       *string `json:"bio"`
}

type UserResponse struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

// FromUser converts a User model to its response shape.
func FromUser(u *models.User) UserResponse {
	return UserResponse{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      u.Role.String(),
	}
}
