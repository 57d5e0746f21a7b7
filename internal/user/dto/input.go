package dto

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone" binding:"omitempty,min=7"`
}

type LoginInput struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required"`
}

type CreateUserInput struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone" binding:"omitempty,min=7"`
	Role     string `json:"role" binding:"omitempty,oneof=ADMIN CLIENT"`
}

// UpdateUserInput is a partial update, nil fields are left untouched.
type UpdateUserInput struct {
	Name     *string `json:"name"`
	Username *string `json:"username" binding:"omitempty,min=3"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role" binding:"omitempty,oneof=ADMIN CLIENT"`
}
