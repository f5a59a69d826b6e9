package dto

// CreateUserRequest represents a request to create a new user. All three
// fields are required; age is a pointer so a missing field is
// distinguishable from a legitimate zero.
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Age   *int   `json:"age" validate:"required,min=0,max=80"`
	Email string `json:"email" validate:"required"`
}

// UpdateUserRequest represents a partial update. Absent fields are left
// unchanged; a blank name or email is treated as absent, not as an error.
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Age   *int    `json:"age,omitempty" validate:"omitempty,min=0,max=80"`
	Email *string `json:"email,omitempty"`
}

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}
