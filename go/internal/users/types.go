package users

// CreateUserRequest represents the data needed to register a pool member
type CreateUserRequest struct {
	Username    string `json:"username" validate:"required"`
	DisplayName string `json:"display_name"`
}
