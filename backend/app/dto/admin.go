package dto

type UserSummary struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type AdminCreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type AdminUpdateUserRequest struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
}
