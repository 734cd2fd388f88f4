package dto

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AdminRegisterRequest struct {
	AdminKey string `json:"admin_key"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	Role        string `json:"role"`
}
