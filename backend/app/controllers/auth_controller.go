package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"fruitlens/backend/app/dto"
	jwtutil "fruitlens/backend/app/jwt"
	"fruitlens/backend/app/services"
)

type AuthController struct {
	Accounts *services.AccountService
	Signer   *jwtutil.Signer
}

func NewAuthController(accounts *services.AccountService, signer *jwtutil.Signer) *AuthController {
	return &AuthController{Accounts: accounts, Signer: signer}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing credentials")
		return
	}
	if err := c.Accounts.Register(req.Username, req.Password, false); err != nil {
		switch {
		case errors.Is(err, services.ErrReservedUsername):
			writeError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, services.ErrUsernameTaken):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// RegisterAdmin mints an administrator account when the shared registration
// key matches.
func (c *AuthController) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var req dto.AdminRegisterRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing credentials")
		return
	}
	if err := c.Accounts.CreateAdminUser(req.AdminKey, req.Username, req.Password); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAdminKey):
			writeError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, services.ErrUsernameTaken):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing credentials")
		return
	}
	u, err := c.Accounts.Login(req.Username, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := c.Signer.Sign(u.ID, u.Username, u.Role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dto.TokenResponse{AccessToken: token, UserID: u.ID, Username: u.Username, Role: u.Role})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
