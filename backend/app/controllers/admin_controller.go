package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"fruitlens/backend/app/dto"
	"fruitlens/backend/app/services"
)

type AdminController struct {
	Accounts *services.AccountService
	Images   *services.ImageService
}

func NewAdminController(accounts *services.AccountService, images *services.ImageService) *AdminController {
	return &AdminController{Accounts: accounts, Images: images}
}

// Users dispatches the admin user-management surface on one route.
func (c *AdminController) Users(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		c.listUsers(w)
	case http.MethodPost:
		c.createUser(w, r)
	case http.MethodPut:
		c.updateUser(w, r)
	case http.MethodDelete:
		c.deleteUser(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (c *AdminController) listUsers(w http.ResponseWriter) {
	users, err := c.Accounts.ListUsers()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "cannot list users")
		return
	}
	out := make([]dto.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, dto.UserSummary{UserID: u.ID, Username: u.Username, Role: u.Role})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

// createUser is the operator add-user path. It skips the reserved-name and
// admin-key checks on purpose; the route itself is admin-gated.
func (c *AdminController) createUser(w http.ResponseWriter, r *http.Request) {
	var req dto.AdminCreateUserRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Username == "" || req.Password == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := c.Accounts.CreateUser(req.Username, req.Password, req.Role); err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			w.WriteHeader(http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (c *AdminController) updateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.AdminUpdateUserRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.UserID == 0 || req.Username == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := c.Accounts.UpdateUser(req.UserID, req.Username, req.Password); err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			w.WriteHeader(http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *AdminController) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(r, "user_id")
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := c.Accounts.DeleteUser(id); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Images serves the admin image-management surface.
func (c *AdminController) ImageRecords(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		recs, err := c.Images.ListAll()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "cannot list images")
			return
		}
		out := make([]dto.ImageRecordResponse, 0, len(recs))
		for _, rec := range recs {
			out = append(out, dto.ImageRecordResponse{
				ImageID: rec.ID, UserID: rec.UserID, ImagePath: rec.ImagePath,
				Result: rec.Result, Timestamp: rec.Timestamp,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	case http.MethodDelete:
		id, ok := queryID(r, "image_id")
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err := c.Images.Delete(id); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func queryID(r *http.Request, key string) (uint, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
