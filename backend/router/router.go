package router

import (
	"net/http"

	"fruitlens/backend/app/controllers"
	"fruitlens/backend/app/middleware"
)

func NewRouter(authCtrl *controllers.AuthController, imageCtrl *controllers.ImageController, adminCtrl *controllers.AdminController, mw *middleware.Auth) http.Handler {
	mux := http.NewServeMux()

	// public
	mux.HandleFunc("/register", authCtrl.Register)
	mux.HandleFunc("/register/admin", authCtrl.RegisterAdmin)
	mux.HandleFunc("/login", authCtrl.Login)

	// session-scoped image operations
	mux.Handle("/images", mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			imageCtrl.Upload(w, r)
		case http.MethodGet:
			imageCtrl.History(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})))

	// admin panel
	mux.Handle("/admin/users", mw.RequireAdmin(http.HandlerFunc(adminCtrl.Users)))
	mux.Handle("/admin/images", mw.RequireAdmin(http.HandlerFunc(adminCtrl.ImageRecords)))

	return mux
}
