package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"sales_insights/internal/api/handlers"
	"sales_insights/pkg/utils"
)

type AdminHandler struct {
	jwtSecret    string
	passwordHash string
	tokenTTL     time.Duration
}

func NewAdminHandler(jwtSecret, passwordHash string, tokenTTL time.Duration) *AdminHandler {
	return &AdminHandler{jwtSecret: jwtSecret, passwordHash: passwordHash, tokenTTL: tokenTTL}
}

// FUNC FOR ADMIN LOGIN
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !handlers.AllowMethods(w, r, http.MethodPost) {
		return
	}

	if h.jwtSecret == "" || h.passwordHash == "" {
		utils.WriteError(w, "admin login is not configured", http.StatusNotFound)
		return
	}

	var req struct {
		Password string `json:"password"`
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteAppError(w, utils.ValidationError("invalid request body"))
		return
	}
	defer r.Body.Close()

	if req.Password == "" {
		utils.WriteAppError(w, utils.ValidationError("password is required"))
		return
	}

	ok, err := utils.VerifyPassword(req.Password, h.passwordHash)
	if err != nil {
		utils.Logger.WithError(err).Error("invalid ADMIN_PASSWORD_HASH")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !ok {
		utils.WriteAppError(w, utils.UnauthorizedError("incorrect password"))
		return
	}

	tokenString, err := utils.SignToken(h.jwtSecret, utils.RoleAdmin, utils.RoleAdmin, h.tokenTTL)
	if err != nil {
		utils.Logger.WithError(err).Error("could not create admin token")
		utils.WriteError(w, "error signing in", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "Bearer",
		Value:    tokenString,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		Expires:  time.Now().Add(h.tokenTTL),
		SameSite: http.SameSiteStrictMode,
	})

	response := map[string]interface{}{
		"status":  "success",
		"message": "login successful",
		"token":   tokenString,
	}
	utils.WriteJSON(w, response)
}
