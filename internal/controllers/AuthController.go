package controllers

import (
	"kinstore/internal/models"
	"kinstore/internal/providers"
	"kinstore/internal/services"
	"net/http"
)

type AuthController struct {
	logger   providers.Logger
	service  services.AuthServiceInterface
	sessions providers.SessionProviderInterface
}

type loginResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	User    models.PublicUser `json:"user"`
}

type userStatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

func NewAuthController(logger providers.Logger, service services.AuthServiceInterface, sessions providers.SessionProviderInterface) *AuthController {
	return &AuthController{
		logger:   logger,
		service:  service,
		sessions: sessions,
	}
}

func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := decodeJSON(w, r, &user); err != nil {
		writeError(w, r, ac.logger, err)
		return
	}
	if err := ac.service.Register(r.Context(), &user); err != nil {
		writeError(w, r, ac.logger, err)
		return
	}
	ac.logger.Infof(providers.TypePost, "User %s registered", user.Username)
	writeJSON(w, http.StatusOK, successResponse{Success: true, Message: "user registered"})
}

func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := decodeJSON(w, r, &creds); err != nil {
		writeError(w, r, ac.logger, err)
		return
	}
	user, err := ac.service.Login(r.Context(), &creds)
	if err != nil {
		writeError(w, r, ac.logger, err)
		return
	}
	ac.sessions.SetUser(w, user.Username)
	writeJSON(w, http.StatusOK, loginResponse{Success: true, Message: "logged in", User: user.Public()})
}

func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	ac.sessions.ClearUser(w)
	writeJSON(w, http.StatusOK, successResponse{Success: true, Message: "logged out"})
}

func (ac *AuthController) Status(w http.ResponseWriter, r *http.Request) {
	session := providers.SessionFromContext(r.Context())
	if !session.IsUser() {
		writeJSON(w, http.StatusUnauthorized, userStatusResponse{Authenticated: false})
		return
	}
	writeJSON(w, http.StatusOK, userStatusResponse{Authenticated: true, Username: session.Username})
}
