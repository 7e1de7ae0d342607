package controllers

import (
	"kinstore/internal/models"
	"kinstore/internal/providers"
	"kinstore/internal/services"
	"net/http"
)

type AdminAuthController struct {
	logger   providers.Logger
	service  services.AuthServiceInterface
	sessions providers.SessionProviderInterface
}

type adminStatusResponse struct {
	Success       bool `json:"success"`
	Authenticated bool `json:"authenticated"`
}

func NewAdminAuthController(logger providers.Logger, service services.AuthServiceInterface, sessions providers.SessionProviderInterface) *AdminAuthController {
	return &AdminAuthController{
		logger:   logger,
		service:  service,
		sessions: sessions,
	}
}

func (ac *AdminAuthController) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := decodeJSON(w, r, &creds); err != nil {
		writeError(w, r, ac.logger, err)
		return
	}
	if err := ac.service.AuthenticateAdmin(&creds); err != nil {
		ac.logger.Warnf(providers.TypePost, "Failed admin login from %s", r.RemoteAddr)
		writeError(w, r, ac.logger, err)
		return
	}
	ac.sessions.SetAdmin(w)
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (ac *AdminAuthController) Status(w http.ResponseWriter, r *http.Request) {
	if !providers.SessionFromContext(r.Context()).Admin {
		writeJSON(w, http.StatusUnauthorized, adminStatusResponse{})
		return
	}
	writeJSON(w, http.StatusOK, adminStatusResponse{Success: true, Authenticated: true})
}

func (ac *AdminAuthController) Logout(w http.ResponseWriter, r *http.Request) {
	ac.sessions.ClearAdmin(w)
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
