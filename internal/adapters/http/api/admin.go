// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// AdminDependencies defines the interface for admin session management.
type AdminDependencies interface {
	Login(ctx context.Context, secret string) bool
	Logout(ctx context.Context)
	IsAdminLoggedIn(ctx context.Context) bool
}

// AdminHandler handles admin session requests.
type AdminHandler struct {
	deps AdminDependencies
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(deps AdminDependencies) *AdminHandler {
	return &AdminHandler{deps: deps}
}

type loginRequest struct {
	Secret string `json:"secret"`
}

type sessionResponse struct {
	AdminLoggedIn bool `json:"admin_logged_in"`
}

// HandleLogin handles POST /admin/login requests.
func (h *AdminHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if !h.deps.Login(r.Context(), req.Secret) {
		writeError(w, http.StatusUnauthorized, "unauthorized", ErrUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "logged_in"})
}

// HandleLogout handles POST /admin/logout requests.
func (h *AdminHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	h.deps.Logout(r.Context())
	writeJSON(w, http.StatusOK, ackResponse{Status: "logged_out"})
}

// HandleSession handles GET /admin/session requests.
func (h *AdminHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{AdminLoggedIn: h.deps.IsAdminLoggedIn(r.Context())})
}
