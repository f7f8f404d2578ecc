// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/proctord/internal/domain/model"
	"github.com/okian/proctord/internal/domain/stats"
)

// PeopleDependencies defines the interface for proctor and volunteer CRUD.
type PeopleDependencies interface {
	Snapshot(ctx context.Context) model.Snapshot
	AddProctor(ctx context.Context, p model.Person) error
	UpdateProctor(ctx context.Context, p model.Person) error
	DeleteProctor(ctx context.Context, id string) error
	AddVolunteer(ctx context.Context, p model.Person) error
	UpdateVolunteer(ctx context.Context, p model.Person) error
	DeleteVolunteer(ctx context.Context, id string) error
	PersonSlots(ctx context.Context, personID string) []stats.AssignedSlot
}

// PeopleHandler handles proctor and volunteer requests.
type PeopleHandler struct {
	deps PeopleDependencies
}

// NewPeopleHandler creates a new people handler.
func NewPeopleHandler(deps PeopleDependencies) *PeopleHandler {
	return &PeopleHandler{deps: deps}
}

// personRequest mirrors the wire schema for proctor/volunteer writes.
type personRequest struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Skills string `json:"skills,omitempty"`
}

func (p personRequest) toModel() model.Person {
	return model.Person{
		ID:     strings.TrimSpace(p.ID),
		Name:   strings.TrimSpace(p.Name),
		Email:  strings.TrimSpace(p.Email),
		Skills: strings.TrimSpace(p.Skills),
	}
}

// HandleProctors handles GET /proctors and POST /proctors.
func (h *PeopleHandler) HandleProctors(w http.ResponseWriter, r *http.Request) {
	h.handleCollection(w, r, true)
}

// HandleVolunteers handles GET /volunteers and POST /volunteers.
func (h *PeopleHandler) HandleVolunteers(w http.ResponseWriter, r *http.Request) {
	h.handleCollection(w, r, false)
}

func (h *PeopleHandler) handleCollection(w http.ResponseWriter, r *http.Request, proctors bool) {
	switch r.Method {
	case http.MethodGet:
		snap := h.deps.Snapshot(r.Context())
		if proctors {
			writeJSON(w, http.StatusOK, snap.Proctors)
			return
		}
		writeJSON(w, http.StatusOK, snap.Volunteers)
	case http.MethodPost:
		var req personRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		add := h.deps.AddProctor
		if !proctors {
			add = h.deps.AddVolunteer
		}
		if err := add(r.Context(), req.toModel()); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, ackResponse{Status: "created"})
	default:
		http.NotFound(w, r)
	}
}

// HandleProctorByID handles /proctors/{id} and /proctors/{id}/slots.
func (h *PeopleHandler) HandleProctorByID(w http.ResponseWriter, r *http.Request) {
	h.handleByID(w, r, true, strings.TrimPrefix(r.URL.Path, "/proctors/"))
}

// HandleVolunteerByID handles /volunteers/{id} and /volunteers/{id}/slots.
func (h *PeopleHandler) HandleVolunteerByID(w http.ResponseWriter, r *http.Request) {
	h.handleByID(w, r, false, strings.TrimPrefix(r.URL.Path, "/volunteers/"))
}

func (h *PeopleHandler) handleByID(w http.ResponseWriter, r *http.Request, proctors bool, rest string) {
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	id := parts[0]

	// /{id}/slots lists the person's assignments.
	if len(parts) == 2 && parts[1] == "slots" {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, http.StatusOK, h.deps.PersonSlots(r.Context(), id))
		return
	}
	if len(parts) != 1 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		snap := h.deps.Snapshot(r.Context())
		find := snap.FindProctor
		if !proctors {
			find = snap.FindVolunteer
		}
		p, ok := find(id)
		if !ok {
			writeError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodPut:
		var req personRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		p := req.toModel()
		p.ID = id
		update := h.deps.UpdateProctor
		if !proctors {
			update = h.deps.UpdateVolunteer
		}
		if err := update(r.Context(), p); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ackResponse{Status: "updated"})
	case http.MethodDelete:
		del := h.deps.DeleteProctor
		if !proctors {
			del = h.deps.DeleteVolunteer
		}
		if err := del(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ackResponse{Status: "deleted"})
	default:
		http.NotFound(w, r)
	}
}
