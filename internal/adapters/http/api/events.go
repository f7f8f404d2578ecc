// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/okian/proctord/internal/domain/model"
)

// EventsDependencies defines the interface for event management.
type EventsDependencies interface {
	Snapshot(ctx context.Context) model.Snapshot
	AddEvent(ctx context.Context, e model.Event) error
	UpdateEvent(ctx context.Context, e model.Event) error
	DeleteEvent(ctx context.Context, id string) error
	GenerateEventSlots(ctx context.Context, eventID string, start time.Time) ([]model.Slot, error)
	AssignToEventSlot(ctx context.Context, eventID, slotID, memberID string) error
	RemoveFromEventSlot(ctx context.Context, eventID, slotID, memberID string) error
	AssignToEventRoster(ctx context.Context, eventID, volunteerID string) error
	RemoveFromEventRoster(ctx context.Context, eventID, volunteerID string) error
}

// EventsHandler handles event requests.
type EventsHandler struct {
	deps EventsDependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps EventsDependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

type eventRequest struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Duration           int    `json:"duration"`
	Date               string `json:"date"`
	StartTime          string `json:"start_time"`
	Description        string `json:"description,omitempty"`
	RequiredVolunteers int    `json:"required_volunteers"`
}

func (e eventRequest) toModel() model.Event {
	return model.Event{
		ID:                 strings.TrimSpace(e.ID),
		Name:               strings.TrimSpace(e.Name),
		Duration:           e.Duration,
		Date:               strings.TrimSpace(e.Date),
		StartTime:          strings.TrimSpace(e.StartTime),
		Description:        strings.TrimSpace(e.Description),
		RequiredVolunteers: e.RequiredVolunteers,
	}
}

type rosterRequest struct {
	VolunteerID string `json:"volunteer_id"`
}

// HandleEvents handles GET /events and POST /events.
func (h *EventsHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.Snapshot(r.Context()).Events)
	case http.MethodPost:
		var req eventRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		if err := h.deps.AddEvent(r.Context(), req.toModel()); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, ackResponse{Status: "created"})
	default:
		http.NotFound(w, r)
	}
}

// HandleEventSubtree handles /events/{id}, /events/{id}/slots,
// /events/{id}/slots/{slotID}/assignees and /events/{id}/roster.
func (h *EventsHandler) HandleEventSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/events/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	id := parts[0]

	switch {
	case len(parts) == 1:
		h.handleEvent(w, r, id)
	case len(parts) == 2 && parts[1] == "slots":
		h.handleSlots(w, r, id)
	case len(parts) == 2 && parts[1] == "roster":
		h.handleRoster(w, r, id)
	case len(parts) == 4 && parts[1] == "slots" && parts[3] == "assignees":
		h.handleAssignees(w, r, id, parts[2])
	default:
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
	}
}

func (h *EventsHandler) handleEvent(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		event, ok := h.deps.Snapshot(r.Context()).FindEvent(id)
		if !ok {
			writeError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		writeJSON(w, http.StatusOK, event)
	case http.MethodPut:
		var req eventRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		e := req.toModel()
		e.ID = id
		if err := h.deps.UpdateEvent(r.Context(), e); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ackResponse{Status: "updated"})
	case http.MethodDelete:
		if err := h.deps.DeleteEvent(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ackResponse{Status: "deleted"})
	default:
		http.NotFound(w, r)
	}
}

func (h *EventsHandler) handleSlots(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		event, ok := h.deps.Snapshot(r.Context()).FindEvent(id)
		if !ok {
			writeError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		writeJSON(w, http.StatusOK, event.Slots)
	case http.MethodPost:
		var req generateSlotsRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		if req.StartTime.IsZero() {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		slots, err := h.deps.GenerateEventSlots(r.Context(), id, req.StartTime)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, slots)
	default:
		http.NotFound(w, r)
	}
}

func (h *EventsHandler) handleRoster(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method == http.MethodGet {
		event, ok := h.deps.Snapshot(r.Context()).FindEvent(id)
		if !ok {
			writeError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		writeJSON(w, http.StatusOK, event.VolunteerIDs)
		return
	}

	var req rosterRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if strings.TrimSpace(req.VolunteerID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	switch r.Method {
	case http.MethodPost:
		if err := h.deps.AssignToEventRoster(r.Context(), id, req.VolunteerID); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ackResponse{Status: "assigned"})
	case http.MethodDelete:
		if err := h.deps.RemoveFromEventRoster(r.Context(), id, req.VolunteerID); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ackResponse{Status: "removed"})
	default:
		http.NotFound(w, r)
	}
}

func (h *EventsHandler) handleAssignees(w http.ResponseWriter, r *http.Request, eventID, slotID string) {
	if r.Method == http.MethodGet {
		snap := h.deps.Snapshot(r.Context())
		event, ok := snap.FindEvent(eventID)
		if !ok {
			writeError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		slot, ok := event.FindSlot(slotID)
		if !ok {
			writeError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		writeJSON(w, http.StatusOK, assigneeViews(snap, slot.PersonIDs))
		return
	}

	var req assigneeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	member, ok := parseMember(req.MemberID)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	switch r.Method {
	case http.MethodPost:
		if err := h.deps.AssignToEventSlot(r.Context(), eventID, slotID, member.MemberID()); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ackResponse{Status: "assigned"})
	case http.MethodDelete:
		if err := h.deps.RemoveFromEventSlot(r.Context(), eventID, slotID, member.MemberID()); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ackResponse{Status: "removed"})
	default:
		http.NotFound(w, r)
	}
}
