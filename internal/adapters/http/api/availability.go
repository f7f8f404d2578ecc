// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/okian/proctord/internal/domain/model"
)

// AvailabilityDependencies defines the interface for availability queries.
type AvailabilityDependencies interface {
	AvailableProctors(ctx context.Context, targets []time.Time) []model.Person
	AvailableVolunteers(ctx context.Context, targets []time.Time) []model.Person
}

// AvailabilityHandler handles availability query requests.
type AvailabilityHandler struct {
	deps AvailabilityDependencies
}

// NewAvailabilityHandler creates a new availability handler.
func NewAvailabilityHandler(deps AvailabilityDependencies) *AvailabilityHandler {
	return &AvailabilityHandler{deps: deps}
}

// HandleGetAvailability handles GET /availability requests. Target instants
// are passed as one or more RFC 3339 "at" query parameters; "kind" selects
// proctors (default) or volunteers.
func (h *AvailabilityHandler) HandleGetAvailability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	query := r.URL.Query()
	ats := query["at"]
	if len(ats) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	targets := make([]time.Time, 0, len(ats))
	for _, raw := range ats {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		targets = append(targets, t)
	}

	switch kind := query.Get("kind"); kind {
	case "", "proctors":
		writeJSON(w, http.StatusOK, h.deps.AvailableProctors(r.Context(), targets))
	case "volunteers":
		writeJSON(w, http.StatusOK, h.deps.AvailableVolunteers(r.Context(), targets))
	default:
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
	}
}
