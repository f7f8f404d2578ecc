// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/okian/proctord/internal/domain/model"
)

// ExamsDependencies defines the interface for exam management.
type ExamsDependencies interface {
	Snapshot(ctx context.Context) model.Snapshot
	AddExam(ctx context.Context, e model.Exam) error
	UpdateExam(ctx context.Context, e model.Exam) error
	DeleteExam(ctx context.Context, id string) error
	GenerateExamSlots(ctx context.Context, examID string, start time.Time) ([]model.Slot, error)
	AssignToExamSlot(ctx context.Context, examID, slotID, memberID string) error
	RemoveFromExamSlot(ctx context.Context, examID, slotID, memberID string) error
}

// ExamsHandler handles exam requests.
type ExamsHandler struct {
	deps ExamsDependencies
}

// NewExamsHandler creates a new exams handler.
func NewExamsHandler(deps ExamsDependencies) *ExamsHandler {
	return &ExamsHandler{deps: deps}
}

type examRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Duration int    `json:"duration"`
}

func (e examRequest) toModel() model.Exam {
	return model.Exam{
		ID:       strings.TrimSpace(e.ID),
		Name:     strings.TrimSpace(e.Name),
		Duration: e.Duration,
	}
}

type generateSlotsRequest struct {
	StartTime time.Time `json:"start_time"`
}

type assigneeRequest struct {
	MemberID string `json:"member_id"`
}

// parseMember classifies a raw member id from the wire. Role tags keep their
// prefix in storage; the engine past this point treats member ids as opaque.
func parseMember(raw string) (model.Assignee, bool) {
	a := model.ParseAssignee(strings.TrimSpace(raw))
	return a, a.ID != ""
}

type assigneeView struct {
	MemberID    string `json:"member_id"`
	Kind        string `json:"kind"`
	DisplayName string `json:"display_name"`
}

// assigneeViews renders a slot's member list. Role tags get their derived
// display name; person ids resolve against the registered rosters.
func assigneeViews(snap model.Snapshot, memberIDs []string) []assigneeView {
	views := make([]assigneeView, 0, len(memberIDs))
	for _, raw := range memberIDs {
		a := model.ParseAssignee(raw)
		view := assigneeView{MemberID: a.MemberID(), Kind: "person", DisplayName: a.DisplayName()}
		if a.Kind == model.AssigneeRole {
			view.Kind = "role"
		} else if p, ok := snap.FindProctor(a.ID); ok {
			view.DisplayName = p.Name
		} else if p, ok := snap.FindVolunteer(a.ID); ok {
			view.DisplayName = p.Name
		}
		views = append(views, view)
	}
	return views
}

// HandleExams handles GET /exams and POST /exams.
func (h *ExamsHandler) HandleExams(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.Snapshot(r.Context()).Exams)
	case http.MethodPost:
		var req examRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		if err := h.deps.AddExam(r.Context(), req.toModel()); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, ackResponse{Status: "created"})
	default:
		http.NotFound(w, r)
	}
}

// HandleExamSubtree handles /exams/{id}, /exams/{id}/slots and
// /exams/{id}/slots/{slotID}/assignees.
func (h *ExamsHandler) HandleExamSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/exams/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	id := parts[0]

	switch {
	case len(parts) == 1:
		h.handleExam(w, r, id)
	case len(parts) == 2 && parts[1] == "slots":
		h.handleSlots(w, r, id)
	case len(parts) == 4 && parts[1] == "slots" && parts[3] == "assignees":
		h.handleAssignees(w, r, id, parts[2])
	default:
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
	}
}

func (h *ExamsHandler) handleExam(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		exam, ok := h.deps.Snapshot(r.Context()).FindExam(id)
		if !ok {
			writeError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		writeJSON(w, http.StatusOK, exam)
	case http.MethodPut:
		var req examRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		e := req.toModel()
		e.ID = id
		if err := h.deps.UpdateExam(r.Context(), e); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ackResponse{Status: "updated"})
	case http.MethodDelete:
		if err := h.deps.DeleteExam(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ackResponse{Status: "deleted"})
	default:
		http.NotFound(w, r)
	}
}

func (h *ExamsHandler) handleSlots(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		exam, ok := h.deps.Snapshot(r.Context()).FindExam(id)
		if !ok {
			writeError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		writeJSON(w, http.StatusOK, exam.Slots)
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
		slots, err := h.deps.GenerateExamSlots(r.Context(), id, req.StartTime)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, slots)
	default:
		http.NotFound(w, r)
	}
}

func (h *ExamsHandler) handleAssignees(w http.ResponseWriter, r *http.Request, examID, slotID string) {
	if r.Method == http.MethodGet {
		snap := h.deps.Snapshot(r.Context())
		exam, ok := snap.FindExam(examID)
		if !ok {
			writeError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		slot, ok := exam.FindSlot(slotID)
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
		if err := h.deps.AssignToExamSlot(r.Context(), examID, slotID, member.MemberID()); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ackResponse{Status: "assigned"})
	case http.MethodDelete:
		if err := h.deps.RemoveFromExamSlot(r.Context(), examID, slotID, member.MemberID()); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ackResponse{Status: "removed"})
	default:
		http.NotFound(w, r)
	}
}
