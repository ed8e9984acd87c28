package handler

import (
	"net/http"

	"github.com/quennell/hearthstead/internal/domain"
	"github.com/quennell/hearthstead/internal/jobs"
	"github.com/quennell/hearthstead/internal/logger"
)

// JobHandler groups the job-market endpoints.
type JobHandler struct {
	jobService jobs.Service
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(jobService jobs.Service) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// AssignJobRequest is the body for assigning a villager to a slot.
type AssignJobRequest struct {
	VillagerID int64 `json:"villager_id" validate:"required,gt=0"`
	SlotID     int64 `json:"slot_id" validate:"required,gt=0"`
}

// UnassignJobRequest is the body for removing a villager from their slot.
type UnassignJobRequest struct {
	VillagerID int64 `json:"villager_id" validate:"required,gt=0"`
}

// SlotListResponse wraps the slot roster.
type SlotListResponse struct {
	Total int              `json:"total"`
	Slots []domain.JobSlot `json:"slots"`
}

// AutoAssignResponse reports how many villagers were placed.
type AutoAssignResponse struct {
	Assigned int `json:"assigned"`
}

// HandleGetJobTypes returns all registered job definitions.
func (h *JobHandler) HandleGetJobTypes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, DataResponse{Data: h.jobService.AllJobTypes()})
}

// HandleGetSlots returns every job slot, occupied or vacant.
func (h *JobHandler) HandleGetSlots(w http.ResponseWriter, r *http.Request) {
	slots, _ := h.jobService.Snapshot()
	respondJSON(w, http.StatusOK, SlotListResponse{Total: len(slots), Slots: slots})
}

// HandleAssign places a villager into a specific slot.
func (h *JobHandler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	var req AssignJobRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Assign job"); err != nil {
		return
	}

	if err := h.jobService.Assign(r.Context(), req.VillagerID, req.SlotID); err != nil {
		respondServiceError(w, r, "Assign job", err)
		return
	}

	logger.FromContext(r.Context()).Info("Job assigned",
		"villager_id", req.VillagerID, "slot_id", req.SlotID)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgJobAssignedSuccess})
}

// HandleUnassign removes a villager from their current slot.
func (h *JobHandler) HandleUnassign(w http.ResponseWriter, r *http.Request) {
	var req UnassignJobRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Unassign job"); err != nil {
		return
	}

	if err := h.jobService.Unassign(r.Context(), req.VillagerID); err != nil {
		respondServiceError(w, r, "Unassign job", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgJobUnassignedSuccess})
}

// HandleAutoAssign fills vacant slots from the idle work-eligible pool.
func (h *JobHandler) HandleAutoAssign(w http.ResponseWriter, r *http.Request) {
	assigned := h.jobService.AutoAssign(r.Context())
	logger.FromContext(r.Context()).Info("Auto-assign completed", "assigned", assigned)
	respondJSON(w, http.StatusOK, AutoAssignResponse{Assigned: assigned})
}
