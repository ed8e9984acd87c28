package handler

import (
	"net/http"
	"strconv"

	"github.com/quennell/hearthstead/internal/domain"
	"github.com/quennell/hearthstead/internal/logger"
	"github.com/quennell/hearthstead/internal/repository"
	"github.com/quennell/hearthstead/internal/sim"
)

// AdminHandler groups the operator endpoints: manual ticks, snapshot
// save/restore, and stockpile seeding. Deployments that drive ticks from the
// scheduler should leave advance-day alone; it exists for paused worlds and
// staging environments.
type AdminHandler struct {
	world     *sim.World
	snapshots repository.Snapshot
	archive   repository.EventArchive
	summaries *SummaryHandler
}

// NewAdminHandler creates a new AdminHandler. snapshots and archive may be
// nil in headless runs; the corresponding endpoints then report unavailable.
func NewAdminHandler(world *sim.World, snapshots repository.Snapshot, archive repository.EventArchive, summaries *SummaryHandler) *AdminHandler {
	return &AdminHandler{
		world:     world,
		snapshots: snapshots,
		archive:   archive,
		summaries: summaries,
	}
}

// AdvanceDayRequest is the body for manual ticks. Days defaults to 1.
type AdvanceDayRequest struct {
	Days int `json:"days" validate:"omitempty,min=1,max=365"`
}

// AdvanceDayResponse reports the ticks that ran.
type AdvanceDayResponse struct {
	Day     int              `json:"day"`
	Reports []sim.TickReport `json:"reports"`
}

// SnapshotRequest is the body for saving or restoring a snapshot.
type SnapshotRequest struct {
	Label string `json:"label" validate:"omitempty,max=64"`
	ID    string `json:"id" validate:"omitempty,uuid"`
}

// AddResourcesRequest is the body for crediting the stockpile.
type AddResourcesRequest struct {
	Amounts map[domain.Resource]float64 `json:"amounts" validate:"required,min=1"`
}

// HandleAdvanceDay runs one or more ticks and returns their reports.
func (h *AdminHandler) HandleAdvanceDay(w http.ResponseWriter, r *http.Request) {
	var req AdvanceDayRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Advance day"); err != nil {
		return
	}
	if req.Days == 0 {
		req.Days = 1
	}

	reports := make([]sim.TickReport, 0, req.Days)
	for i := 0; i < req.Days; i++ {
		reports = append(reports, h.world.AdvanceDay(r.Context()))
	}

	respondJSON(w, http.StatusOK, AdvanceDayResponse{
		Day:     h.world.Day(),
		Reports: reports,
	})
}

// HandleAddResources credits the stockpile, for seeding and scenario setup.
func (h *AdminHandler) HandleAddResources(w http.ResponseWriter, r *http.Request) {
	var req AddResourcesRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Add resources"); err != nil {
		return
	}

	h.world.AddResources(req.Amounts)
	logger.FromContext(r.Context()).Info("Resources added", "resources", len(req.Amounts))
	respondJSON(w, http.StatusOK, DataResponse{
		Message: MsgResourcesAddedSuccess,
		Data:    h.world.Stock(),
	})
}

// HandleSaveSnapshot persists the current world state.
func (h *AdminHandler) HandleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	if h.snapshots == nil {
		respondError(w, http.StatusServiceUnavailable, ErrMsgSaveSnapshotFailed)
		return
	}

	var req SnapshotRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Save snapshot"); err != nil {
		return
	}
	if req.Label == "" {
		req.Label = "manual"
	}

	rec, err := h.snapshots.SaveSnapshot(r.Context(), req.Label, h.world.Snapshot())
	if err != nil {
		respondServiceError(w, r, "Save snapshot", err)
		return
	}

	logger.FromContext(r.Context()).Info("Snapshot saved",
		"id", rec.ID, "label", rec.Label, "day", rec.Day)
	respondJSON(w, http.StatusCreated, DataResponse{Message: MsgSnapshotSavedSuccess, Data: rec})
}

// HandleRestoreSnapshot replaces the world state from a stored snapshot.
// An explicit id wins; otherwise the newest snapshot for the label is used.
func (h *AdminHandler) HandleRestoreSnapshot(w http.ResponseWriter, r *http.Request) {
	if h.snapshots == nil {
		respondError(w, http.StatusServiceUnavailable, ErrMsgRestoreSnapshotFailed)
		return
	}

	var req SnapshotRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Restore snapshot"); err != nil {
		return
	}

	var (
		rec *domain.SnapshotRecord
		err error
	)
	switch {
	case req.ID != "":
		rec, err = h.snapshots.GetSnapshot(r.Context(), req.ID)
	case req.Label != "":
		rec, err = h.snapshots.GetLatestSnapshot(r.Context(), req.Label)
	default:
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
		return
	}
	if err != nil {
		respondServiceError(w, r, "Restore snapshot", err)
		return
	}

	h.world.Restore(rec.State)
	if h.summaries != nil {
		h.summaries.cache.Clear()
	}

	logger.FromContext(r.Context()).Info("Snapshot restored",
		"id", rec.ID, "label", rec.Label, "day", rec.Day)
	respondJSON(w, http.StatusOK, DataResponse{Message: MsgSnapshotRestoredSuccess, Data: rec.Day})
}

// HandleListSnapshots returns snapshot metadata, newest first.
func (h *AdminHandler) HandleListSnapshots(w http.ResponseWriter, r *http.Request) {
	if h.snapshots == nil {
		respondError(w, http.StatusServiceUnavailable, ErrMsgListSnapshotsFailed)
		return
	}

	label := GetOptionalQueryParam(r, "label", "")
	limit, err := strconv.Atoi(GetOptionalQueryParam(r, "limit", "20"))
	if err != nil || limit <= 0 {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
		return
	}

	records, err := h.snapshots.ListSnapshots(r.Context(), label, limit)
	if err != nil {
		respondServiceError(w, r, "List snapshots", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: records})
}

// HandleGetEvents returns the archived events for one simulated day.
func (h *AdminHandler) HandleGetEvents(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		respondError(w, http.StatusServiceUnavailable, ErrMsgEventHistoryFailed)
		return
	}

	day, err := strconv.Atoi(GetOptionalQueryParam(r, "day", strconv.Itoa(h.world.Day())))
	if err != nil || day < 0 {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidDay)
		return
	}

	events, err := h.archive.EventsForDay(r.Context(), day)
	if err != nil {
		respondServiceError(w, r, "Event history", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: events})
}
