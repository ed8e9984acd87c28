package handler

import (
	"net/http"

	"github.com/quennell/hearthstead/internal/construction"
	"github.com/quennell/hearthstead/internal/domain"
	"github.com/quennell/hearthstead/internal/logger"
	"github.com/quennell/hearthstead/internal/sim"
)

// ConstructionHandler groups the building and site endpoints. Placement
// needs the current day for site registration, so it holds the world
// alongside the construction service.
type ConstructionHandler struct {
	world   *sim.World
	service construction.Service
}

// NewConstructionHandler creates a new ConstructionHandler
func NewConstructionHandler(world *sim.World, service construction.Service) *ConstructionHandler {
	return &ConstructionHandler{world: world, service: service}
}

// PlaceBuildingRequest is the body for registering a new construction site.
type PlaceBuildingRequest struct {
	TypeKey string `json:"type_key" validate:"required"`
	Level   int    `json:"level" validate:"omitempty,min=1,max=10"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
}

// BuilderRequest is the body for crew assignment on a site.
type BuilderRequest struct {
	BuildingID int64 `json:"building_id" validate:"required,gt=0"`
	VillagerID int64 `json:"villager_id" validate:"required,gt=0"`
}

// BuildingListResponse wraps the settlement's buildings.
type BuildingListResponse struct {
	Total     int               `json:"total"`
	Buildings []domain.Building `json:"buildings"`
}

// HandlePlaceBuilding registers a building and its construction site.
func (h *ConstructionHandler) HandlePlaceBuilding(w http.ResponseWriter, r *http.Request) {
	var req PlaceBuildingRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Place building"); err != nil {
		return
	}
	if req.Level == 0 {
		req.Level = 1
	}

	b, err := h.service.PlaceBuilding(r.Context(), h.world.Day(), req.TypeKey, req.Level,
		domain.Position{X: req.X, Y: req.Y})
	if err != nil {
		respondServiceError(w, r, "Place building", err)
		return
	}

	logger.FromContext(r.Context()).Info("Building placed",
		"building_id", b.ID, "type", b.TypeKey, "level", b.Level)
	respondJSON(w, http.StatusCreated, DataResponse{Message: MsgBuildingPlacedSuccess, Data: b})
}

// HandleGetBuildings returns every building, complete or under construction.
func (h *ConstructionHandler) HandleGetBuildings(w http.ResponseWriter, r *http.Request) {
	buildings, _, _ := h.service.Snapshot()
	respondJSON(w, http.StatusOK, BuildingListResponse{Total: len(buildings), Buildings: buildings})
}

// HandleGetSites returns the open construction sites.
func (h *ConstructionHandler) HandleGetSites(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, DataResponse{Data: h.service.Sites()})
}

// HandleAssignBuilder puts a villager on a site's crew.
func (h *ConstructionHandler) HandleAssignBuilder(w http.ResponseWriter, r *http.Request) {
	var req BuilderRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Assign builder"); err != nil {
		return
	}

	if err := h.service.AssignBuilder(r.Context(), req.BuildingID, req.VillagerID); err != nil {
		respondServiceError(w, r, "Assign builder", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgBuilderAssignedSuccess})
}

// HandleUnassignBuilder removes a villager from a site's crew.
func (h *ConstructionHandler) HandleUnassignBuilder(w http.ResponseWriter, r *http.Request) {
	var req BuilderRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Unassign builder"); err != nil {
		return
	}

	if err := h.service.UnassignBuilder(r.Context(), req.BuildingID, req.VillagerID); err != nil {
		respondServiceError(w, r, "Unassign builder", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgBuilderUnassignedSuccess})
}
