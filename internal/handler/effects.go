package handler

import (
	"net/http"

	"github.com/quennell/hearthstead/internal/logger"
	"github.com/quennell/hearthstead/internal/modifier"
	"github.com/quennell/hearthstead/internal/sim"
)

// EffectHandler groups the modifier-ledger endpoints.
type EffectHandler struct {
	world   *sim.World
	service modifier.Service
}

// NewEffectHandler creates a new EffectHandler
func NewEffectHandler(world *sim.World, service modifier.Service) *EffectHandler {
	return &EffectHandler{world: world, service: service}
}

// ApplyEffectRequest is the body for activating a time-bound effect.
type ApplyEffectRequest struct {
	Key      string `json:"key" validate:"required"`
	Duration int    `json:"duration" validate:"required,min=1"`
}

// ApplyTechnologyRequest is the body for researching a permanent technology.
type ApplyTechnologyRequest struct {
	Key string `json:"key" validate:"required"`
}

// HandleApplyEffect activates a registered effect template.
func (h *EffectHandler) HandleApplyEffect(w http.ResponseWriter, r *http.Request) {
	var req ApplyEffectRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Apply effect"); err != nil {
		return
	}

	eff, err := h.service.Apply(r.Context(), h.world.Day(), req.Key, req.Duration)
	if err != nil {
		respondServiceError(w, r, "Apply effect", err)
		return
	}

	logger.FromContext(r.Context()).Info("Effect applied",
		"key", req.Key, "ends_day", eff.EndDay)
	respondJSON(w, http.StatusCreated, DataResponse{Message: MsgEffectAppliedSuccess, Data: eff})
}

// HandleApplyTechnology researches a permanent technology effect.
func (h *EffectHandler) HandleApplyTechnology(w http.ResponseWriter, r *http.Request) {
	var req ApplyTechnologyRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Apply technology"); err != nil {
		return
	}

	eff, err := h.service.ApplyTechnology(r.Context(), h.world.Day(), req.Key)
	if err != nil {
		respondServiceError(w, r, "Apply technology", err)
		return
	}

	respondJSON(w, http.StatusCreated, DataResponse{Message: MsgTechnologyAppliedSuccess, Data: eff})
}

// HandleGetEffects returns the active time-bound effects.
func (h *EffectHandler) HandleGetEffects(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, DataResponse{Data: h.service.ActiveEffects()})
}
