package handler

import (
	"net/http"

	"github.com/quennell/hearthstead/internal/domain"
	"github.com/quennell/hearthstead/internal/population"
)

// VillagerListResponse wraps the villager roster.
type VillagerListResponse struct {
	Total     int               `json:"total"`
	Villagers []domain.Villager `json:"villagers"`
}

// HandleListVillagers returns the full roster. The snapshot path hands back
// value copies, so encoding never races a concurrent tick.
func HandleListVillagers(roster population.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		villagers, _ := roster.Snapshot()
		respondJSON(w, http.StatusOK, VillagerListResponse{
			Total:     len(villagers),
			Villagers: villagers,
		})
	}
}

// HandleGetVillager returns one villager by id.
func HandleGetVillager(roster population.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetIDQueryParam(r, w, "id")
		if !ok {
			return
		}

		villagers, _ := roster.Snapshot()
		for i := range villagers {
			if villagers[i].ID == id {
				respondJSON(w, http.StatusOK, villagers[i])
				return
			}
		}
		respondError(w, http.StatusNotFound, ErrMsgVillagerNotFoundError)
	}
}
