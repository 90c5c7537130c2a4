package routes

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Dorschm/stellar-sub001/internal/model"
	"github.com/Dorschm/stellar-sub001/pkg/logger"
)

// markInactiveRequest :
// Mirrors the JSON body expected by the mark-inactive endpoint
// (spec §6).
type markInactiveRequest struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
}

// markInactiveResponse :
// Mirrors the success shape of the mark-inactive endpoint
// (spec §6).
type markInactiveResponse struct {
	Success bool `json:"success"`
}

// markInactive :
// Creates the handler serving the mark-inactive endpoint (spec
// §6): immediately flags a participant inactive, called by a
// client's browser beacon right before its tab unloads.
//
// Returns the handler that can be executed to serve such
// requests.
func (s *Server) markInactive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req markInactiveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err)
			return
		}

		if !model.ValidUUID(req.GameID) || !model.ValidUUID(req.PlayerID) {
			writeError(w, http.StatusBadRequest, "invalid gameId or playerId", nil)
			return
		}

		if err := s.gamePlayers.MarkInactive(req.GameID, req.PlayerID); err != nil {
			s.log.Trace(logger.Error, "routes", fmt.Sprintf("could not mark player \"%s\" inactive in game \"%s\" (err: %v)", req.PlayerID, req.GameID, err))
			writeError(w, http.StatusInternalServerError, "could not mark player inactive", err)
			return
		}

		bts, err := json.Marshal(&markInactiveResponse{Success: true})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "could not marshal response", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(bts)
	}
}
