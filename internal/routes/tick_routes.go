package routes

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Dorschm/stellar-sub001/internal/tick"
	"github.com/Dorschm/stellar-sub001/pkg/logger"
)

// tickRequest :
// Mirrors the JSON body expected by the tick endpoint (spec
// §6).
type tickRequest struct {
	GameID string `json:"gameId"`
}

// errorResponse :
// Mirrors the error shape of the tick and mark-inactive
// endpoints (spec §6, §7).
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// writeError :
// Marshals and sends an `errorResponse` with the given status
// code.
func writeError(w http.ResponseWriter, status int, message string, details error) {
	resp := errorResponse{Error: message}
	if details != nil {
		resp.Details = details.Error()
	}

	bts, err := json.Marshal(&resp)
	if err != nil {
		http.Error(w, message, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bts)
}

// tick :
// Creates the handler serving the tick endpoint (spec §6):
// runs every phase of spec §4.3 for the requested game and
// reports the outcome shape the driver itself also produces.
//
// Returns the handler that can be executed to serve such
// requests.
func (s *Server) tick() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tickRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err)
			return
		}

		result, err := s.processor.Process(req.GameID)
		if err != nil {
			if err == tick.ErrInvalidGameID {
				writeError(w, http.StatusBadRequest, "invalid gameId", err)
				return
			}

			s.log.Trace(logger.Error, "routes", fmt.Sprintf("tick failed for game \"%s\" (err: %v)", req.GameID, err))
			writeError(w, http.StatusInternalServerError, "tick failed", err)
			return
		}

		bts, err := json.Marshal(&result)
		if err != nil {
			s.log.Trace(logger.Error, "routes", fmt.Sprintf("could not marshal tick result for game \"%s\" (err: %v)", req.GameID, err))
			writeError(w, http.StatusInternalServerError, "could not marshal response", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(bts)
	}
}
