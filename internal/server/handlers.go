package server

// #region imports
import (
	"encoding/json"
	"net/http"
	"strings"
)

// #endregion

// #region request-types

type askRequest struct {
	Question string `json:"question"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// #endregion request-types

// #region ask

// handleAsk validates the question and runs the engine. Malformed or
// empty questions are the caller's error (400); everything past
// validation terminates in the engine's envelope with HTTP 200 — refusals
// and collaborator failures are statuses in the body, not transport
// errors.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "question cannot be empty"})
		return
	}

	result := s.engine.Answer(r.Context(), req.Question)
	s.log.Info().
		Str("status", string(result.Status)).
		Int("citations", len(result.Citations)).
		Msg("answered question")
	writeJSON(w, http.StatusOK, result)
}

// #endregion ask

// #region health

type healthResponse struct {
	Status            string `json:"status"`
	FactsDocuments    int    `json:"facts_documents"`
	ExternalDocuments int    `json:"external_documents"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	facts, external := s.counts.Counts()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:            "healthy",
		FactsDocuments:    facts,
		ExternalDocuments: external,
	})
}

// #endregion health

// #region root

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "product QA API",
		"endpoints": map[string]string{
			"/ask":    "POST - ask a question",
			"/health": "GET - health check",
		},
	})
}

// #endregion root

// #region helpers

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// #endregion helpers
