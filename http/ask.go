package http

import (
	"encoding/json"
	"errors"
	"net/http"
)

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

type healthResponse struct {
	Status      string `json:"status"`
	Documents   int    `json:"documents"`
	Bytes       int    `json:"bytes"`
	Tokens      int    `json:"tokens,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// handleAsk handles "POST /ask".
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBytes)

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: MsgTooLarge})
			return
		}
		s.Logger.Warn("invalid ask request body", "err", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: MsgQuestionMissing})
		return
	}

	answer, err := s.Asker.Ask(r.Context(), req.Question)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, askResponse{Answer: answer})
}

// handleHealth handles "GET /healthz".
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	if s.Stats != nil {
		stats := s.Stats.Stats()
		resp.Documents = stats.Documents
		resp.Bytes = stats.Bytes
		resp.Tokens = stats.Tokens
		resp.Fingerprint = stats.Fingerprint
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
