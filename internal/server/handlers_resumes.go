package server

import (
	"log"
	"net/http"
)

// handleListResumes returns the history index, newest first
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	history, err := s.store.ListHistory(r.Context())
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, history)
}

// handleGetResume returns one stored analysis
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	record, err := s.store.GetAnalysis(r.Context(), r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, record)
}

// handleClearResumes removes every stored analysis
func (s *Server) handleClearResumes(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(r.Context()); err != nil {
		s.errorResponse(w, err)
		return
	}
	log.Printf("[server] History cleared by %s", extractClientID(r))
	w.WriteHeader(http.StatusNoContent)
}
