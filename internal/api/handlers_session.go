package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	session, err := s.svc.Sessions.Get(r.Context(), id.UserID)
	if err != nil {
		writeAppError(w, s.logger, err)
		return
	}
	if session == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleSetCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	var body struct {
		CompanyID int64 `json:"companyId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	session, err := s.svc.Sessions.SetCompany(r.Context(), id.UserID, body.CompanyID)
	if err != nil {
		writeAppError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleSetAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	var body struct {
		RoadAddr string `json:"roadAddr"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	session, err := s.svc.Sessions.SetDefaultAddress(r.Context(), id.UserID, body.RoadAddr)
	if err != nil {
		writeAppError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleClearSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	if err := s.svc.Sessions.Clear(r.Context(), id.UserID); err != nil {
		writeAppError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// requireUser rejects callers whose token names no user.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (Identity, bool) {
	if s.svc.Sessions == nil {
		writeError(w, http.StatusNotImplemented, "sessions are not configured")
		return Identity{}, false
	}
	id := IdentityFrom(r.Context())
	if id.UserID == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return Identity{}, false
	}
	return id, true
}
