package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/pdusim/internal/auth"
	"github.com/nerrad567/pdusim/internal/resource"
)

const sessionsURI = "/redfish/v1/SessionService/Sessions"

// sessionResource renders a session as a Redfish resource.
func sessionResource(s *auth.Session) map[string]any {
	body := resource.New(
		fmt.Sprintf("%s/%s", sessionsURI, s.ID),
		"#Session.v1_1_0.Session", s.ID, "Session")
	body["UserName"] = s.Username
	body["Created"] = s.CreatedAt.Unix()
	return body
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.auth.ListSessions(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	members := make([]string, 0, len(sessions))
	for _, session := range sessions {
		members = append(members, fmt.Sprintf("%s/%s", sessionsURI, session.ID))
	}
	writeJSON(w, http.StatusOK, resource.Collection(sessionsURI,
		"#SessionCollection.SessionCollection", "Session Collection", members))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.auth.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResource(session))
}

// handleCreateSession logs in with body credentials and mints a session
// token. The token is returned in the X-Auth-Token header and echoed in
// the body, matching what the emulated unit does.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeRedfishError(w, http.StatusBadRequest, codePropertyValueFormat, "Invalid JSON body")
		return
	}
	if body.Username == "" || body.Password == "" {
		writeRedfishError(w, http.StatusBadRequest, codePropertyMissing, "username/password required")
		return
	}

	session, token, err := s.auth.CreateSession(r.Context(), body.Username, body.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeRedfishError(w, http.StatusUnauthorized, codeInvalidAuthToken, "Invalid credentials")
			return
		}
		s.writeDomainError(w, err)
		return
	}

	if s.notifier != nil {
		s.notifier.Event("SessionCreated", map[string]any{"username": session.Username})
	}

	payload := sessionResource(session)
	payload["X-Auth-Token"] = token

	w.Header().Set("X-Auth-Token", token)
	w.Header().Set("Location", fmt.Sprintf("%s/%s", sessionsURI, session.ID))
	writeJSON(w, http.StatusCreated, payload)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.DeleteSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
