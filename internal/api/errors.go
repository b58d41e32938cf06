package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nerrad567/pdusim/internal/auth"
	"github.com/nerrad567/pdusim/internal/events"
	"github.com/nerrad567/pdusim/internal/outlet"
	"github.com/nerrad567/pdusim/internal/sensor"
)

// Redfish message registry codes used in error responses.
const (
	codeGeneralError          = "Base.1.0.GeneralError"
	codeResourceMissing       = "Base.1.0.ResourceMissingAtURI"
	codeResourceExists        = "Base.1.0.ResourceAlreadyExists"
	codePropertyMissing       = "Base.1.0.PropertyMissing"
	codePropertyValueNotInLst = "Base.1.0.PropertyValueNotInList"
	codePropertyValueFormat   = "Base.1.0.PropertyValueFormatError"
	codeInvalidAuthToken      = "Base.1.0.InvalidAuthenticationToken"
	codeInsufficientPrivilege = "Base.1.0.InsufficientPrivilege"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeRedfishError writes the standard error envelope:
//
//	{"error": {"code": "...", "message": "..."}}
func writeRedfishError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}

// writeDomainError maps domain sentinel errors to Redfish error
// responses. Unknown errors become 500 GeneralError.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrSessionNotFound):
		writeRedfishError(w, http.StatusNotFound, codeResourceMissing, "Session not found")
	case errors.Is(err, auth.ErrAccountNotFound):
		writeRedfishError(w, http.StatusNotFound, codeResourceMissing, "User not found")
	case errors.Is(err, events.ErrSubscriptionNotFound):
		writeRedfishError(w, http.StatusNotFound, codeResourceMissing, "Subscription not found")
	case errors.Is(err, outlet.ErrOutletNotFound):
		writeRedfishError(w, http.StatusNotFound, codeResourceMissing, "Outlet not found")
	case errors.Is(err, outlet.ErrSegmentNotFound):
		writeRedfishError(w, http.StatusNotFound, codeResourceMissing, "Load segment not found")
	case errors.Is(err, sensor.ErrUnknownSensor):
		writeRedfishError(w, http.StatusNotFound, codeResourceMissing, "Unknown sensor")
	case errors.Is(err, auth.ErrAccountExists):
		writeRedfishError(w, http.StatusConflict, codeResourceExists, "User already exists")
	case errors.Is(err, auth.ErrAccountProtected):
		writeRedfishError(w, http.StatusForbidden, codeInsufficientPrivilege, "Cannot delete admin user")
	case errors.Is(err, events.ErrMissingDestination):
		writeRedfishError(w, http.StatusBadRequest, codePropertyMissing, "destination required")
	case errors.Is(err, auth.ErrInvalidRole):
		writeRedfishError(w, http.StatusBadRequest, codePropertyValueNotInLst, "RoleId must be one of: Administrator, Operator, ReadOnly")
	case errors.Is(err, auth.ErrInvalidUsername):
		writeRedfishError(w, http.StatusBadRequest, codePropertyValueFormat, "Invalid UserName format")
	case errors.Is(err, outlet.ErrInvalidAction):
		writeRedfishError(w, http.StatusBadRequest, codePropertyValueNotInLst, "Action must be one of: On, Off, Cycle")
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrTokenInvalid):
		writeRedfishError(w, http.StatusUnauthorized, codeInvalidAuthToken, "Invalid credentials")
	default:
		s.logger.Error("unhandled API error", "error", err)
		writeRedfishError(w, http.StatusInternalServerError, codeGeneralError, "internal error")
	}
}
