// internal/handler/respond.go
//
// JSON request/response helpers and the fault-to-HTTP mapping.
//
// The taxonomy maps as: validation → 400, authentication → 401,
// configuration → 500, upstream → 502.  Everything else is a plain 500.
// Messages shown to the client come from the fault itself, which never
// carries credentials or SQL detail.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/omniakid/omniakid/internal/content"
	"github.com/omniakid/omniakid/internal/fault"
	"github.com/omniakid/omniakid/internal/middleware"
)

// errorBody is the uniform error envelope.
type errorBody struct {
	Error string `json:"error"`
}

// readJSON decodes the request body into dst, rejecting unknown fields.
func readJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status code and a client-safe body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, content.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
		return
	}

	switch fault.KindOf(err) {
	case fault.KindValidation:
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case fault.KindAuthentication:
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: err.Error()})
	case fault.KindConfiguration:
		zap.S().Errorw("configuration fault",
			"err", err, "request_id", middleware.GetRequestID(r.Context()))
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "server configuration error"})
	case fault.KindUpstream:
		zap.S().Errorw("upstream fault",
			"err", err, "request_id", middleware.GetRequestID(r.Context()))
		writeJSON(w, http.StatusBadGateway, errorBody{Error: "temporary backend failure"})
	default:
		zap.S().Errorw("unclassified fault",
			"err", err, "request_id", middleware.GetRequestID(r.Context()))
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}
