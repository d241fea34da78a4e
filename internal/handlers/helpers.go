package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/noelps-git/tastemates/internal/middleware"
	apperr "github.com/noelps-git/tastemates/pkg/errors"
	"github.com/noelps-git/tastemates/pkg/logger"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// respondError maps an error onto the {"error": {code, message}} shape.
// Unclassified errors become a 500 with a generic message so internals
// never leak to clients.
func respondError(w http.ResponseWriter, err error) {
	appErr := apperr.As(err)
	if appErr == nil {
		logger.Error("unclassified handler error", "error", err)
		appErr = apperr.New(apperr.ErrCodeInternalError, "something went wrong")
	}
	respondJSON(w, apperr.HTTPStatus(appErr.Code), map[string]errorBody{
		"error": {Code: appErr.Code, Message: appErr.Message},
	})
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Wrap(err, apperr.ErrCodeValidation, "invalid request body")
	}
	return nil
}

// pathID extracts a numeric path variable registered on the mux route.
func pathID(r *http.Request, name string) (uint, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.New(apperr.ErrCodeValidation, "invalid "+name)
	}
	return uint(id), nil
}

// requestUser returns the authenticated caller's id set by the auth
// middleware.
func requestUser(r *http.Request) (uint, error) {
	userID, ok := middleware.UserID(r)
	if !ok {
		return 0, apperr.New(apperr.ErrCodeUnauthorized, "authentication required")
	}
	return userID, nil
}
