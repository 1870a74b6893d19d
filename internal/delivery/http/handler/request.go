package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"

	"oncotrack/internal/delivery/http/middleware"
	"oncotrack/pkg/response"
	"oncotrack/pkg/validator"

	"github.com/gorilla/mux"
)

// decodeAndValidate writes the error response itself and reports whether the handler may go on.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid request body")
		return false
	}

	if err := v.Validate(dst); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}
	return true
}

// decodeOptional accepts an empty body.
func decodeOptional(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request body")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 0)
	if err != nil || id == 0 {
		response.BadRequest(w, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// sessionUser returns the authenticated user. A userId sent in the body must
// name the same user.
func sessionUser(w http.ResponseWriter, r *http.Request, bodyUserID *uint) (uint, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return 0, false
	}
	if bodyUserID != nil {
		if err := middleware.AuthorizeOwner(r.Context(), *bodyUserID); err != nil {
			response.Forbidden(w, "userId does not match the authenticated user")
			return 0, false
		}
	}
	return userID, true
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
