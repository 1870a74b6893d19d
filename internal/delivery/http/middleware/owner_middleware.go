package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"oncotrack/pkg/response"

	"github.com/gorilla/mux"
)

var (
	ErrUnauthenticated = errors.New("no authenticated user in context")
	ErrForbidden       = errors.New("resource belongs to another user")
)

// AuthorizeOwner is the single ownership policy: the session user must be ownerID.
func AuthorizeOwner(ctx context.Context, ownerID uint) error {
	userID, ok := GetUserIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}
	if userID != ownerID {
		return ErrForbidden
	}
	return nil
}

// RequireOwner applies AuthorizeOwner to the user id held in the named path variable.
// It must run after AuthMiddleware.Authenticate.
func RequireOwner(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ownerID, err := strconv.ParseUint(mux.Vars(r)[param], 10, 0)
			if err != nil {
				response.BadRequest(w, "Invalid "+param)
				return
			}

			switch err := AuthorizeOwner(r.Context(), uint(ownerID)); {
			case errors.Is(err, ErrUnauthenticated):
				response.Unauthorized(w, "")
				return
			case err != nil:
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
