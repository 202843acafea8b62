package middleware

import (
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"

	"github.com/hemloeth/attendance/internal/domain/auth"
	"github.com/hemloeth/attendance/internal/domain/user"
	"github.com/hemloeth/attendance/internal/handler/http/response"
)

// AdminRequired gates a route to admin users. The role is re-read from the
// users table on every request, so the role claim baked into a still-valid
// token cannot outlive a demotion.
func AdminRequired(userRepository user.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			email, ok := claims["email"].(string)
			if !ok || email == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			userData, err := userRepository.GetByEmail(r.Context(), email)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, user.ErrUserNotFound) {
					response.HandleError(w, user.ErrUserNotFound)
					return
				}
				response.InternalServerError(w, "Failed to resolve user role")
				return
			}

			if !userData.IsAdmin() {
				response.HandleError(w, user.ErrAdminPrivilegeRequired)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
