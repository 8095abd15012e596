package middleware

import (
	"net/http"
	"strings"

	"flight-booking/internal/data/repository"
	"flight-booking/pkg/utils"

	"go.uber.org/zap"
)

// Auth validates the bearer JWT and checks that its user still exists.
// The user id is stored in the request context.
func Auth(secret string, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Not authorized, no token provided.")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			token := strings.TrimSpace(parts[1])

			userID, err := utils.ParseAccessToken(secret, token)
			if err != nil {
				logger.Debug("Token rejected", zap.Error(err), zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Not authorized, token failed.")
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Failed to load token user",
					zap.Int64("user_id", userID),
					zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if user == nil {
				logger.Warn("Token for unknown user", zap.Int64("user_id", userID))
				utils.ResponseUnauthorized(w, "Not authorized, user not found.")
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.SetUserContext(r.Context(), user.ID)))
		})
	}
}
