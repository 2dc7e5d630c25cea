package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/rs/cors"

	"blogapi/utils"
)

// CORS answers preflights for the allow-listed origins and rejects requests
// carrying any other Origin. Requests without an Origin header pass.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	return func(next http.Handler) http.Handler {
		wrapped := c.Handler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && !slices.Contains(allowedOrigins, strings.TrimRight(origin, "/")) {
				utils.RespondWithError(w, http.StatusForbidden, "Not allowed by CORS", "origin "+origin+" is not allowed")
				return
			}
			wrapped.ServeHTTP(w, r)
		})
	}
}
