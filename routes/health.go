package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"blogapi/utils"
)

// Check pings one backing service.
type Check func(ctx context.Context) error

func AddHealthRoutes(router *httprouter.Router, checks map[string]Check) {
	router.GET("/health", Health(checks))
}

// Health reports 200 when every check passes and 503 otherwise.
func Health(checks map[string]Check) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				results[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}
		utils.RespondWithJSON(w, status, utils.M{"status": http.StatusText(status), "checks": results})
	}
}
