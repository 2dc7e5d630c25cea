package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/log"

	"blogapi/utils"
)

func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error().Str("panic", fmt.Sprint(rec)).Bytes("stack", debug.Stack()).
					Str("path", r.URL.Path).Msg("Recovered from panic")
				utils.RespondWithError(w, http.StatusInternalServerError, "Server error", "")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
