package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/RoyceAzure/lab/storefront/internal/api/resp"
	"github.com/RoyceAzure/lab/storefront/internal/util"
	"github.com/rs/zerolog"
)

func RecoverMiddleware(logger *zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					var errMsg string
					if e, ok := rec.(error); ok {
						errMsg = e.Error()
					} else {
						errMsg = fmt.Sprintf("%v", rec)
					}
					logger.Error().
						Str("request_id", util.GetRequestID(r.Context())).
						Str("method", r.Method).
						Str("url", r.URL.String()).
						Str("error", errMsg).
						Bytes("stack", debug.Stack()).
						Msg("panic recovered")

					resp.ErrorJSON(w, r, http.StatusInternalServerError, resp.KindInternal, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
