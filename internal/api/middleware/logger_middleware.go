package middleware

import (
	"net/http"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/util"
	"github.com/rs/zerolog"
)

type StatusRecoder struct {
	http.ResponseWriter
	status int
}

func NewStatusRecoder(w http.ResponseWriter) *StatusRecoder {
	return &StatusRecoder{ResponseWriter: w, status: http.StatusOK}
}

func (w *StatusRecoder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *StatusRecoder) Status() int {
	return w.status
}

func getUserID(r *http.Request) uint {
	if user := util.GetUserFromContext(r.Context()); user != nil {
		return user.ID
	}
	return 0
}

// 記錄request 請求, 需放在 AuthPayloadMiddleware 之後才拿得到 user
func LoggerMiddleware(logger *zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recoder := NewStatusRecoder(w)
			next.ServeHTTP(recoder, r)

			event := logger.Info()
			if recoder.Status() >= http.StatusInternalServerError {
				event = logger.Error()
			}
			event.
				Str("request_id", util.GetRequestID(r.Context())).
				Uint("user_id", getUserID(r)).
				Str("method", r.Method).
				Str("url", r.URL.String()).
				Int("status", recoder.Status()).
				Dur("latency", time.Since(start)).
				Msg("request completed")
		})
	}
}
