package middleware

import (
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/storefront/internal/api/resp"
	"github.com/RoyceAzure/lab/storefront/internal/infra/ratelimit"
	"github.com/RoyceAzure/lab/storefront/internal/util"
	"github.com/rs/zerolog"
)

/*
NewRateLimitMiddleware 依使用者限流, 沒登入時用 remote addr
limiter 本身出錯時放行, 只記錄 log
*/
func NewRateLimitMiddleware(limiter ratelimit.Limiter, logger *zerolog.Logger) func(http.Handler) http.Handler {
	if limiter == nil {
		panic("rate limit middleware init failed, limiter is nil")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.RemoteAddr
			if user := util.GetUserFromContext(r.Context()); user != nil {
				key = "user:" + strconv.FormatUint(uint64(user.ID), 10)
			}

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable, allow request")
				allowed = true
			}
			if !allowed {
				resp.ErrorJSON(w, r, http.StatusTooManyRequests, resp.KindTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
