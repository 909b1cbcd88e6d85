package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/auth"
	"github.com/RoyceAzure/lab/storefront/internal/util"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (s *stubLimiter) Allow(ctx context.Context, key string) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allowed, s.err
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusAccepted)
}

func TestRateLimitMiddleware(t *testing.T) {
	logger := zerolog.Nop()
	testCases := []struct {
		name    string
		limiter *stubLimiter
		status  int
	}{
		{name: "allowed", limiter: &stubLimiter{allowed: true}, status: http.StatusAccepted},
		{name: "limited", limiter: &stubLimiter{allowed: false}, status: http.StatusTooManyRequests},
		{name: "limiter error allows", limiter: &stubLimiter{err: errors.New("redis down")}, status: http.StatusAccepted},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewRateLimitMiddleware(tc.limiter, &logger)(http.HandlerFunc(okHandler))

			req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
			req = req.WithContext(util.WithUser(req.Context(), &auth.Payload{UserID: 42}, &model.User{ID: 42}))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tc.status, rec.Code)
			require.Equal(t, []string{"user:42"}, tc.limiter.keys)
		})
	}
}

func TestStatusRecoderDefaultsToOK(t *testing.T) {
	rec := NewStatusRecoder(httptest.NewRecorder())
	require.Equal(t, http.StatusOK, rec.Status())
	rec.WriteHeader(http.StatusTeapot)
	require.Equal(t, http.StatusTeapot, rec.Status())
}

func TestAdminMiddleware(t *testing.T) {
	h := AdminMiddleware(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = req.WithContext(util.WithUser(req.Context(), &auth.Payload{UserID: 1}, &model.User{ID: 1}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	req = req.WithContext(util.WithUser(req.Context(), &auth.Payload{UserID: 2}, &model.User{ID: 2, IsSuperuser: true}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusAccepted, rec.Code)
}
