package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/RoyceAzure/lab/storefront/internal/api/resp"
	"github.com/RoyceAzure/lab/storefront/internal/constants"
	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/auth"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/RoyceAzure/lab/storefront/internal/util"
	"github.com/rs/zerolog"
)

/*
AuthPayloadMiddleware 解析 token 並載入使用者
token 無效, 使用者不存在或已停用都不中斷, 只是不設置 context, 交給 AuthMiddleware 擋
*/
func AuthPayloadMiddleware(verifier auth.TokenVerifier, users service.IUserService, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			payload, ok := checkAuthPayload(verifier, r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			user, err := loadUser(r.Context(), users, payload)
			if err != nil {
				logger.Debug().Err(err).Uint("user_id", payload.UserID).Msg("reject token user")
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(util.WithUser(r.Context(), payload, user)))
		})
	}
}

func checkAuthPayload(verifier auth.TokenVerifier, r *http.Request) (*auth.Payload, bool) {
	authorizationHeader := r.Header.Get(string(constants.AuthorizationHeaderKey))
	if len(authorizationHeader) == 0 {
		return nil, false
	}

	fields := strings.Fields(authorizationHeader)
	if len(fields) != 2 {
		return nil, false
	}

	authorizationType := strings.ToLower(fields[0])
	if authorizationType != string(constants.AuthorizationTypeBearer) {
		return nil, false
	}

	payload, err := verifier.VerifyToken(fields[1])
	if err != nil {
		return nil, false
	}
	return payload, true
}

func loadUser(ctx context.Context, users service.IUserService, payload *auth.Payload) (*model.User, error) {
	return users.GetActiveUser(ctx, payload.UserID)
}

// AuthMiddleware 需要已登入的使用者
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if util.GetUserFromContext(r.Context()) == nil {
			resp.ErrorJSON(w, r, http.StatusUnauthorized, resp.KindUnauthenticated, "unauthenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminMiddleware 需要 superuser, 必須放在 AuthMiddleware 之後
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := util.GetUserFromContext(r.Context())
		if user == nil {
			resp.ErrorJSON(w, r, http.StatusUnauthorized, resp.KindUnauthenticated, "unauthenticated")
			return
		}
		if !user.IsSuperuser {
			resp.ErrorJSON(w, r, http.StatusForbidden, resp.KindForbidden, "admin only")
			return
		}
		next.ServeHTTP(w, r)
	})
}
