package util

import (
	"context"

	"github.com/RoyceAzure/lab/storefront/internal/constants"
	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/auth"
)

// GetTokenPayloadFromContext 沒有登入時回傳 nil
func GetTokenPayloadFromContext(ctx context.Context) *auth.Payload {
	payload, ok := ctx.Value(constants.AuthorizationPayloadKey).(*auth.Payload)
	if !ok {
		return nil
	}
	return payload
}

// GetUserFromContext auth middleware 已載入的使用者, 沒有時回傳 nil
func GetUserFromContext(ctx context.Context) *model.User {
	user, ok := ctx.Value(constants.AuthorizationUserKey).(*model.User)
	if !ok {
		return nil
	}
	return user
}

func WithUser(ctx context.Context, payload *auth.Payload, user *model.User) context.Context {
	ctx = context.WithValue(ctx, constants.AuthorizationPayloadKey, payload)
	return context.WithValue(ctx, constants.AuthorizationUserKey, user)
}

func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(constants.RequestIDKey).(string); ok {
		return v
	}
	return "unknown"
}
