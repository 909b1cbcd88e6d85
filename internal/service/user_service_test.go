package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/stretchr/testify/require"
)

func TestGetActiveUser(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDB()
	svc := NewUserService(fake)

	active := &model.User{Email: "active@example.com", IsActive: true}
	disabled := &model.User{Email: "disabled@example.com", IsActive: false}
	require.NoError(t, fake.CreateUser(ctx, active))
	require.NoError(t, fake.CreateUser(ctx, disabled))

	got, err := svc.GetActiveUser(ctx, active.ID)
	require.NoError(t, err)
	require.Equal(t, "active@example.com", got.Email)

	_, err = svc.GetActiveUser(ctx, disabled.ID)
	require.ErrorIs(t, err, ErrUserDisabled)

	_, err = svc.GetActiveUser(ctx, 9999)
	require.ErrorIs(t, err, ErrUserNotFound)
	require.ErrorIs(t, err, ErrNotFound)
}
