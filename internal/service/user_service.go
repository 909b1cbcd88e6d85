package service

import (
	"context"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
)

type IUserService interface {
	GetActiveUser(ctx context.Context, id uint) (*model.User, error)
}

type UserService struct {
	dbDao db.IUserRepository
}

func NewUserService(dbDao db.IUserRepository) *UserService {
	if dbDao == nil {
		panic("user service init failed, dbDao is nil")
	}
	return &UserService{dbDao: dbDao}
}

// GetActiveUser 停用的帳號視同未登入
func (u *UserService) GetActiveUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := u.dbDao.GetUserByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserDisabled
	}
	return user, nil
}

var _ IUserService = (*UserService)(nil)
