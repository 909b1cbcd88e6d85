package db

import (
	"context"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
)

type UserRepo struct {
	db *DbDao
}

func NewUserRepo(db *DbDao) *UserRepo {
	return &UserRepo{db: db}
}

// Create - email 重複回傳 ErrDuplicateKey
func (s *UserRepo) CreateUser(ctx context.Context, user *model.User) error {
	return translateError(s.db.WithContext(ctx).Create(user).Error)
}

func (s *UserRepo) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
