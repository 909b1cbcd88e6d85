package db

import (
	"context"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
)

type PaymentRepo struct {
	db *DbDao
}

func NewPaymentRepo(db *DbDao) *PaymentRepo {
	return &PaymentRepo{db: db}
}

func (s *PaymentRepo) CreatePayment(ctx context.Context, payment *model.Payment) error {
	return s.db.WithContext(ctx).Create(payment).Error
}

// ListPayments 依 id 排序分頁, total 為全部筆數
func (s *PaymentRepo) ListPayments(ctx context.Context, offset, limit int) ([]model.Payment, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Payment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []model.Payment
	err := s.db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}
