package service

import (
	"context"

	"github.com/RoyceAzure/lab/storefront/internal/constants"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	vm "github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/rs/zerolog"
)

type IPaymentService interface {
	ListPayments(ctx context.Context, skip, limit int) (*vm.PaymentList, error)
}

type PaymentService struct {
	dbDao  db.IPaymentRepository
	logger *zerolog.Logger
}

func NewPaymentService(dbDao db.IPaymentRepository, logger *zerolog.Logger) *PaymentService {
	if dbDao == nil || logger == nil {
		panic("payment service init failed, missing dependency")
	}
	return &PaymentService{dbDao: dbDao, logger: logger}
}

// ListPayments 管理員查詢全部付款紀錄, limit 未給用預設值, 超過上限截斷
func (s *PaymentService) ListPayments(ctx context.Context, skip, limit int) (*vm.PaymentList, error) {
	if skip < 0 {
		return nil, ErrInvalidPaging
	}
	if limit <= 0 {
		limit = constants.DefaultPaymentListSize
	}
	if limit > constants.MaxPaymentListSize {
		limit = constants.MaxPaymentListSize
	}

	payments, total, err := s.dbDao.ListPayments(ctx, skip, limit)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int("skip", skip).
		Int("limit", limit).
		Int64("total", total).
		Msg("payments listed")
	return vm.NewPaymentList(payments, total), nil
}

var _ IPaymentService = (*PaymentService)(nil)
