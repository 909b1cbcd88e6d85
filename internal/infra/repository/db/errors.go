package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrDuplicateKey = errors.New("duplicate key")
)

const pgUniqueViolation = "23505"

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsNotFound gorm 查無資料
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if IsUniqueViolation(err) {
		return errors.Join(ErrDuplicateKey, err)
	}
	return err
}
