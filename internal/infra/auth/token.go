package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const minSecretKeySize = 32

var (
	ErrInvalidToken = errors.New("token is invalid")
	ErrExpiredToken = errors.New("token has expired")
)

type Payload struct {
	ID        string
	UserID    uint
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenVerifier 只負責驗證, 發 token 由身分服務處理
type TokenVerifier interface {
	VerifyToken(token string) (*Payload, error)
}

// JWTMaker HS256, sub 為 user id
type JWTMaker struct {
	secretKey []byte
}

func NewJWTMaker(secretKey string) (*JWTMaker, error) {
	if len(secretKey) < minSecretKeySize {
		return nil, fmt.Errorf("invalid key size: must be at least %d characters", minSecretKeySize)
	}
	return &JWTMaker{secretKey: []byte(secretKey)}, nil
}

// CreateToken 給測試與本機除錯用
func (m *JWTMaker) CreateToken(userID uint, duration time.Duration) (string, *Payload, error) {
	now := time.Now()
	payload := &Payload{
		ID:        uuid.NewString(),
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(duration),
	}
	claims := jwt.RegisteredClaims{
		ID:        payload.ID,
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(payload.IssuedAt),
		ExpiresAt: jwt.NewNumericDate(payload.ExpiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
	if err != nil {
		return "", nil, err
	}
	return token, payload, nil
}

func (m *JWTMaker) VerifyToken(tokenString string) (*Payload, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return nil, fmt.Errorf("%w: invalid subject", ErrInvalidToken)
	}

	payload := &Payload{
		ID:     claims.ID,
		UserID: uint(userID),
	}
	if claims.IssuedAt != nil {
		payload.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		payload.ExpiresAt = claims.ExpiresAt.Time
	}
	return payload, nil
}

var _ TokenVerifier = (*JWTMaker)(nil)
