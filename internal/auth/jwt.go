package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/senyabanana/freight-service/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// AccessClaims - полезная нагрузка access-токена.
type AccessClaims struct {
	jwt.RegisteredClaims
	Role   models.Role `json:"role"`
	UserID string      `json:"user_id"`
}

// JWTManager выпускает и проверяет access-токены (HS256).
type JWTManager struct {
	signingKey []byte
	accessTTL  time.Duration
	now        func() time.Time
}

func NewJWTManager(signingKey string, accessTTL time.Duration) *JWTManager {
	return &JWTManager{
		signingKey: []byte(signingKey),
		accessTTL:  accessTTL,
		now:        time.Now,
	}
}

// Issue выпускает токен для пользователя и возвращает его срок жизни в секундах.
func (m *JWTManager) Issue(userID string, role models.Role) (string, int64, error) {
	now := m.now()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
		Role:   role,
		UserID: userID,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKey)
	if err != nil {
		return "", 0, fmt.Errorf("sign access token: %w", err)
	}
	return token, int64(m.accessTTL.Seconds()), nil
}

// Parse проверяет подпись и срок токена и возвращает участника.
func (m *JWTManager) Parse(tokenStr string) (Actor, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &AccessClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return m.signingKey, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return Actor{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(*AccessClaims)
	if !ok || !tok.Valid {
		return Actor{}, ErrInvalidToken
	}
	id := claims.UserID
	if id == "" {
		id = claims.Subject
	}
	if id == "" || !claims.Role.Valid() {
		return Actor{}, ErrInvalidToken
	}
	return Actor{ID: id, Role: claims.Role}, nil
}
