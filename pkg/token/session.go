package token

import (
	"errors"
	"fmt"
	"time"

	"issue_tracker/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// ClockSkew - допуск на расхождение часов между выпуском и проверкой токена
const ClockSkew = 15 * time.Second

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = fmt.Errorf("%w: expired", ErrInvalidToken)
)

// GenerateSessionToken - подписывает HS256 токен с claims {userId, iat, exp}
func GenerateSessionToken(userID string, secretKey []byte, ttl time.Duration, now time.Time) (string, error) {
	if len(secretKey) == 0 {
		return "", errors.New("empty secret key")
	}

	claims := model.SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secretKey)
}

// VerifySessionToken - проверяет подпись и срок действия токена на момент now.
// Любая ожидаемая ошибка (подпись, формат, срок) оборачивает ErrInvalidToken,
// истекший токен дополнительно различим через ErrTokenExpired.
func VerifySessionToken(tokenStr string, secretKey []byte, now time.Time) (*model.SessionClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(ClockSkew),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	token, err := parser.ParseWithClaims(tokenStr, &model.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		_, ok := token.Method.(*jwt.SigningMethodHMAC)
		if !ok {
			return nil, errors.New("unexpected token signing method")
		}

		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*model.SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" || claims.IssuedAt == nil {
		return nil, fmt.Errorf("%w: incomplete claims", ErrInvalidToken)
	}

	return claims, nil
}
