package identity

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"socialfeed/internal/apperrors"
	"socialfeed/internal/config"
)

// Identity - проверенные данные пользователя из внешнего провайдера
type Identity struct {
	UID         string
	DisplayName string
	Email       string
	AvatarRef   string
}

// Verifier превращает непрозрачный credential в стабильную личность пользователя
type Verifier interface {
	Verify(ctx context.Context, credential string) (*Identity, error)
}

type jwtVerifier struct {
	secret []byte
}

func NewJWTVerifier(cfg *config.Config) Verifier {
	return &jwtVerifier{secret: []byte(cfg.JWTSecretKey)}
}

func (v *jwtVerifier) Verify(ctx context.Context, credential string) (*Identity, error) {
	token, err := jwt.Parse(credential, func(token *jwt.Token) (interface{}, error) {
		// checking the signature algorithm
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга токена: %w", apperrors.ErrInvalidCredential)
	}

	if !token.Valid {
		return nil, fmt.Errorf("недействительный токен: %w", apperrors.ErrInvalidCredential)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("неверный формат claims: %w", apperrors.ErrInvalidCredential)
	}

	uid, ok := claims["sub"].(string)
	if !ok || uid == "" {
		return nil, fmt.Errorf("в токене отсутствует sub: %w", apperrors.ErrInvalidCredential)
	}

	ident := &Identity{UID: uid}
	if name, ok := claims["name"].(string); ok {
		ident.DisplayName = name
	}
	if email, ok := claims["email"].(string); ok {
		ident.Email = email
	}
	if picture, ok := claims["picture"].(string); ok {
		ident.AvatarRef = picture
	}

	// имя может отсутствовать у провайдера, тогда показываем email
	if ident.DisplayName == "" {
		ident.DisplayName = ident.Email
	}

	return ident, nil
}
