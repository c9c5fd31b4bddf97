package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"insurance-system/pkg/contextkeys"
	apperrors "insurance-system/pkg/errors"
	"insurance-system/pkg/service"
	"insurance-system/pkg/utils"
)

type AuthMiddleware struct {
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		logger:     logger,
	}
}

// Auth проверяет Bearer-токен и кладёт UserID в контекст запроса.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: пустой заголовок Authorization")
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: неверный формат заголовка Authorization")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("AuthMiddleware: ошибка валидации токена", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		if claims.IsRefreshToken {
			m.logger.Warn("AuthMiddleware: попытка доступа с refresh-токеном")
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, m.logger)
		}

		newCtx := context.WithValue(c.Request().Context(), contextkeys.UserIDKey, claims.UserID)
		c.SetRequest(c.Request().WithContext(newCtx))

		return next(c)
	}
}
