package utils

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "insurance-system/pkg/errors"
)

type HttpResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
	Total   *uint64     `json:"total,omitempty"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, total ...uint64) error {
	response := &HttpResponse{
		Status:  true,
		Body:    body,
		Message: message,
	}
	if len(total) > 0 {
		response.Total = &total[0]
	}
	return ctx.JSON(code, response)
}

// ErrorResponse переводит ошибку в HTTP-ответ. Наружу уходит только
// сообщение для клиента, исходная ошибка остаётся в логах.
func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	code := http.StatusInternalServerError
	message := "Внутренняя ошибка сервера"

	var httpErr *apperrors.HttpError
	switch {
	case errors.As(err, &httpErr):
		code = httpErr.Code
		message = httpErr.Message
	case errors.Is(err, apperrors.ErrNotFound):
		code = http.StatusNotFound
		message = apperrors.ErrNotFound.Error()
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrEmptyAuthHeader),
		errors.Is(err, apperrors.ErrInvalidAuthHeader),
		errors.Is(err, apperrors.ErrTokenIsNotAccess):
		code = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, apperrors.ErrBadRequest):
		code = http.StatusBadRequest
		message = err.Error()
	}

	if code == http.StatusInternalServerError && logger != nil {
		logger.Error("необработанная ошибка", zap.Error(err))
	}

	return ctx.JSON(code, &HttpResponse{
		Status:  false,
		Body:    struct{}{},
		Message: message,
	})
}
