package errors

import (
	"errors"
	"fmt"
)

var (
	// Токены
	ErrInvalidSigningMethod = errors.New("неверный метод подписи токена")
	ErrInvalidToken         = errors.New("недопустимый токен")
	ErrTokenIsNotAccess     = errors.New("ожидался access-токен")

	// Авторизация
	ErrEmptyAuthHeader    = errors.New("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader  = errors.New("неверный формат заголовка авторизации")
	ErrInvalidCredentials = errors.New("неверные учётные данные")

	// Контекст
	ErrUserIDNotFoundInContext = errors.New("UserID не найден в контексте запроса")

	// Общие
	ErrNotFound   = errors.New("запись не найдена")
	ErrBadRequest = errors.New("неверный запрос")
)

// HttpError - ошибка с HTTP-статусом и сообщением для клиента.
// Исходная ошибка сохраняется для логов и errors.Is/As.
type HttpError struct {
	Code    int
	Message string
	Err     error
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func NewHttpError(code int, message string, err error) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err}
}

func NewBadRequestError(message string) *HttpError {
	return &HttpError{Code: 400, Message: message, Err: ErrBadRequest}
}

func NewNotFoundError(message string) *HttpError {
	return &HttpError{Code: 404, Message: message, Err: ErrNotFound}
}

func NewUnauthorizedError(message string) *HttpError {
	return &HttpError{Code: 401, Message: message, Err: ErrInvalidCredentials}
}
