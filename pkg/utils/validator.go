package utils

import (
	"github.com/go-playground/validator/v10"

	apperrors "insurance-system/pkg/errors"
)

// CustomValidator - адаптер validator/v10 под echo.Validator.
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator(v *validator.Validate) *CustomValidator {
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return apperrors.NewBadRequestError(err.Error())
	}
	return nil
}
