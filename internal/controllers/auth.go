package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"insurance-system/internal/dto"
	"insurance-system/internal/services"
	apperrors "insurance-system/pkg/errors"
	"insurance-system/pkg/utils"
)

type AuthController struct {
	authService *services.AuthService
	logger      *zap.Logger
}

func NewAuthController(authService *services.AuthService, logger *zap.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

func (c *AuthController) Login(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var d dto.LoginDTO
	if err := ctx.Bind(&d); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&d); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	tokens, err := c.authService.Login(reqCtx, d)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, tokens, "Вход выполнен", http.StatusOK)
}

func (c *AuthController) Refresh(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var d struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}
	if err := ctx.Bind(&d); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&d); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	tokens, err := c.authService.Refresh(reqCtx, d.RefreshToken)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, tokens, "Токены обновлены", http.StatusOK)
}
