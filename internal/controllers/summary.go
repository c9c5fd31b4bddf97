package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"insurance-system/internal/dto"
	"insurance-system/internal/services"
	apperrors "insurance-system/pkg/errors"
	"insurance-system/pkg/utils"
)

type SummaryController struct {
	summaryService *services.SummaryService
	logger         *zap.Logger
}

func NewSummaryController(summaryService *services.SummaryService, logger *zap.Logger) *SummaryController {
	return &SummaryController{
		summaryService: summaryService,
		logger:         logger,
	}
}

// GenerateSummary пересчитывает сводку по собранным предложениям.
func (c *SummaryController) GenerateSummary(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	requestID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Некорректный ID заявки"), c.logger)
	}

	res, err := c.summaryService.GenerateSummary(reqCtx, requestID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Сводка сформирована", http.StatusOK)
}

func (c *SummaryController) FindSummary(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	requestID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Некорректный ID заявки"), c.logger)
	}

	res, err := c.summaryService.FindSummary(reqCtx, requestID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Сводка получена", http.StatusOK)
}

func (c *SummaryController) ChooseOffer(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	requestID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Некорректный ID заявки"), c.logger)
	}

	var d dto.ChooseOfferDTO
	if err := ctx.Bind(&d); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&d); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.summaryService.ChooseOffer(reqCtx, requestID, d)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Предложение выбрано", http.StatusOK)
}

func (c *SummaryController) MarkSent(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	requestID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Некорректный ID заявки"), c.logger)
	}

	res, err := c.summaryService.MarkSent(reqCtx, requestID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Сводка отмечена как отправленная", http.StatusOK)
}
