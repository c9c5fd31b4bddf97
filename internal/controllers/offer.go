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

type OfferController struct {
	offerService *services.OfferService
	logger       *zap.Logger
}

func NewOfferController(offerService *services.OfferService, logger *zap.Logger) *OfferController {
	return &OfferController{
		offerService: offerService,
		logger:       logger,
	}
}

func (c *OfferController) CreateOffer(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	requestID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Некорректный ID заявки"), c.logger)
	}

	var d dto.CreateOfferDTO
	if err := ctx.Bind(&d); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&d); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.offerService.CreateOffer(reqCtx, requestID, d)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Предложение добавлено", http.StatusCreated)
}

func (c *OfferController) GetOffers(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	requestID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Некорректный ID заявки"), c.logger)
	}

	offers, err := c.offerService.GetOffers(reqCtx, requestID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, offers, "Список предложений получен", http.StatusOK)
}

func (c *OfferController) DeleteOffer(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := strconv.ParseUint(ctx.Param("offerId"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Некорректный ID предложения"), c.logger)
	}

	if err := c.offerService.DeleteOffer(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Предложение удалено", http.StatusOK)
}
