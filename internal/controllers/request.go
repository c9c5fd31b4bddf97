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

type RequestController struct {
	requestService *services.RequestService
	logger         *zap.Logger
}

func NewRequestController(requestService *services.RequestService, logger *zap.Logger) *RequestController {
	return &RequestController{
		requestService: requestService,
		logger:         logger,
	}
}

// UploadRequest принимает заполненный бланк и форму с типом лица,
// заводит заявку по извлечённым из бланка полям.
func (c *RequestController) UploadRequest(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var d dto.CreateRequestDTO
	if err := ctx.Bind(&d); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&d); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Файл бланка не приложен"), c.logger)
	}

	userID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.requestService.CreateFromUpload(reqCtx, fileHeader, d, userID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Заявка успешно создана", http.StatusCreated)
}

func (c *RequestController) GetRequests(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	requests, total, err := c.requestService.GetRequests(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, requests, "Список заявок получен", http.StatusOK, total)
}

func (c *RequestController) FindRequest(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Некорректный ID заявки"), c.logger)
	}

	res, err := c.requestService.FindRequest(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Заявка получена", http.StatusOK)
}

func (c *RequestController) UpdateRequest(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Некорректный ID заявки"), c.logger)
	}

	var d dto.UpdateRequestDTO
	if err := ctx.Bind(&d); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&d); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.requestService.UpdateRequest(reqCtx, id, d)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Заявка обновлена", http.StatusOK)
}

// GetRequestLetter отдаёт готовый текст письма страховщикам.
func (c *RequestController) GetRequestLetter(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Некорректный ID заявки"), c.logger)
	}

	letter, err := c.requestService.GetRequestLetter(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, map[string]string{"letter": letter},
		"Письмо сформировано", http.StatusOK)
}

func (c *RequestController) DeleteRequest(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Некорректный ID заявки"), c.logger)
	}

	if err := c.requestService.DeleteRequest(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Заявка удалена", http.StatusOK)
}
