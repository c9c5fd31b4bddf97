package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"insurance-system/internal/services"
	apperrors "insurance-system/pkg/errors"
	"insurance-system/pkg/utils"
)

type BranchController struct {
	branchService *services.BranchService
	logger        *zap.Logger
}

func NewBranchController(branchService *services.BranchService, logger *zap.Logger) *BranchController {
	return &BranchController{
		branchService: branchService,
		logger:        logger,
	}
}

func (c *BranchController) GetBranches(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	branches, err := c.branchService.GetBranches(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, branches, "Список филиалов получен", http.StatusOK)
}

func (c *BranchController) FindBranch(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Некорректный ID филиала"), c.logger)
	}

	res, err := c.branchService.FindBranch(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Филиал получен", http.StatusOK)
}
