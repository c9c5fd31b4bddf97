package main

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"insurance-system/internal/routes"
	"insurance-system/pkg/config"
	"insurance-system/pkg/database/postgresql"
	apperrors "insurance-system/pkg/errors"
	applogger "insurance-system/pkg/logger"
	"insurance-system/pkg/service"
	"insurance-system/pkg/utils"
)

func main() {
	e := echo.New()
	logger := applogger.NewLogger()
	cfg := config.New()

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("обнаружена паника",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition"},
	}))

	absPath, err := filepath.Abs(cfg.Storage.BasePath)
	if err != nil {
		logger.Fatal("не удалось получить абсолютный путь к хранилищу", zap.Error(err))
	}
	e.Static("/uploads", absPath)

	e.Validator = utils.NewValidator(validator.New())

	dbConn := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbConn.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Fatal("не удалось подключиться к Redis",
			zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)

	if err := routes.InitRouter(e, dbConn, redisClient, jwtSvc, logger, cfg); err != nil {
		logger.Fatal("не удалось инициализировать маршруты", zap.Error(err))
	}

	logger.Info("сервер запускается", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
		logger.Fatal("сервер остановлен с ошибкой", zap.Error(err))
	}
}
