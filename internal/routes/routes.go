package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"insurance-system/internal/controllers"
	"insurance-system/internal/repositories"
	"insurance-system/internal/services"
	"insurance-system/pkg/config"
	"insurance-system/pkg/filestorage"
	"insurance-system/pkg/middleware"
	"insurance-system/pkg/service"
)

// InitRouter собирает репозитории, сервисы и контроллеры и регистрирует
// все маршруты. Авторизация обязательна для всего, кроме /api/auth.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	logger *zap.Logger,
	cfg *config.Config,
) error {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Storage.BasePath)
	if err != nil {
		return err
	}

	letterService, err := services.NewLetterService()
	if err != nil {
		return err
	}

	// Репозитории.
	userRepo := repositories.NewUserRepository(dbConn)
	requestRepo := repositories.NewRequestRepository(dbConn, logger)
	offerRepo := repositories.NewOfferRepository(dbConn, logger)
	summaryRepo := repositories.NewSummaryRepository(dbConn)
	branchRepo := repositories.NewBranchRepository(dbConn, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// Сервисы.
	extractor := services.NewFieldExtractor(logger)
	authService := services.NewAuthService(userRepo, jwtSvc, logger)
	requestService := services.NewRequestService(dbConn, requestRepo, branchRepo, fileStorage, extractor, letterService, logger)
	offerService := services.NewOfferService(dbConn, offerRepo, requestRepo, logger)
	summaryService := services.NewSummaryService(dbConn, summaryRepo, offerRepo, requestRepo, logger)
	branchService := services.NewBranchService(branchRepo, cacheRepo, logger)

	// Контроллеры.
	authController := controllers.NewAuthController(authService, logger)
	requestController := controllers.NewRequestController(requestService, logger)
	offerController := controllers.NewOfferController(offerService, logger)
	summaryController := controllers.NewSummaryController(summaryService, logger)
	branchController := controllers.NewBranchController(branchService, logger)

	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, authController)
	runRequestRouter(secureGroup, requestController, offerController, summaryController)
	runBranchRouter(secureGroup, branchController)

	return nil
}
