package routes

import (
	"github.com/labstack/echo/v4"

	"insurance-system/internal/controllers"
)

func runAuthRouter(g *echo.Group, authCtrl *controllers.AuthController) {
	auth := g.Group("/auth")

	auth.POST("/login", authCtrl.Login)
	auth.POST("/refresh", authCtrl.Refresh)
}
