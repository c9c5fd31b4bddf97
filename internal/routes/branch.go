package routes

import (
	"github.com/labstack/echo/v4"

	"insurance-system/internal/controllers"
)

func runBranchRouter(g *echo.Group, branchCtrl *controllers.BranchController) {
	g.GET("/branches", branchCtrl.GetBranches)
	g.GET("/branches/:id", branchCtrl.FindBranch)
}
