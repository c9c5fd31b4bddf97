package routes

import (
	"github.com/labstack/echo/v4"

	"insurance-system/internal/controllers"
)

func runRequestRouter(
	g *echo.Group,
	requestCtrl *controllers.RequestController,
	offerCtrl *controllers.OfferController,
	summaryCtrl *controllers.SummaryController,
) {
	g.POST("/requests/upload", requestCtrl.UploadRequest)
	g.GET("/requests", requestCtrl.GetRequests)
	g.GET("/requests/:id", requestCtrl.FindRequest)
	g.PUT("/requests/:id", requestCtrl.UpdateRequest)
	g.DELETE("/requests/:id", requestCtrl.DeleteRequest)
	g.GET("/requests/:id/letter", requestCtrl.GetRequestLetter)

	g.POST("/requests/:id/offers", offerCtrl.CreateOffer)
	g.GET("/requests/:id/offers", offerCtrl.GetOffers)
	g.DELETE("/requests/:id/offers/:offerId", offerCtrl.DeleteOffer)

	g.POST("/requests/:id/summary", summaryCtrl.GenerateSummary)
	g.GET("/requests/:id/summary", summaryCtrl.FindSummary)
	g.POST("/requests/:id/summary/choose", summaryCtrl.ChooseOffer)
	g.POST("/requests/:id/summary/sent", summaryCtrl.MarkSent)
}
