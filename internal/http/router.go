// README: HTTP router registration.
package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"courier/internal/http/handlers"
	"courier/internal/http/middleware"
)

func NewRouter(deps ServerDeps, allowedOrigins []string, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(log),
		middleware.Logging(log),
		cors.New(cors.Config{
			AllowOrigins:     allowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success", "data": "OK"})
	})

	api := r.Group("/api")

	travelerHandler := handlers.NewTravelerHandler(deps.Traveler)
	api.GET("/travellers", travelerHandler.List)
	api.POST("/travellers", travelerHandler.Register)
	api.GET("/travellers/:id", travelerHandler.Get)
	api.PATCH("/travellers/:id/status", travelerHandler.UpdateStatus)

	partnerHandler := handlers.NewPartnerHandler(deps.Partner)
	api.GET("/partners", partnerHandler.List)
	api.POST("/partners", partnerHandler.Register)
	api.PATCH("/partners/:id/status", partnerHandler.UpdateStatus)

	accountHandler := handlers.NewAccountHandler(deps.Sender, deps.Customer)
	api.GET("/senders", accountHandler.ListSenders)
	api.POST("/senders", accountHandler.RegisterSender)
	api.GET("/customers", accountHandler.ListCustomers)
	api.POST("/customers", accountHandler.RegisterCustomer)

	orderHandler := handlers.NewOrderHandler(deps.Order)
	api.GET("/orders", orderHandler.List)
	api.POST("/orders", orderHandler.Create)
	api.GET("/orders/:id", orderHandler.Get)
	api.GET("/orders/:id/events", orderHandler.Events)
	api.POST("/orders/:id/assign", orderHandler.Assign)
	api.POST("/orders/:id/status", orderHandler.Advance)
	api.POST("/orders/:id/cancel", orderHandler.Cancel)

	matchingHandler := handlers.NewMatchingHandler(deps.Matching)
	api.GET("/orders/:id/matches", matchingHandler.Matches)
	api.GET("/orders/:id/quick-matches", matchingHandler.QuickMatches)
	api.GET("/orders/:id/selection", matchingHandler.Selection)
	api.GET("/board", matchingHandler.Board)

	feeHandler := handlers.NewFeeHandler(deps.Pricing)
	api.GET("/fees", feeHandler.Table)
	api.GET("/fees/quote", feeHandler.Quote)
	api.GET("/fees/selection-quote", feeHandler.SelectionQuote)

	return r
}
