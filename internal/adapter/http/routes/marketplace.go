package routes

import (
	"event_marketplace/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPing     = "/ping"
	PathQuotes   = "/quotes"
	PathBookings = "/bookings"
	PathListings = "/listings"
	PathPayments = "/payments"
	PathWebhooks = "/webhooks"
)

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET(PathPing, handlers.Ping)
}

// addGatewayRoutes mounts the endpoints the payment gateway calls; they
// authenticate by signature or by server-side verification, not by token.
func addGatewayRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler) {
	rg.GET(PathPayments+"/return", paymentHandler.PaymentReturn)
	rg.POST(PathWebhooks+"/payments", paymentHandler.PaymentWebhook)
}

func addQuoteRoutes(rg *gin.RouterGroup, quoteHandler *handlers.QuoteHandler) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", quoteHandler.CreateQuote)
		quotes.GET("/:id", quoteHandler.GetQuote)
		quotes.PUT("/:id", quoteHandler.UpdateQuote)
		quotes.POST("/:id/send", quoteHandler.SendQuote)
		quotes.POST("/:id/view", quoteHandler.ViewQuote)
		quotes.POST("/:id/decline", quoteHandler.DeclineQuote)
		quotes.POST("/:id/revise", quoteHandler.ReviseQuote)
		quotes.POST("/:id/accept", quoteHandler.AcceptQuote)
	}
}

func addBookingRoutes(rg *gin.RouterGroup, bookingHandler *handlers.BookingHandler, paymentHandler *handlers.PaymentHandler) {
	bookings := rg.Group(PathBookings)
	{
		bookings.POST("", bookingHandler.CreateBooking)
		bookings.GET("/:id", bookingHandler.GetBooking)
		bookings.POST("/:id/cancel", bookingHandler.CancelBooking)
		bookings.POST("/:id/confirm", bookingHandler.ConfirmBooking)
		bookings.POST("/:id/complete", bookingHandler.CompleteBooking)
		bookings.POST("/:id/refund", bookingHandler.RefundBooking)

		bookings.POST("/:id/payments", paymentHandler.RequestPayment)
		bookings.GET("/:id/payments", paymentHandler.ListPayments)
	}
}

func addListingRoutes(rg *gin.RouterGroup, listingHandler *handlers.ListingHandler) {
	listings := rg.Group(PathListings)
	{
		listings.POST("", listingHandler.CreateListing)
		listings.GET("/:id", listingHandler.GetListing)
	}
}
