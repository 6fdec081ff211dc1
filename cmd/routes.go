package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"

	"homehelpBack/internal/models"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(""))
	homeownerMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleHomeowner))
	providerMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleProvider))
	adminMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleAdmin))

	mux := pat.New()

	// Bookings
	mux.Post("/bookings", homeownerMiddleware.ThenFunc(app.bookingHandler.CreateBooking))
	mux.Post("/bookings/availability", authMiddleware.ThenFunc(app.bookingHandler.GetAvailability))
	mux.Get("/bookings/homeowner", homeownerMiddleware.ThenFunc(app.bookingHandler.ListHomeownerBookings))
	mux.Get("/bookings/provider", providerMiddleware.ThenFunc(app.bookingHandler.ListProviderBookings))
	mux.Get("/bookings/provider/stats", providerMiddleware.ThenFunc(app.bookingHandler.ProviderStats))
	mux.Add("PATCH", "/bookings/:id/status", authMiddleware.ThenFunc(app.bookingHandler.UpdateStatus))
	mux.Post("/bookings/:id/confirm", homeownerMiddleware.ThenFunc(app.bookingHandler.ConfirmCompletion))
	mux.Post("/bookings/:id/rate", homeownerMiddleware.ThenFunc(app.bookingHandler.RateBooking))
	mux.Post("/bookings/:id/reviews", homeownerMiddleware.ThenFunc(app.reviewHandler.CreateReview))
	mux.Get("/bookings/:id", authMiddleware.ThenFunc(app.bookingHandler.GetBooking))

	// Services
	mux.Post("/services", providerMiddleware.ThenFunc(app.serviceHandler.CreateService))
	mux.Get("/services", authMiddleware.ThenFunc(app.serviceHandler.GetServices))
	mux.Get("/services/provider/mine", providerMiddleware.ThenFunc(app.serviceHandler.GetMyServices))
	mux.Get("/services/:service_id/reviews", authMiddleware.ThenFunc(app.reviewHandler.ListReviewsByService))
	mux.Post("/services/:id/image", providerMiddleware.ThenFunc(app.serviceHandler.UploadServiceImage))
	mux.Get("/services/:id", authMiddleware.ThenFunc(app.serviceHandler.GetServiceByID))
	mux.Put("/services/:id", providerMiddleware.ThenFunc(app.serviceHandler.UpdateService))
	mux.Del("/services/:id", providerMiddleware.ThenFunc(app.serviceHandler.DeleteService))

	// Reviews
	mux.Put("/reviews/:id", homeownerMiddleware.ThenFunc(app.reviewHandler.UpdateReview))
	mux.Del("/reviews/:id", authMiddleware.ThenFunc(app.reviewHandler.DeleteReview))

	// Reports and moderation
	mux.Post("/reports", homeownerMiddleware.ThenFunc(app.reportHandler.CreateReport))
	mux.Get("/reports", adminMiddleware.ThenFunc(app.reportHandler.ListReports))
	mux.Post("/reports/:id/dismiss", adminMiddleware.ThenFunc(app.reportHandler.DismissReport))
	mux.Post("/reports/:id/warn", adminMiddleware.ThenFunc(app.reportHandler.WarnProvider))
	mux.Post("/reports/:id/suspend", adminMiddleware.ThenFunc(app.reportHandler.SuspendProvider))
	mux.Get("/reports/:id", authMiddleware.ThenFunc(app.reportHandler.GetReport))
	mux.Get("/warnings/provider", providerMiddleware.ThenFunc(app.reportHandler.ListMyWarnings))

	// Notifications
	mux.Get("/notifications", authMiddleware.ThenFunc(app.notificationHandler.ListNotifications))
	mux.Post("/notifications/read", authMiddleware.ThenFunc(app.notificationHandler.MarkRead))
	mux.Post("/notify_tokens", authMiddleware.ThenFunc(app.notificationHandler.SaveToken))
	mux.Del("/notify_tokens/:token", authMiddleware.ThenFunc(app.notificationHandler.DeleteToken))
	mux.Get("/ws/notifications", authMiddleware.ThenFunc(app.WebSocketHandler))

	return mux
}
