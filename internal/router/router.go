package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/senyabanana/freight-service/internal/handlers"
	"github.com/senyabanana/freight-service/internal/idempotency"
	"github.com/senyabanana/freight-service/internal/middleware"
	"github.com/senyabanana/freight-service/internal/models"
)

// Handlers - набор обработчиков, из которых собирается API.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Shipments   *handlers.ShipmentHandler
	Marketplace *handlers.MarketplaceHandler
	Offers      *handlers.OfferHandler
	Quotes      *handlers.QuoteHandler
	Reviews     *handlers.ReviewHandler
	Fleet       *handlers.FleetHandler
	Dashboard   *handlers.DashboardHandler
	Events      *handlers.EventsHandler
}

// Deps - инфраструктура для цепочки middleware.
type Deps struct {
	Logger       *zap.Logger
	Tokens       middleware.TokenParser
	Counter      middleware.Counter
	RateLimitRPS int
	Proxies      middleware.TrustedProxies
	Guard        *idempotency.Guard
}

const (
	client      = models.ClientRole
	transporter = models.TransporterRole
	admin       = models.AdminRole
)

func InitRoutes(h Handlers, deps Deps) http.Handler {
	mux := http.NewServeMux()
	once := deps.Guard.Wrap
	auth := middleware.RequireRole

	mux.HandleFunc("GET /api/ping", handlers.PingHandler)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /api/pricing/estimate", handlers.EstimatePrice)

	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("GET /api/auth/me", auth(h.Auth.Me))

	mux.HandleFunc("POST /api/shipments/new", auth(once(h.Shipments.CreateShipment), client))
	mux.HandleFunc("GET /api/shipments/my", auth(h.Shipments.GetMyShipments, client))
	mux.HandleFunc("GET /api/shipments/tracking", auth(h.Shipments.GetTracking))
	mux.HandleFunc("GET /api/shipments/{shipmentId}", auth(h.Shipments.GetShipment))
	mux.HandleFunc("PATCH /api/shipments/{shipmentId}/edit", auth(h.Shipments.EditShipment, client))
	mux.HandleFunc("PUT /api/shipments/{shipmentId}/rollback/{version}", auth(h.Shipments.RollbackShipment, client))
	mux.HandleFunc("PUT /api/shipments/{shipmentId}/cancel", auth(h.Shipments.CancelShipment, client))
	mux.HandleFunc("PUT /api/shipments/{shipmentId}/tracking", auth(h.Shipments.SetTracking, transporter))
	mux.HandleFunc("GET /api/shipments/{shipmentId}/offers", auth(h.Offers.GetShipmentOffers, client, admin))

	mux.HandleFunc("GET /api/marketplace", auth(h.Marketplace.List, transporter))

	mux.HandleFunc("POST /api/offers/new", auth(once(h.Offers.CreateOffer), transporter))
	mux.HandleFunc("GET /api/offers/my", auth(h.Offers.GetMyOffers, transporter))
	mux.HandleFunc("PUT /api/offers/{offerId}/accept", auth(once(h.Offers.AcceptOffer), client))
	mux.HandleFunc("PUT /api/offers/{offerId}/reject", auth(h.Offers.RejectOffer, client))
	mux.HandleFunc("PUT /api/offers/{offerId}/pay", auth(h.Offers.PayOffer, client))
	mux.HandleFunc("PUT /api/offers/{offerId}/complete", auth(h.Offers.CompleteOffer, client, transporter))

	mux.HandleFunc("POST /api/quotes/new", auth(once(h.Quotes.RequestQuote), client))
	mux.HandleFunc("GET /api/quotes/my", auth(h.Quotes.GetMyQuotes, client, transporter))
	mux.HandleFunc("PUT /api/quotes/{quoteId}/respond", auth(h.Quotes.RespondQuote, transporter))
	mux.HandleFunc("PUT /api/quotes/{quoteId}/accept", auth(once(h.Quotes.AcceptQuote), client))
	mux.HandleFunc("PUT /api/quotes/{quoteId}/reject", auth(h.Quotes.RejectQuote, client))

	mux.HandleFunc("POST /api/reviews/new", auth(once(h.Reviews.CreateReview), client))
	mux.HandleFunc("GET /api/transporters/{transporterId}/reviews", h.Reviews.GetTransporterReviews)

	mux.HandleFunc("POST /api/vehicles/new", auth(h.Fleet.CreateVehicle, transporter))
	mux.HandleFunc("GET /api/vehicles/my", auth(h.Fleet.GetMyVehicles, transporter))
	mux.HandleFunc("DELETE /api/vehicles/{vehicleId}", auth(h.Fleet.DeleteVehicle, transporter))
	mux.HandleFunc("POST /api/documents/new", auth(h.Fleet.UploadDocument, transporter))
	mux.HandleFunc("GET /api/documents/my", auth(h.Fleet.GetMyDocuments, transporter))
	mux.HandleFunc("DELETE /api/documents/{documentId}", auth(h.Fleet.DeleteDocument, transporter))
	mux.HandleFunc("GET /api/documents/{documentId}/url", auth(h.Fleet.DocumentURL, transporter, admin))
	mux.HandleFunc("PUT /api/documents/{documentId}/review", auth(h.Fleet.ReviewDocument, admin))
	mux.HandleFunc("GET /api/files/{token}", h.Fleet.DownloadFile)

	mux.HandleFunc("GET /api/dashboard/client", auth(h.Dashboard.Client, client))
	mux.HandleFunc("GET /api/dashboard/transporter", auth(h.Dashboard.Transporter, transporter))

	mux.HandleFunc("GET /api/events/stream", auth(h.Events.Stream))

	// Metrics оборачивает mux напрямую, иначе r.Pattern не виден.
	return middleware.Chain(middleware.Metrics(mux),
		middleware.Recovery(deps.Logger),
		middleware.RequestID,
		middleware.RequestLogger(deps.Logger),
		middleware.RateLimit(deps.Counter, deps.RateLimitRPS, deps.Proxies, deps.Logger),
		middleware.Authenticate(deps.Tokens),
	)
}
