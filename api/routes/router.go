package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bonappetit-bakery/bakery-backend/api/controllers"
	"github.com/bonappetit-bakery/bakery-backend/api/middleware"
	"github.com/bonappetit-bakery/bakery-backend/internal/breads"
	"github.com/bonappetit-bakery/bakery-backend/internal/commoncode"
	"github.com/bonappetit-bakery/bakery-backend/internal/orders"
	"github.com/bonappetit-bakery/bakery-backend/pkg/config"
	"github.com/bonappetit-bakery/bakery-backend/pkg/logger"
	pkgredis "github.com/bonappetit-bakery/bakery-backend/pkg/redis"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Config *config.Config
	Logger *logger.Logger

	DB      pinger
	Redis   *pkgredis.Client
	Storage pinger

	Breads      breads.Service
	Orders      orders.Service
	CommonCodes *commoncode.Cache
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.DB, deps.Redis, deps.Storage))
	})

	r.Route("/api/v1", func(r chi.Router) {
		var idempotencyStore pkgredis.IdempotencyStore
		if deps.Redis != nil {
			idempotencyStore = deps.Redis
		}
		r.Use(middleware.Idempotency(idempotencyStore, deps.Config.Orders.PlacementIdempotency, deps.Logger))

		r.Post("/orders", controllers.PlaceOrder(deps.Orders, deps.Logger))

		r.Route("/breads", func(r chi.Router) {
			r.Get("/", controllers.ListBreads(deps.Breads, deps.Logger))
			r.Post("/", controllers.CreateBread(deps.Breads, deps.Config.Upload, deps.Logger))
			r.Delete("/", controllers.DeleteBreads(deps.Breads, deps.Logger))
			r.Delete("/image", controllers.DeleteBreadImage(deps.Breads, deps.Logger))
			r.Get("/{breadNo}", controllers.GetBread(deps.Breads, deps.Logger))
			r.Put("/{breadNo}", controllers.UpdateBread(deps.Breads, deps.Config.Upload, deps.Logger))
		})

		r.Post("/common-codes/reload", controllers.ReloadCommonCodes(deps.CommonCodes, deps.Logger))
	})

	return r
}
