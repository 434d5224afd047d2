package router

import (
	"github.com/Avi18971911/softscanner-admin/internal/auth"
	"github.com/Avi18971911/softscanner-admin/internal/backend/service"
	"github.com/Avi18971911/softscanner-admin/internal/metrics"
	"github.com/Avi18971911/softscanner-admin/internal/server/handler"
	"github.com/Avi18971911/softscanner-admin/internal/server/view"
	"github.com/Avi18971911/softscanner-admin/internal/tracing"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"net/http"
)

type Services struct {
	Users    service.UserService
	Products service.ProductService
	Store    service.StoreService
}

type Observability struct {
	Tracer       *tracing.Tracer
	Metrics      *metrics.Metrics
	Gatherer     prometheus.Gatherer
	AccessLogger *logrus.Logger
}

func CreateRouter(
	services Services,
	sessions *auth.Sessions,
	guard *auth.Guard,
	views *view.Renderer,
	obs Observability,
	logger *zap.Logger,
) http.Handler {
	r := mux.NewRouter()
	r.Use(metricsMiddleware(obs.Metrics), recoverMiddleware(views, logger))

	r.Handle("/", http.RedirectHandler(auth.LoginPath, http.StatusFound)).Methods("GET")

	r.Handle(auth.LoginPath, handler.LoginPageHandler(sessions, views)).Methods("GET")
	r.Handle(
		auth.LoginPath, handler.LoginHandler(
			services.Users,
			sessions,
			obs.Tracer,
			views,
			obs.Metrics,
			logger,
		),
	).Methods("POST")
	r.Handle(
		"/register", handler.RegisterHandler(
			services.Users,
			sessions,
			obs.Tracer,
			views,
			obs.Metrics,
			logger,
		),
	).Methods("POST")
	r.Handle("/logout", handler.LogoutHandler(sessions, logger)).Methods("POST")

	r.Handle(
		"/products",
		guard.Protect(handler.ProductsHandler(services.Products, obs.Tracer, views, logger)),
	).Methods("GET")
	r.Handle(
		"/products",
		guard.Protect(handler.AddProductHandler(services.Products, obs.Tracer, views, logger)),
	).Methods("POST")
	r.Handle(
		"/products/{id}/edit",
		guard.Protect(handler.EditProductFormHandler(services.Products, obs.Tracer, views, logger)),
	).Methods("GET")
	r.Handle(
		"/products/{id}/edit",
		guard.Protect(handler.EditProductHandler(services.Products, obs.Tracer, views, logger)),
	).Methods("POST")
	r.Handle(
		"/products/{id}/delete",
		guard.Protect(handler.DeleteProductHandler(services.Products, obs.Tracer, logger)),
	).Methods("POST")

	r.Handle(
		"/store",
		guard.Protect(handler.StoreHandler(services.Store, obs.Tracer, views, logger)),
	).Methods("GET")
	r.Handle(
		"/store/init",
		guard.Protect(handler.InitStoreHandler(services.Store, obs.Tracer, logger)),
	).Methods("POST")

	r.Handle("/healthz", handler.HealthHandler(logger)).Methods("GET")
	r.Handle("/metrics", promhttp.HandlerFor(obs.Gatherer, promhttp.HandlerOpts{})).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		views.RenderError(w, http.StatusNotFound, "not found: "+req.URL.Path)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		views.RenderError(w, http.StatusMethodNotAllowed, "method "+req.Method+" not allowed on "+req.URL.Path)
	})

	return accessLog(r, obs.AccessLogger)
}
