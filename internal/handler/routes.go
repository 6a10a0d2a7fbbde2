package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/project-tktt/jobs-market/docs"
)

// NewRouter builds the API router with the standard middleware stack
func NewRouter(h *JobsHandler, logger *zap.Logger) *chi.Mux {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	RegisterRoutes(r, h)
	return r
}

func RegisterRoutes(r chi.Router, h *JobsHandler) {
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Get("/api/health", h.Health)

	r.Route("/api/jobs", func(r chi.Router) {
		r.Get("/meta", h.Meta)
		r.Get("/suggestions", h.Suggestions)
		r.Get("/insights", h.Insights)
		r.Get("/listings", h.Listings)
		r.Get("/salary-by-category", h.SalaryByCategory)
		r.Get("/remote-trends", h.RemoteTrends)
		r.Get("/common-skills", h.CommonSkills)
		r.Get("/company-size-impact", h.CompanySizeImpact)
		r.Get("/geographic-salary", h.GeographicSalary)
		r.Get("/market-evolution", h.MarketEvolution)
	})
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("Request served",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
