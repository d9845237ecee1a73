package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/opsfloor/opevents/pkg/usecase"
	"github.com/opsfloor/opevents/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

type Options func(*Server)

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/events", func(r chi.Router) {
			r.Post("/", s.createEvent)
			r.Get("/", s.listEvents)
			r.Route("/{eventID}", func(r chi.Router) {
				r.Get("/", s.getEvent)
				r.Patch("/", s.updateEvent)
				r.Post("/status", s.changeStatus)
			})
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", s.getCatalog)
			r.Route("/impact-types", func(r chi.Router) {
				r.Get("/", s.listImpactTypes)
				r.Post("/", s.addImpactType)
				r.Route("/{impactType}", func(r chi.Router) {
					r.Delete("/", s.deactivateImpactType)
					r.Route("/causes", func(r chi.Router) {
						r.Get("/", s.listCauses)
						r.Post("/", s.addCause)
						r.Delete("/{cause}", s.deactivateCause)
					})
				})
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/pareto", s.paretoReport)
			r.Get("/monthly", s.monthlyReport)
			r.Get("/top-causes", s.topCausesReport)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
