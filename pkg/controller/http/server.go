package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/usecase"
	"github.com/secmon-lab/riskregister/pkg/utils/logging"
)

type Server struct {
	router        *chi.Mux
	uc            *usecase.UseCases
	validate      *validator.Validate
	enableMetrics bool
}

type Options func(*Server)

// WithMetrics exposes Prometheus metrics on /metrics
func WithMetrics(enabled bool) Options {
	return func(s *Server) {
		s.enableMetrics = enabled
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:        r,
		uc:            uc,
		validate:      validator.New(),
		enableMetrics: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/taxonomy", taxonomyHandler(uc.WorkspaceRegistry()))
		r.Get("/workspaces", workspacesHandler(uc.WorkspaceRegistry()))

		r.Route("/workspaces/{workspaceID}", func(r chi.Router) {
			r.Use(workspaceMiddleware(uc.WorkspaceRegistry()))

			r.Route("/models", func(r chi.Router) {
				r.Get("/", s.listModels)
				r.Post("/", s.registerModel)
				r.Route("/{modelID}", func(r chi.Router) {
					r.Get("/", s.getModel)
					r.Get("/risks", s.listModelRisks)
					r.Post("/risks", s.identifyRisk)
					r.Post("/monitoring-alerts", s.recordMonitoringAlert)
					r.Post("/assessments", s.updateAssessment)
				})
			})

			r.Post("/supply-chain-risks", s.addSupplyChainRisk)

			r.Route("/risks", func(r chi.Router) {
				r.Get("/", s.listRisks)
				r.Route("/{riskID}", func(r chi.Router) {
					r.Get("/", s.getRisk)
					r.Put("/scores", s.assignScores)
					r.Post("/composite", s.calculateComposite)
					r.Post("/controls", s.defineControl)
				})
			})

			r.Route("/controls", func(r chi.Router) {
				r.Get("/", s.listControls)
				r.Get("/pending", s.pendingControls)
				r.Get("/{controlID}", s.getControl)
				r.Put("/{controlID}/response", s.assignResponse)
			})

			r.Route("/register", func(r chi.Router) {
				r.Get("/", s.fullRegister)
				r.Get("/top", s.topRisks)
				r.Get("/categories", s.categoryCounts)
			})
		})
	})

	if s.enableMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

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
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// workspaceMiddleware rejects requests for workspaces that are not configured
func workspaceMiddleware(registry *model.WorkspaceRegistry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := registry.Get(workspaceID(r)); err != nil {
				writeError(w, r, "workspace", err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func workspaceID(r *http.Request) string {
	return chi.URLParam(r, "workspaceID")
}

// workspacesHandler returns a handler that serves the workspace list as JSON
func workspacesHandler(registry *model.WorkspaceRegistry) http.HandlerFunc {
	type workspaceResponse struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	type response struct {
		Workspaces []workspaceResponse `json:"workspaces"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		workspaces := registry.Workspaces()
		resp := response{
			Workspaces: make([]workspaceResponse, len(workspaces)),
		}
		for i, ws := range workspaces {
			resp.Workspaces[i] = workspaceResponse{
				ID:   ws.ID,
				Name: ws.Name,
			}
		}
		writeJSON(w, r, http.StatusOK, resp)
	}
}

// taxonomyHandler serves the taxonomy of every workspace. The optional
// workspace query parameter narrows the result to one workspace.
func taxonomyHandler(registry *model.WorkspaceRegistry) http.HandlerFunc {
	type categoryResponse struct {
		Name   string   `json:"name"`
		Labels []string `json:"labels"`
	}
	type taxonomyResponse struct {
		WorkspaceID string             `json:"workspace_id"`
		Categories  []categoryResponse `json:"categories"`
	}
	type response struct {
		Taxonomies []taxonomyResponse `json:"taxonomies"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		entries := registry.List()
		if wsID := r.URL.Query().Get("workspace"); wsID != "" {
			entry, err := registry.Get(wsID)
			if err != nil {
				writeError(w, r, "taxonomy", err)
				return
			}
			entries = []*model.WorkspaceEntry{entry}
		}

		resp := response{Taxonomies: make([]taxonomyResponse, 0, len(entries))}
		for _, entry := range entries {
			tr := taxonomyResponse{WorkspaceID: entry.Workspace.ID}
			for _, c := range entry.Taxonomy.Categories() {
				tr.Categories = append(tr.Categories, categoryResponse{Name: c.Name, Labels: c.Labels})
			}
			resp.Taxonomies = append(resp.Taxonomies, tr)
		}
		writeJSON(w, r, http.StatusOK, resp)
	}
}
