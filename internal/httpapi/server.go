// Package httpapi exposes roadmap generation over HTTP.
package httpapi

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/repository"
	"github.com/alexanderramin/waypoint/internal/service"
)

// maxBodyBytes caps the generation request body.
const maxBodyBytes = 1 << 20

// Options configures the router.
type Options struct {
	// RateLimit is requests per minute per client IP on /api routes. 0
	// disables limiting.
	RateLimit int
	// Logger receives one line per failed request. Nil discards.
	Logger *slog.Logger
}

type handler struct {
	roadmaps service.RoadmapService
	logger   *slog.Logger
}

// NewRouter builds the chi router for the roadmap API.
func NewRouter(roadmaps service.RoadmapService, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	h := &handler{roadmaps: roadmaps, logger: logger}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", h.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/roadmap", func(r chi.Router) {
		if opts.RateLimit > 0 {
			r.Use(httprate.LimitByIP(opts.RateLimit, time.Minute))
		}
		r.Post("/generate", h.generate)
		r.Get("/user/{userId}", h.listByUser)
		r.Get("/{id}", h.getByID)
	})
	return r
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// generate handles POST /api/roadmap/generate. Generation problems never
// fail the request; only missing fields and unknown owners do.
func (h *handler) generate(w http.ResponseWriter, r *http.Request) {
	var req roadmapRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, roadmapResponse{
			Message:   "Malformed request body",
			ErrorCode: CodeInvalidRequest,
		})
		return
	}

	curriculum, err := h.roadmaps.GenerateCurriculum(r.Context(), req.profile())
	if err != nil {
		status, code, msg := classifyGenerateError(err)
		if status >= http.StatusInternalServerError {
			h.logger.ErrorContext(r.Context(), "roadmap_generate_failed", "user", req.UserID, "error", err)
		}
		writeJSON(w, status, roadmapResponse{Message: msg, ErrorCode: code})
		return
	}

	dto := toRoadmapDTO(curriculum)
	writeJSON(w, http.StatusCreated, roadmapResponse{Success: true, Roadmap: &dto})
}

func classifyGenerateError(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrOwnerRequired):
		return http.StatusBadRequest, CodeInvalidUserID, "User ID is required"
	case errors.Is(err, domain.ErrPrimaryGoalRequired):
		return http.StatusBadRequest, CodeInvalidPrimaryGoal, "Primary goal is required"
	case errors.Is(err, service.ErrOwnerNotFound):
		return http.StatusNotFound, CodeUserNotFound, "User not found"
	default:
		return http.StatusInternalServerError, CodeInternal, "Failed to generate roadmap"
	}
}

func (h *handler) listByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	curricula, err := h.roadmaps.ListByOwner(r.Context(), userID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "roadmap_list_failed", "user", userID, "error", err)
		writeJSON(w, http.StatusInternalServerError, roadmapResponse{
			Message:   "Failed to list roadmaps",
			ErrorCode: CodeInternal,
		})
		return
	}
	out := make([]roadmapDTO, 0, len(curricula))
	for _, c := range curricula {
		out = append(out, toRoadmapDTO(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) getByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	curriculum, err := h.roadmaps.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, roadmapResponse{
				Message:   "Roadmap not found",
				ErrorCode: CodeRoadmapNotFound,
			})
			return
		}
		h.logger.ErrorContext(r.Context(), "roadmap_get_failed", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, roadmapResponse{
			Message:   "Failed to load roadmap",
			ErrorCode: CodeInternal,
		})
		return
	}
	writeJSON(w, http.StatusOK, toRoadmapDTO(curriculum))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
