// Package httpapi exposes the catalog, preferences and site pages over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"astrobrasil/internal/contact"
	"astrobrasil/internal/core"
	"astrobrasil/internal/i18n"
	"astrobrasil/internal/status"
	"astrobrasil/internal/views"
	"astrobrasil/pkg/domain"
)

const maxBodyBytes = 64 << 10

// Handler routes API requests.
type Handler struct {
	Service   *core.Service
	Router    *views.Router
	Board     *views.NoticeBoard
	Announcer *status.Announcer
	Metrics   http.Handler
	Logger    *zap.Logger
}

// NewHandler constructs an API handler. Router, board, announcer and metrics
// are optional; their endpoints answer 404 when unset.
func NewHandler(svc *core.Service, router *views.Router, board *views.NoticeBoard, announcer *status.Announcer, metrics http.Handler) *Handler {
	logger := zap.NewNop()
	if svc != nil {
		logger = svc.Logger()
	}
	return &Handler{Service: svc, Router: router, Board: board, Announcer: announcer, Metrics: metrics, Logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		writeError(w, http.StatusInternalServerError, "catalog service not configured")
		return
	}
	start := time.Now()
	defer func() {
		h.Logger.Debug("request served",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)))
	}()

	path := strings.TrimSuffix(r.URL.Path, "/")
	switch {
	case path == "/metrics":
		if h.Metrics == nil {
			http.NotFound(w, r)
			return
		}
		h.Metrics.ServeHTTP(w, r)
	case path == "/api/v1/missions":
		h.get(w, r, h.handleMissions)
	case path == "/api/v1/centers":
		h.get(w, r, h.handleCenters)
	case path == "/api/v1/summary":
		h.get(w, r, h.handleSummary)
	case path == "/api/v1/notice":
		h.get(w, r, h.handleNotice)
	case path == "/api/v1/contact":
		h.handleContact(w, r)
	case path == "/api/v1/status":
		h.handleStatus(w, r)
	case path == "/api/v1/preferences/theme/toggle":
		h.handleToggle(w, r)
	case strings.HasPrefix(path, "/api/v1/preferences/"):
		h.handlePreference(w, r, strings.TrimPrefix(path, "/api/v1/preferences/"))
	case path == "/api/v1/pages":
		h.get(w, r, h.handlePages)
	case strings.HasPrefix(path, "/api/v1/pages/"):
		h.get(w, r, func(w http.ResponseWriter, r *http.Request) {
			h.handlePage(w, r, strings.TrimPrefix(path, "/api/v1/pages/"))
		})
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, fn http.HandlerFunc) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	fn(w, r)
}

func (h *Handler) handleMissions(w http.ResponseWriter, r *http.Request) {
	filter := domain.ParseMissionStatus(r.URL.Query().Get("status"))
	missions := h.Service.Missions(r.Context(), filter)
	writeJSON(w, http.StatusOK, map[string]any{"filter": filter, "missions": missions})
}

func (h *Handler) handleCenters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"centers": h.Service.Centers(r.Context())})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum := h.Service.Summary(r.Context())
	tag := locale(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"summary":          sum,
		"locale":           tag.String(),
		"total_investment": i18n.FormatCurrency(tag, sum.TotalCost*1_000_000),
	})
}

func (h *Handler) handlePages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"pages": views.Pages()})
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request, name string) {
	if h.Router == nil {
		http.NotFound(w, r)
		return
	}
	page, ok := h.Router.Resolve(name)
	if !ok {
		writeError(w, http.StatusNotFound, "page not found")
		return
	}
	q := r.URL.Query()
	view, err := h.Router.Render(r.Context(), page, views.Request{
		Status: domain.ParseMissionStatus(q.Get("status")),
		Query:  q.Get("q"),
		Locale: locale(r),
	})
	if err != nil {
		h.Logger.Error("page render failed", zap.String("page", string(page)), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"page": page, "view": view})
}

func (h *Handler) handlePreference(w http.ResponseWriter, r *http.Request, key string) {
	if key == "" || strings.Contains(key, "/") {
		writeError(w, http.StatusNotFound, "preference not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		value, ok, err := h.Service.Preference(r.Context(), key)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if !ok {
			writeError(w, http.StatusNotFound, domain.ErrPreferenceNotFound.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"key": key, "value": value})
	case http.MethodPut:
		var req struct {
			Value *string `json:"value"`
		}
		if err := decode(r, &req); err != nil || req.Value == nil {
			writeError(w, http.StatusBadRequest, "invalid preference payload")
			return
		}
		if err := h.Service.SetPreference(r.Context(), key, *req.Value); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"key": key, "value": *req.Value})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	dark, err := h.Service.ToggleTheme(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"dark_mode": dark})
}

func (h *Handler) handleContact(w http.ResponseWriter, r *http.Request) {
	if h.Router == nil {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in contact.Inquiry
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid inquiry payload")
		return
	}
	receipt, err := h.Router.Contact.Submit(r.Context(), locale(r), in)
	var verr *contact.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": verr.Message, "code": verr.Code})
	case err != nil:
		writeError(w, http.StatusInternalServerError, "inquiry could not be recorded")
	default:
		writeJSON(w, http.StatusCreated, map[string]any{"receipt": receipt})
	}
}

func (h *Handler) handleNotice(w http.ResponseWriter, r *http.Request) {
	if h.Board == nil {
		http.NotFound(w, r)
		return
	}
	n, ok := h.Board.Current()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notice": n})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	if h.Announcer == nil {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		p, ok, err := h.Announcer.Latest(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": p})
	case http.MethodPost:
		var req struct {
			Status string `json:"status"`
		}
		if err := decode(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid status payload")
			return
		}
		p, err := h.Announcer.Announce(r.Context(), req.Status)
		if errors.Is(err, status.ErrTooShort) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"status": p})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// locale prefers an explicit lang query parameter over Accept-Language.
func locale(r *http.Request) language.Tag {
	if lang := strings.TrimSpace(r.URL.Query().Get("lang")); lang != "" {
		return i18n.Parse(lang)
	}
	return i18n.Match(r.Header.Get("Accept-Language"))
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]any{"error": message})
}
