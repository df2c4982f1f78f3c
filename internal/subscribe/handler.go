// Package subscribe serves the newsletter sign-up endpoint. Addresses are
// acknowledged and logged; nothing is stored or delivered.
package subscribe

import (
	"encoding/json"
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

const Path = "/api/subscribe"

const maxBodyBytes = 1 << 16

type request struct {
	Email string `json:"email"`
}

type response struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type Handler struct {
	logger *slog.Logger
}

func NewHandler(logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger.With("component", "subscribe")}
}

// Register mounts the endpoint on r. Any method other than POST gets 405.
func (h *Handler) Register(r chi.Router) {
	r.Route(Path, func(r chi.Router) {
		r.Post("/", h.subscribe)
		r.MethodNotAllowed(h.methodNotAllowed)
	})
}

// NewRouter returns a router with the endpoint and the usual middleware.
// Cross-origin requests are allowed from allowedOrigins only; none means any.
func NewRouter(h *Handler, allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	h.Register(r)
	return r
}

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.DebugContext(r.Context(), "subscribe body not decoded", slog.Any("err", err))
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		writeJSON(w, http.StatusBadRequest, response{Error: "Email required"})
		return
	}

	h.logger.InfoContext(r.Context(), "subscription accepted",
		slog.String("email_domain", emailDomain(email)),
		slog.String("request_id", middleware.GetReqID(r.Context())))

	writeJSON(w, http.StatusOK, response{Message: "Email added"})
}

// emailDomain keeps the part after the last "@"; the local part is never logged.
func emailDomain(email string) string {
	i := strings.LastIndexByte(email, '@')
	if i < 0 || i == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[i+1:])
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, response{Error: "Method not allowed"})
}

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
