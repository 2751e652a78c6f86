package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/iammorganparry/clive/apps/uigen/internal/chat"
	"github.com/iammorganparry/clive/apps/uigen/internal/sessions"
	"github.com/iammorganparry/clive/apps/uigen/internal/store"
)

// NewRouter creates the Chi router with all routes and middleware.
// persist and snapshots are nil when persistence is disabled.
func NewRouter(
	chatSvc *chat.Service,
	sessStore *sessions.Store,
	persist *sessions.Persistence,
	snapshots store.Snapshots,
	allowOrigins []string,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(CORS(allowOrigins))
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	healthH := NewHealthHandler(sessStore, snapshots)
	chatH := NewChatHandler(chatSvc)
	sessionH := NewSessionHandler(sessStore, persist, snapshots)

	r.Get("/health", healthH.Health)
	r.Post("/chat", chatH.Chat)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", sessionH.ListSessions)
		r.Get("/{id}", sessionH.GetSession)
		r.Delete("/{id}", sessionH.DeleteSession)
	})

	return r
}
