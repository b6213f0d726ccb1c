package routes

import (
	"net/http"

	"github.com/Tanjim-Noor/hands-on-volunteering-platform/handlers"
	"github.com/Tanjim-Noor/hands-on-volunteering-platform/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes mounts the full HTTP surface on the router.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	eventHandler *handlers.EventHandler,
	requestHandler *handlers.RequestHandler,
	teamHandler *handlers.TeamHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate([]byte(jwtSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	router.Route("/users", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/me", userHandler.GetMe)
			r.Post("/me/avatar", userHandler.UploadAvatar)
		})
	})

	router.Route("/events", func(r chi.Router) {
		r.Get("/", eventHandler.List)
		r.Get("/{id}", eventHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", eventHandler.Create)
			r.Post("/{id}/join", eventHandler.Join)
		})
	})

	router.Route("/community-requests", func(r chi.Router) {
		r.Get("/", requestHandler.List)
		r.Get("/{id}", requestHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", requestHandler.Create)
			r.Post("/{id}/comments", requestHandler.AddComment)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Use(authenticate)

		r.Post("/", teamHandler.Create)
		r.Get("/my", teamHandler.ListMine)
		r.Get("/available", teamHandler.ListAvailable)
		r.Put("/{id}/invites", teamHandler.UpdateInvites)
		r.Post("/{id}/join", teamHandler.Join)
		r.Get("/{id}/dashboard", teamHandler.Dashboard)
		r.Post("/{id}/events", teamHandler.CreateEvent)
		r.Put("/{id}/logo", teamHandler.UploadLogo)
	})

	// Token auth happens inside the handler: websocket requests cannot
	// carry an Authorization header from browsers.
	router.Get("/ws/teams/{id}", webSocketHandler.ServeTeamFeed)
}
