package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"studio/internal/http/handlers"
	"studio/internal/infra"
	"studio/internal/middleware"
)

func NewRouter(app *handlers.App, cfg *infra.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Log),
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   strings.Split(cfg.AllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if cfg.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))
	}

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/status", app.Status)

	r.Route("/v1/settings", func(r chi.Router) {
		r.Get("/", app.GetSettings)
		r.Put("/", app.PutSettings)
		r.Post("/randomize", app.RandomizeSettings)
		r.Post("/dress-style", app.SetDressStyle)
		r.Get("/options", app.GetOptions)
		r.Post("/prompt", app.CompilePrompt)
	})

	r.Post("/v1/images/generate", app.GenerateImages)
	r.Get("/v1/gallery", app.Gallery)
	r.Get("/v1/gallery/export", app.ExportGallery)

	r.Route("/v1/collection", func(r chi.Router) {
		r.Get("/", app.GetCollection)
		r.Post("/refresh", app.RefreshCollection)
		r.Post("/seed", app.SeedCollection)
	})

	r.Route("/v1/prompts", func(r chi.Router) {
		r.Post("/decode", app.DecodePrompt)
		r.Get("/decoded", app.ListDecodedPrompts)
		r.Post("/decoded/apply", app.ApplyDecodedPrompt)
		r.Post("/reverse", app.ReversePrompt)
		r.Post("/optimize", app.OptimizePrompt)
		r.Post("/save", app.SavePrompt)
		r.Route("/templates", func(r chi.Router) {
			r.Post("/", app.CreateTemplate)
			r.Post("/reset", app.ResetTemplates)
			r.Put("/{id}", app.UpdateTemplate)
			r.Delete("/{id}", app.DeleteTemplate)
		})
	})

	return r
}
