package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/gearcast-api/internal/api"
	apiMiddleware "github.com/phrazzld/gearcast-api/internal/api/middleware"
)

// filesRoute is where locally stored assets are served.
const filesRoute = "/files"

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(apiMiddleware.Trace(app.logger))

	equipmentHandler := api.NewEquipmentHandler(app.equipmentService, app.config.Server.MaxUploadBytes, app.logger)
	videoHandler := api.NewVideoHandler(app.videoService, app.logger)

	r.Route("/equipments", func(r chi.Router) {
		r.Post("/", equipmentHandler.Create)
		r.Get("/", equipmentHandler.List)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", equipmentHandler.Get)
			r.Patch("/", equipmentHandler.Update)

			r.Post("/manuals", equipmentHandler.AttachManual)
			r.Delete("/manuals", equipmentHandler.RemoveManual)
			r.Post("/images", equipmentHandler.AttachImage)
			r.Delete("/images", equipmentHandler.RemoveImage)

			r.Post("/videos", videoHandler.Create)
			r.Get("/videos", videoHandler.ListForEquipment)
		})
	})

	r.Route("/videos", func(r chi.Router) {
		r.Get("/", videoHandler.List)
		r.Get("/{id}", videoHandler.Get)
		r.Delete("/{id}", videoHandler.Delete)
	})

	if app.files != nil {
		fileServer := http.StripPrefix(filesRoute, http.FileServer(http.Dir(app.files.BasePath())))
		r.Get(filesRoute+"/*", fileServer.ServeHTTP)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
