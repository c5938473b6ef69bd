package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"annotapi/internal/realtime"
	"annotapi/internal/service"
)

// RegisterRoutes attaches all HTTP routes to the provided Fiber app.
// Handlers stay thin: request decoding, service call, error translation.
func RegisterRoutes(
	app *fiber.App,
	db *sql.DB,
	users service.UserService,
	documents service.DocumentService,
	annotations service.AnnotationService,
	hub *realtime.Hub,
	metrics prometheus.Gatherer,
) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/users/register", RegisterUser(users))
	app.Post("/users/login", LoginUser(users))

	app.Post("/documents/upload", UploadDocument(documents))
	app.Get("/documents", ListDocuments(documents))
	app.Get("/documents/:id", GetDocument(documents))
	app.Get("/documents/:id/original", DownloadOriginal(documents))

	app.Post("/annotations", CreateAnnotation(annotations))
	app.Get("/annotations/:documentId", ListAnnotations(annotations))
	app.Delete("/annotations/:id", DeleteAnnotation(annotations))

	// Realtime channel: join/leave document rooms, receive refresh events.
	app.Get("/ws", realtime.Upgrade(), realtime.Handler(hub))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(metrics, promhttp.HandlerOpts{})))
}
