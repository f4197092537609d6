// http собирает REST-роутер dating-service: middleware-цепочку и маршруты.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/okunevaa/go-dating-app/internal/service"
	"github.com/okunevaa/go-dating-app/internal/transport/http/handlers"
	"github.com/okunevaa/go-dating-app/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger    *slog.Logger
	Timeout   time.Duration
	JWTSecret string
	BasePath  string // например, "/api"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	// Зависимости хендлеров.
	h := handlers.New(svc)

	// Регистрация маршрутов.
	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h, opts.JWTSecret)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h, opts.JWTSecret)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
// Все операции требуют аутентифицированного пользователя.
func registerRoutes(r chi.Router, h *handlers.Handlers, jwtSecret string) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(jwtSecret))

		// users
		r.Get("/users", h.ListUsers)
		r.Get("/users/{id}", h.GetUser)
		// Обновление профиля частичное в обоих случаях: PUT — основной
		// метод API, PATCH — алиас для клиентов с честной семантикой.
		r.Put("/users/{id}", h.UpdateUser)
		r.Patch("/users/{id}", h.UpdateUser)

		// photos
		r.Post("/users/{id}/photos", h.AddPhoto)
		r.Get("/users/{id}/photos/{photo_id}", h.GetPhoto)
	})
}
