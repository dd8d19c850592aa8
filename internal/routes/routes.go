package routes

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/ccms-app/dashboard/internal/apiclient"
	"github.com/ccms-app/dashboard/internal/auth"
	"github.com/ccms-app/dashboard/internal/chat"
	"github.com/ccms-app/dashboard/internal/config"
	"github.com/ccms-app/dashboard/internal/logging"
	"github.com/ccms-app/dashboard/internal/middleware"
	"github.com/ccms-app/dashboard/internal/pages"
	"github.com/ccms-app/dashboard/internal/toast"
)

// Deps aggregates shared dependencies required to wire routes. DB and Cache
// are optional.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
	Client *apiclient.Client
	Auth   *auth.Context
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	if d.Client == nil || d.Auth == nil {
		return errors.New("routes: api client and auth context are required")
	}
	log := logging.Component(d.Logger, "routes")

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	// Plain text access log: [HH:MM:SS] 200 -  145ms METHOD /path
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: d.Cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Idempotency-Key, X-Request-ID",
	}))
	app.Use(middleware.Audit(d.Logger, d.Auth))
	app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	app.Use(middleware.Navigation())
	app.Use(middleware.Toasts(toast.NewLoggerNotifier(logging.Component(d.Logger, "toast"))))

	RegisterHealthRoutes(app, d)

	v := newValidator()
	authHandler := &AuthHandler{auth: d.Auth, validate: v}
	RegisterAuthRoutes(app, authHandler, middleware.LoginRateLimit(d.Cache, d.Cfg.LoginRateLimit))

	protected := app.Group("", middleware.RequireAuth(d.Auth))
	pageHandler := &PageHandler{pages: pages.New(d.Client, d.Auth, d.Logger), validate: v, logger: log}
	RegisterPageRoutes(protected, pageHandler)
	RegisterChatRoutes(protected, &ChatHandler{api: chat.NewAPI(d.Client), validate: v})
	return nil
}

// ErrorHandler renders every error as {"error": message}. Validation
// failures also carry the rejected fields.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	logger = logging.Component(logger, "routes")
	return func(c *fiber.Ctx, err error) error {
		var bad *BadRequestError
		if errors.As(err, &bad) {
			return c.Status(http.StatusBadRequest).JSON(bad)
		}

		status := http.StatusInternalServerError
		msg := "Internal server error"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status, msg = fe.Code, fe.Message
		} else {
			logger.Error("unhandled error", slog.String("path", c.Path()), slog.Any("error", err))
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
}

// actionStatus maps a failed upstream call onto the status the dashboard
// answers with: the API's own 4xx/5xx, or 502 when the API was unreachable.
func actionStatus(err error) int {
	if status := apiclient.StatusOf(err); status >= http.StatusBadRequest {
		return status
	}
	return http.StatusBadGateway
}

// render answers with the screen and any notices raised while serving it.
func render(c *fiber.Ctx, view any) error {
	return c.JSON(fiber.Map{"view": view, "toasts": middleware.ToastsFrom(c)})
}

// renderAction answers an action. On failure the status follows the API,
// the message is the one already shown as a toast, and the view still shows
// the screen as it now stands.
func renderAction(c *fiber.Ctx, err error, view func() any) error {
	if err == nil {
		return render(c, view())
	}
	toasts := middleware.ToastsFrom(c)
	msg := apiclient.MessageOr(err, "")
	if msg == "" {
		for i := len(toasts) - 1; i >= 0; i-- {
			if toasts[i].Kind == toast.KindError {
				msg = toasts[i].Body
				break
			}
		}
	}
	if msg == "" {
		msg = "Request failed"
	}
	return c.Status(actionStatus(err)).JSON(fiber.Map{"error": msg, "view": view(), "toasts": toasts})
}

func unavailable(err error) error {
	return fiber.NewError(http.StatusServiceUnavailable, fmt.Sprintf("screen unavailable: %v", err))
}
