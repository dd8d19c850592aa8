package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ccms-app/dashboard/internal/auth"
	"github.com/ccms-app/dashboard/internal/navigation"
	"github.com/ccms-app/dashboard/internal/toast"
)

const toastsLocal = "toasts"

// Navigation positions a navigator at the request path. A redirect asked
// for while serving the request, for example after the API rejected the
// session, replaces the response with a 302 to the target.
func Navigation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec := navigation.NewRecorder(c.Path())
		c.SetUserContext(navigation.WithNavigator(c.UserContext(), rec))

		err := c.Next()
		if target, ok := rec.Target(); ok && target != c.Path() {
			c.Response().ResetBody()
			return c.Redirect(target, fiber.StatusFound)
		}
		return err
	}
}

// RequireAuth sends signed-out visitors to the sign-in screen.
func RequireAuth(authCtx *auth.Context) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !authCtx.IsAuthenticated() {
			return c.Redirect(navigation.SignInPath, fiber.StatusFound)
		}
		return c.Next()
	}
}

// Toasts collects the notices raised while serving the request and also
// passes them to notifier.
func Toasts(notifier toast.Notifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		collector := &toast.Collector{}
		var n toast.Notifier = collector
		if notifier != nil {
			n = toast.Fanout{collector, notifier}
		}
		c.Locals(toastsLocal, collector)
		c.SetUserContext(toast.WithNotifier(c.UserContext(), n))
		return c.Next()
	}
}

// ToastsFrom returns the notices raised so far. It is empty when Toasts is
// not installed.
func ToastsFrom(c *fiber.Ctx) []toast.Message {
	if collector, ok := c.Locals(toastsLocal).(*toast.Collector); ok {
		return collector.Messages()
	}
	return []toast.Message{}
}
