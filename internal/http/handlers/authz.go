package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "onlineshop/internal/log"
	"onlineshop/internal/store"
)

// RequireAdmin gates the admin console on the session store's flag; anyone
// unauthenticated is sent to the login form.
func RequireAdmin(sess *store.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !sess.IsAuthenticated() {
			applog.Security(c, "access.denied.admin", nil)
			return c.Redirect("/admin/login")
		}
		c.Locals("adminUser", sess.AdminUser())
		return c.Next()
	}
}
