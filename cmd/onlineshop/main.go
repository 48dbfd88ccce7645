package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"onlineshop/internal/config"
	"onlineshop/internal/http/handlers"
	"onlineshop/internal/kv"
	applog "onlineshop/internal/log"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := kv.Open(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	deps, err := handlers.NewDeps(db, cfg)
	if err != nil {
		log.Fatal(err)
	}

	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Storefront ----------
	app.Get("/", deps.ShopHandler.Home)
	app.Get("/category/:name", deps.ShopHandler.Category)
	app.Get("/search", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), deps.ShopHandler.Search)
	app.Get("/product/:id", deps.ShopHandler.Detail)

	api := app.Group("/api/v1")
	api.Get("/availability", deps.ShopHandler.Availability)

	// Cart & checkout
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/cart/update", deps.CartHandler.Update)
	app.Post("/cart/remove", deps.CartHandler.Remove)
	app.Get("/checkout", deps.CheckoutHandler.Form)
	app.Post("/checkout", deps.CheckoutHandler.Place)
	app.Get("/checkout/confirmation", deps.CheckoutHandler.Confirmation)
	app.Post("/checkout/finish", deps.CheckoutHandler.Finish)

	// Wishlist
	app.Get("/wishlist", deps.WishlistHandler.List)
	app.Post("/wishlist", deps.WishlistHandler.Save)
	app.Post("/wishlist/delete", deps.WishlistHandler.Unsave)

	// ---------- Admin ----------
	app.Get("/admin/login", deps.AdminHandler.LoginForm)
	app.Post("/admin/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("admin_login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), deps.AdminHandler.Login)

	admin := app.Group("/admin", handlers.RequireAdmin(deps.Session))
	admin.Get("/", deps.AdminHandler.Dashboard)
	admin.Post("/logout", deps.AdminHandler.Logout)
	admin.Get("/products", deps.AdminHandler.Products)
	admin.Get("/products/new", deps.AdminHandler.NewForm)
	admin.Post("/products", deps.AdminHandler.Create)
	admin.Get("/products/:id/edit", deps.AdminHandler.EditForm)
	admin.Post("/products/:id", deps.AdminHandler.Update)
	admin.Post("/products/:id/delete", deps.AdminHandler.Delete)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
