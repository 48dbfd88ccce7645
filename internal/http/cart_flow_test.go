package handlers_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"onlineshop/internal/config"
	"onlineshop/internal/http/handlers"
	"onlineshop/internal/kv"
)

func newShopApp(t *testing.T) (*fiber.App, *handlers.Deps) {
	t.Helper()
	db, err := kv.Open(":memory:")
	if err != nil {
		t.Fatalf("open kv: %v", err)
	}
	deps, err := handlers.NewDeps(db, config.Config{})
	if err != nil {
		t.Fatalf("build deps: %v", err)
	}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())

	app.Get("/", deps.ShopHandler.Home)
	app.Get("/product/:id", deps.ShopHandler.Detail)
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Get("/api/v1/availability", deps.ShopHandler.Availability)
	return app, deps
}

func TestCartAddThenViewFlow(t *testing.T) {
	app, _ := newShopApp(t)

	// seed product "1" (Wireless Headphones) into the cart
	req := httptest.NewRequest("POST", "/cart", strings.NewReader("productId=1&qty=2"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("post cart: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("want redirect, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/cart" {
		t.Fatalf("want redirect to /cart, got %q", loc)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/cart", nil))
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Wireless Headphones") {
		t.Fatalf("cart page missing item; body=%s", body)
	}
}

func TestCartAddUnknownProduct(t *testing.T) {
	app, _ := newShopApp(t)
	req := httptest.NewRequest("POST", "/cart", strings.NewReader("productId=nope&qty=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("post cart: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("want 404 for unknown product, got %d", resp.StatusCode)
	}
}

func TestAvailabilityEndpoint(t *testing.T) {
	app, _ := newShopApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/availability?productId=1", nil))
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "IN_STOCK") {
		t.Fatalf("seed product should be in stock; body=%s", body)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/availability?productId=ghost", nil))
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "OUT_OF_STOCK") {
		t.Fatalf("unknown product should be out of stock; body=%s", body)
	}
}
