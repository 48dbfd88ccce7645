package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"onlineshop/internal/domain"
	applog "onlineshop/internal/log"
	"onlineshop/internal/store"
	"onlineshop/internal/validate"
)

type ShopHandler struct {
	Catalog *store.Catalog
	Cart    *store.Cart
}

// GET /
func (h *ShopHandler) Home(c *fiber.Ctx) error {
	products := h.Catalog.Products()
	return render(c, "index", fiber.Map{
		"Products":   products,
		"Categories": categoriesOf(products),
		"Query":      "",
		"CartCount":  h.Cart.Count(),
	})
}

// GET /category/:name
func (h *ShopHandler) Category(c *fiber.Ctx) error {
	name, ok := validate.Q(c.Params("name"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Category not found"})
	}
	var matched []domain.Product
	for _, p := range h.Catalog.Products() {
		if strings.EqualFold(p.Category, name) {
			matched = append(matched, p)
		}
	}
	return render(c, "index", fiber.Map{
		"Products":   matched,
		"Categories": categoriesOf(h.Catalog.Products()),
		"Category":   name,
		"Query":      "",
		"CartCount":  h.Cart.Count(),
	})
}

// GET /search?q=
func (h *ShopHandler) Search(c *fiber.Ctx) error {
	q, ok := validate.Q(c.Query("q"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "q"})
		return render(c, "index", fiber.Map{"Products": []domain.Product{}, "Query": c.Query("q"), "CartCount": h.Cart.Count()})
	}
	needle := strings.ToLower(q)
	var matched []domain.Product
	for _, p := range h.Catalog.Products() {
		if strings.Contains(strings.ToLower(p.Name), needle) || strings.Contains(strings.ToLower(p.Description), needle) {
			matched = append(matched, p)
		}
	}
	return render(c, "index", fiber.Map{"Products": matched, "Query": q, "CartCount": h.Cart.Count()})
}

// GET /product/:id
func (h *ShopHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	p, ok := h.Catalog.Get(id)
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	return render(c, "product", fiber.Map{"P": p, "CartCount": h.Cart.Count()})
}

// GET /api/v1/availability?productId=
func (h *ShopHandler) Availability(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Query("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid productId"})
	}
	p, ok := h.Catalog.Get(id)
	if !ok {
		return c.JSON(domain.Availability{Status: "OUT_OF_STOCK", Qty: 0})
	}
	status := "OUT_OF_STOCK"
	switch {
	case p.InStock >= 5:
		status = "IN_STOCK"
	case p.InStock > 0:
		status = "LOW_STOCK"
	}
	return c.JSON(domain.Availability{Status: status, Qty: p.InStock})
}

func categoriesOf(products []domain.Product) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}
