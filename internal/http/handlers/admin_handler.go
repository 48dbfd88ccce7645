package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	applog "onlineshop/internal/log"
	"onlineshop/internal/notify"
	"onlineshop/internal/store"
	"onlineshop/internal/validate"
)

type AdminHandler struct {
	Catalog *store.Catalog
	Session *store.Session
	Notices *notify.Recorder
}

// GET /admin/login
func (h *AdminHandler) LoginForm(c *fiber.Ctx) error {
	if h.Session.IsAuthenticated() {
		return c.Redirect("/admin")
	}
	return render(c, "admin_login", fiber.Map{})
}

// POST /admin/login
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	if !h.Session.Login(username, password) {
		applog.Security(c, "admin.login.fail", map[string]any{"username": username})
		return c.Status(fiber.StatusUnauthorized).Render("admin_login", fiber.Map{"Notices": h.Notices.Drain()})
	}
	applog.Audit(c, "admin.login.success", map[string]any{"username": username})
	return flashAndRedirect(c, h.Notices, "/admin")
}

// POST /admin/logout
func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	h.Session.Logout()
	applog.Audit(c, "admin.logout", nil)
	return flashAndRedirect(c, h.Notices, "/admin/login")
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	products := h.Catalog.Products()
	units := 0
	for _, p := range products {
		units += p.InStock
	}
	return render(c, "admin_dashboard", fiber.Map{
		"AdminUser":    h.Session.AdminUser(),
		"ProductCount": len(products),
		"UnitCount":    units,
	})
}

// GET /admin/products
func (h *AdminHandler) Products(c *fiber.Ctx) error {
	return render(c, "admin_products", fiber.Map{
		"AdminUser": h.Session.AdminUser(),
		"Products":  h.Catalog.Products(),
	})
}

// GET /admin/products/new
func (h *AdminHandler) NewForm(c *fiber.Ctx) error {
	return render(c, "admin_product_form", fiber.Map{"AdminUser": h.Session.AdminUser(), "Form": store.ProductInput{}})
}

// POST /admin/products
func (h *AdminHandler) Create(c *fiber.Ctx) error {
	in := store.ProductInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		ImageURL:    c.FormValue("imageUrl"),
		Price:       c.FormValue("price"),
		InStock:     c.FormValue("inStock"),
	}
	if _, err := h.Catalog.Add(in); err != nil {
		if errors.Is(err, store.ErrInvalidProduct) {
			return c.Status(fiber.StatusBadRequest).Render("admin_product_form", fiber.Map{
				"AdminUser": h.Session.AdminUser(),
				"Notices":   h.Notices.Drain(),
				"Form":      in,
			})
		}
		applog.Error(c, "admin.product.create.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not save the product"})
	}
	applog.Audit(c, "admin.product.create", map[string]any{"name": in.Name})
	return flashAndRedirect(c, h.Notices, "/admin/products")
}

// GET /admin/products/:id/edit
func (h *AdminHandler) EditForm(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing id")
	}
	p, found := h.Catalog.Get(id)
	if !found {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Product not found"})
	}
	return render(c, "admin_product_form", fiber.Map{
		"AdminUser": h.Session.AdminUser(),
		"P":         p,
		"Form": store.ProductInput{
			Name:        p.Name,
			Description: p.Description,
			Category:    p.Category,
			ImageURL:    p.ImageURL,
			Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
			InStock:     strconv.Itoa(p.InStock),
		},
	})
}

// POST /admin/products/:id
func (h *AdminHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing id")
	}
	patch := store.ProductPatch{}
	for _, field := range []string{"name", "description", "category", "imageUrl", "price", "inStock"} {
		if v := c.FormValue(field); v != "" {
			patch[field] = v
		}
	}
	if err := h.Catalog.Update(id, patch); err != nil {
		applog.Error(c, "admin.product.update.fail", err, map[string]any{"product": id})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not save the product"})
	}
	applog.Audit(c, "admin.product.update", map[string]any{"product": id})
	return flashAndRedirect(c, h.Notices, "/admin/products")
}

// POST /admin/products/:id/delete
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing id")
	}
	if err := h.Catalog.Delete(id); err != nil {
		applog.Error(c, "admin.product.delete.fail", err, map[string]any{"product": id})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not delete the product"})
	}
	applog.Audit(c, "admin.product.delete", map[string]any{"product": id})
	return flashAndRedirect(c, h.Notices, "/admin/products")
}
