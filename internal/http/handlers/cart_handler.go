package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "onlineshop/internal/log"
	"onlineshop/internal/notify"
	"onlineshop/internal/store"
	"onlineshop/internal/validate"
)

type CartHandler struct {
	Catalog *store.Catalog
	Cart    *store.Cart
	Notices *notify.Recorder
}

// GET /cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	return render(c, "cart", fiber.Map{
		"Items":     h.Cart.Items(),
		"Total":     h.Cart.Total(),
		"CartCount": h.Cart.Count(),
	})
}

// POST /cart
func (h *CartHandler) Add(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	qty := validate.Qty(c.FormValue("qty"))

	p, found := h.Catalog.Get(id)
	if !found {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	if err := h.Cart.Add(p, qty); err != nil && !errors.Is(err, store.ErrInsufficientStock) {
		applog.Error(c, "cart.add.fail", err, map[string]any{"product": id})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not update your cart"})
	}
	return flashAndRedirect(c, h.Notices, "/cart")
}

// POST /cart/update
func (h *CartHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	qty := 0
	if c.FormValue("qty") != "" && c.FormValue("qty") != "0" {
		qty = validate.Qty(c.FormValue("qty"))
	}
	if err := h.Cart.UpdateQuantity(id, qty); err != nil {
		applog.Error(c, "cart.update.fail", err, map[string]any{"product": id})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not update your cart"})
	}
	return flashAndRedirect(c, h.Notices, "/cart")
}

// POST /cart/remove
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	if err := h.Cart.Remove(id); err != nil {
		applog.Error(c, "cart.remove.fail", err, map[string]any{"product": id})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not update your cart"})
	}
	return flashAndRedirect(c, h.Notices, "/cart")
}
