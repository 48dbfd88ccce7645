package handlers

import (
	"github.com/gofiber/fiber/v2"

	"onlineshop/internal/domain"
	applog "onlineshop/internal/log"
	"onlineshop/internal/notify"
	"onlineshop/internal/store"
	"onlineshop/internal/validate"
)

type WishlistHandler struct {
	Catalog *store.Catalog
	Wish    *store.Wishlist
	Notices *notify.Recorder
}

// GET /wishlist
func (h *WishlistHandler) List(c *fiber.Ctx) error {
	var products []domain.Product
	for _, id := range h.Wish.IDs() {
		if p, ok := h.Catalog.Get(id); ok {
			products = append(products, p)
		}
	}
	return render(c, "wishlist", fiber.Map{"Products": products})
}

// POST /wishlist
func (h *WishlistHandler) Save(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	if _, found := h.Catalog.Get(id); !found {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	if err := h.Wish.Save(id); err != nil {
		applog.Error(c, "wishlist.save.fail", err, map[string]any{"product": id})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not update your wishlist"})
	}
	return flashAndRedirect(c, h.Notices, "/wishlist")
}

// POST /wishlist/delete
func (h *WishlistHandler) Unsave(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	if err := h.Wish.Unsave(id); err != nil {
		applog.Error(c, "wishlist.delete.fail", err, map[string]any{"product": id})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not update your wishlist"})
	}
	return flashAndRedirect(c, h.Notices, "/wishlist")
}
