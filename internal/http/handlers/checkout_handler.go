package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"onlineshop/internal/checkout"
	applog "onlineshop/internal/log"
	"onlineshop/internal/notify"
	"onlineshop/internal/store"
)

type CheckoutHandler struct {
	Cart     *store.Cart
	Workflow *checkout.Workflow
	Notices  *notify.Recorder
}

// GET /checkout
func (h *CheckoutHandler) Form(c *fiber.Ctx) error {
	items := h.Cart.Items()
	if len(items) == 0 {
		return c.Redirect("/cart")
	}
	return render(c, "checkout", fiber.Map{
		"Items":     items,
		"Total":     h.Cart.Total(),
		"CartCount": h.Cart.Count(),
	})
}

// POST /checkout
func (h *CheckoutHandler) Place(c *fiber.Ctx) error {
	form := checkout.Form{
		FirstName: c.FormValue("firstName"),
		LastName:  c.FormValue("lastName"),
		Email:     c.FormValue("email"),
		Address:   c.FormValue("address"),
		City:      c.FormValue("city"),
		State:     c.FormValue("state"),
		Zip:       c.FormValue("zip"),
		Country:   c.FormValue("country"),

		PaymentMethod: c.FormValue("paymentMethod"),

		CardName:   c.FormValue("cardName"),
		CardNumber: c.FormValue("cardNumber"),
		ExpMonth:   c.FormValue("expMonth"),
		ExpYear:    c.FormValue("expYear"),
		CVV:        c.FormValue("cvv"),

		BankName:      c.FormValue("bankName"),
		AccountNumber: c.FormValue("accountNumber"),
		RoutingNumber: c.FormValue("routingNumber"),
	}

	receipt, err := h.Workflow.Submit(form)
	if err != nil {
		var verr *checkout.ValidationError
		switch {
		case errors.Is(err, checkout.ErrEmptyCart), errors.Is(err, checkout.ErrOutOfStock):
			// Abort back to the cart view; nothing was mutated.
			return flashAndRedirect(c, h.Notices, "/cart")
		case errors.As(err, &verr):
			applog.Security(c, "checkout.validation.fail", map[string]any{"reason": verr.Message})
			return flashAndRedirect(c, h.Notices, "/checkout")
		default:
			applog.Error(c, "checkout.place.fail", err, nil)
			return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "There was an error processing your payment. Please try again."})
		}
	}

	applog.Audit(c, "order.place", map[string]any{"order_number": receipt.OrderNumber, "total": receipt.Total})
	return flashAndRedirect(c, h.Notices, "/checkout/confirmation")
}

// GET /checkout/confirmation
func (h *CheckoutHandler) Confirmation(c *fiber.Ctx) error {
	receipt, ok := h.Workflow.Receipt()
	if !ok {
		return c.Redirect("/")
	}
	return render(c, "confirmation", fiber.Map{"Receipt": receipt})
}

// POST /checkout/finish
func (h *CheckoutHandler) Finish(c *fiber.Ctx) error {
	if err := h.Workflow.Finish(); err != nil {
		applog.Error(c, "checkout.finish.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not finish your order"})
	}
	return flashAndRedirect(c, h.Notices, "/")
}
