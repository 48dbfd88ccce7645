package handlers

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"onlineshop/internal/notify"
)

const flashCookie = "flash"

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if _, ok := data["Notices"]; !ok {
		data["Notices"] = takeFlash(c)
	}
	// Pick up the token the CSRF middleware put into Locals
	if tok, _ := c.Locals("CSRFToken").(string); tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

// flashAndRedirect stashes pending notices in a cookie so they survive the
// redirect, then sends the shopper on.
func flashAndRedirect(c *fiber.Ctx, rec *notify.Recorder, path string) error {
	setFlash(c, rec.Drain())
	return c.Redirect(path)
}

func setFlash(c *fiber.Ctx, notices []notify.Notice) {
	if len(notices) == 0 {
		return
	}
	b, err := json.Marshal(notices)
	if err != nil {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    base64.URLEncoding.EncodeToString(b),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func takeFlash(c *fiber.Ctx) []notify.Notice {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return nil
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	b, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var notices []notify.Notice
	if err := json.Unmarshal(b, &notices); err != nil {
		return nil
	}
	return notices
}
