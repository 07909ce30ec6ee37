package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/taskflow-client/internal/notify"
	"github.com/sefazor/taskflow-client/internal/service"
)

// Pages renders views with the pending toasts and the logged-in user.
type Pages struct {
	flash    *notify.Flash
	sessions *service.SessionStore
}

func NewPages(flash *notify.Flash, sessions *service.SessionStore) *Pages {
	return &Pages{
		flash:    flash,
		sessions: sessions,
	}
}

func (p *Pages) Render(c *fiber.Ctx, view string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Toasts"] = p.flash.Drain()
	if user, ok := p.sessions.User(); ok {
		data["User"] = user
	}
	return c.Render(view, data)
}

// Notify queues a toast for the next rendered page.
func (p *Pages) Notify(level notify.Level, message string) {
	p.flash.Notify(level, message)
}

// RedirectWithError shows err as a toast on the page at location.
func (p *Pages) RedirectWithError(c *fiber.Ctx, location string, err error) error {
	p.flash.Notify(notify.LevelError, service.UserMessage(err))
	return c.Redirect(location, fiber.StatusSeeOther)
}
