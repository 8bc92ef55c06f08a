package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harvesthub/harvesthub/pkg/csrf"
	"github.com/harvesthub/harvesthub/pkg/middleware"
)

type csrfTokenHandler struct {
	*BaseHandler
	guard *csrf.Guard
}

// NewCsrfTokenHandler issues a token bound to the caller's session
// identity: the user id when authenticated, the client address otherwise.
func NewCsrfTokenHandler(base *BaseHandler, guard *csrf.Guard) Handler {
	return &csrfTokenHandler{BaseHandler: base, guard: guard}
}

func (h *csrfTokenHandler) Handle(c *fiber.Ctx) error {
	identity := middleware.SessionIdentity(c)
	return h.writer.OK(c, fiber.Map{
		"csrf_token": h.guard.Issue(identity),
	})
}
