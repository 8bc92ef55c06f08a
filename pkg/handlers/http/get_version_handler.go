package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harvesthub/harvesthub/pkg/apiversion"
	"github.com/harvesthub/harvesthub/pkg/version"
)

type getVersionHandler struct {
	*BaseHandler
}

func NewGetVersionHandler(base *BaseHandler) Handler {
	return &getVersionHandler{BaseHandler: base}
}

func (h *getVersionHandler) Handle(c *fiber.Ctx) error {
	info := version.GetInfo(string(apiversion.FromContext(c)))
	return h.writer.OK(c, info)
}
