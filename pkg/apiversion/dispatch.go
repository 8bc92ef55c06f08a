package apiversion

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/harvesthub/harvesthub/pkg/common"
	"github.com/harvesthub/harvesthub/pkg/handlers/http/response"
)

// Router resolves versions and dispatches requests to version-specific
// handlers.
type Router struct {
	logger *logrus.Logger
	writer *response.Writer
}

func NewRouter(logger *logrus.Logger, writer *response.Writer) *Router {
	return &Router{logger: logger, writer: writer}
}

// Middleware resolves the request's version once, annotates the response,
// and rejects explicitly requested unsupported versions.
func (r *Router) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, err := Resolve(c)
		if err != nil {
			var unsupported *UnsupportedVersionError
			if errors.As(err, &unsupported) {
				return r.writer.DetailedError(c, response.CodeVersionUnsupported,
					fmt.Sprintf("API version %q is not supported", unsupported.Requested),
					fiber.Map{"supported_versions": SupportedStrings()},
				)
			}
			return r.writer.Error(c, response.CodeInternal, err.Error())
		}

		c.Locals(common.APIVersionContextKey, v)
		Annotate(c, v)
		return c.Next()
	}
}

// FromContext returns the version resolved by the middleware, falling back
// to a direct resolve for handlers mounted without it.
func FromContext(c *fiber.Ctx) Version {
	if v, ok := c.Locals(common.APIVersionContextKey).(Version); ok {
		return v
	}
	v, err := Resolve(c)
	if err != nil {
		return Current
	}
	return v
}

// Dispatch routes to the handler registered for the resolved version. A
// supported version with no handler for this endpoint yields 501 listing
// the versions the endpoint does serve.
func (r *Router) Dispatch(handlers map[Version]fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v := FromContext(c)
		handler, ok := handlers[v]
		if !ok {
			available := make([]string, 0, len(handlers))
			for hv := range handlers {
				available = append(available, string(hv))
			}
			sort.Strings(available)
			return r.writer.DetailedError(c, response.CodeVersionUnimplemented,
				fmt.Sprintf("this endpoint is not implemented for API version %s", v),
				fiber.Map{"endpoint_versions": available},
			)
		}
		Annotate(c, v)
		return handler(c)
	}
}

// Deprecate annotates responses served under the given version with
// deprecation metadata. Dispatch behavior is unchanged.
func Deprecate(v Version, d Deprecation, handler fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if FromContext(c) == v {
			c.Set("Deprecation", d.Since.UTC().Format(time.RFC3339))
			c.Set("Sunset", d.Sunset.UTC().Format(time.RFC1123))
			c.Set("X-API-Deprecation-Days-Remaining", fmt.Sprintf("%d", d.RemainingDays(time.Now())))
			if d.MigrationNote != "" {
				c.Set("X-API-Deprecation-Note", strings.ReplaceAll(d.MigrationNote, "\n", " "))
			}
		}
		return handler(c)
	}
}
