package apiversion_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harvesthub/harvesthub/pkg/apiversion"
	"github.com/harvesthub/harvesthub/pkg/handlers/http/response"
)

func newTestRouter() *apiversion.Router {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return apiversion.NewRouter(logger, response.NewWriter(logger, false))
}

func echoVersion(c *fiber.Ctx) error {
	return c.SendString(string(apiversion.FromContext(c)))
}

func newVersionedApp(router *apiversion.Router) *fiber.App {
	app := fiber.New()
	app.Use(router.Middleware())
	app.Get("/api/products", echoVersion)
	app.Get("/api/:ver/products", echoVersion)
	return app
}

func TestResolve_HeaderBeatsQueryParameter(t *testing.T) {
	app := newVersionedApp(newTestRouter())

	req := httptest.NewRequest(http.MethodGet, "/api/products?version=v2", nil)
	req.Header.Set(apiversion.VersionHeader, "v1")
	resp, err := app.Test(req)
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "v1", string(body))
}

func TestResolve_AcceptVersionBeatsQuery(t *testing.T) {
	app := newVersionedApp(newTestRouter())

	req := httptest.NewRequest(http.MethodGet, "/api/products?version=v1", nil)
	req.Header.Set(apiversion.AcceptVersionHeader, "v2")
	resp, err := app.Test(req)
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "v2", string(body))
}

func TestResolve_PathSegmentUsedWhenNothingElse(t *testing.T) {
	app := newVersionedApp(newTestRouter())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "v1", string(body))
}

func TestResolve_DefaultsToCurrent(t *testing.T) {
	app := newVersionedApp(newTestRouter())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/products", nil))
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, string(apiversion.Current), string(body))
	assert.Equal(t, string(apiversion.Current), resp.Header.Get(apiversion.CurrentHeader))
	assert.Contains(t, resp.Header.Get(apiversion.SupportedHeader), "v1")
}

func TestResolve_UnsupportedVersionRejectedWith400(t *testing.T) {
	app := newVersionedApp(newTestRouter())

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set(apiversion.VersionHeader, "v9")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "supported_versions")
}

func TestParse_NormalizesBareNumbers(t *testing.T) {
	v, ok := apiversion.Parse("2")
	require.True(t, ok)
	assert.Equal(t, apiversion.V2, v)

	_, ok = apiversion.Parse("v99")
	assert.False(t, ok)
}

func TestDispatch_UnimplementedVersionYields501(t *testing.T) {
	router := newTestRouter()
	app := fiber.New()
	app.Use(router.Middleware())
	app.Get("/api/orders", router.Dispatch(map[apiversion.Version]fiber.Handler{
		apiversion.V2: echoVersion,
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set(apiversion.VersionHeader, "v1")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "endpoint_versions")
}

func TestDispatch_RoutesToVersionHandler(t *testing.T) {
	router := newTestRouter()
	app := fiber.New()
	app.Use(router.Middleware())
	app.Get("/api/orders", router.Dispatch(map[apiversion.Version]fiber.Handler{
		apiversion.V1: func(c *fiber.Ctx) error { return c.SendString("legacy") },
		apiversion.V2: func(c *fiber.Ctx) error { return c.SendString("current") },
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set(apiversion.VersionHeader, "v1")
	resp, err := app.Test(req)
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "legacy", string(body))
	assert.Equal(t, "v1", resp.Header.Get(apiversion.VersionHeader))
}

func TestDeprecate_AnnotatesOnlyTargetVersion(t *testing.T) {
	router := newTestRouter()
	dep := apiversion.Deprecation{
		Since:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Sunset:        time.Now().Add(90 * 24 * time.Hour),
		MigrationNote: "use the v2 listing shape",
	}
	app := fiber.New()
	app.Use(router.Middleware())
	app.Get("/api/farmers", apiversion.Deprecate(apiversion.V1, dep, echoVersion))

	req := httptest.NewRequest(http.MethodGet, "/api/farmers", nil)
	req.Header.Set(apiversion.VersionHeader, "v1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get("Deprecation"))
	assert.NotEmpty(t, resp.Header.Get("Sunset"))

	req2 := httptest.NewRequest(http.MethodGet, "/api/farmers", nil)
	req2.Header.Set(apiversion.VersionHeader, "v2")
	resp2, err := app.Test(req2)
	require.NoError(t, err)
	assert.Empty(t, resp2.Header.Get("Deprecation"))
}
