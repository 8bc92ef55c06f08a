package http

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/harvesthub/harvesthub/pkg/apiversion"
	productMocks "github.com/harvesthub/harvesthub/pkg/domain/product/mocks"
	"github.com/harvesthub/harvesthub/pkg/handlers/http/response"
	"github.com/harvesthub/harvesthub/pkg/models"
)

func newListProductsApp(products *productMocks.Repository) *fiber.App {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	writer := response.NewWriter(logger, false)
	router := apiversion.NewRouter(logger, writer)
	handler := NewListProductsHandler(NewBaseHandler(logger, writer), products, router)

	app := fiber.New()
	app.Use(router.Middleware())
	app.Get("/api/products", handler.Handle)
	return app
}

func TestListProductsHandler_V2EnvelopeWithMeta(t *testing.T) {
	products := new(productMocks.Repository)
	products.On("List", mock.Anything, mock.Anything).Return([]models.Product{
		{Name: "Carrots"}, {Name: "Beets"},
	}, nil)
	products.On("Count", mock.Anything, mock.Anything).Return(int64(2), nil)

	app := newListProductsApp(products)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/products", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	parsed := decodeSuccess(t, resp.Body)
	assert.True(t, parsed.Success)
	meta, ok := parsed.Meta.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), meta["total"])
}

func TestListProductsHandler_V1LegacyFlatArray(t *testing.T) {
	products := new(productMocks.Repository)
	products.On("List", mock.Anything, mock.Anything).Return([]models.Product{{Name: "Carrots"}}, nil)

	app := newListProductsApp(products)

	req := httptest.NewRequest(fiber.MethodGet, "/api/products", nil)
	req.Header.Set(apiversion.VersionHeader, "v1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Legacy shape is a bare array, no envelope.
	var items []models.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, "Carrots", items[0].Name)

	assert.NotEmpty(t, resp.Header.Get("Deprecation"))
	assert.NotEmpty(t, resp.Header.Get("Sunset"))
	products.AssertNotCalled(t, "Count", mock.Anything, mock.Anything)
}

func TestListProductsHandler_UnsupportedVersionRejected(t *testing.T) {
	app := newListProductsApp(new(productMocks.Repository))

	req := httptest.NewRequest(fiber.MethodGet, "/api/products", nil)
	req.Header.Set(apiversion.VersionHeader, "v9")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	parsed := decodeError(t, resp.Body)
	assert.Equal(t, response.CodeVersionUnsupported, parsed.Error.Code)
}
