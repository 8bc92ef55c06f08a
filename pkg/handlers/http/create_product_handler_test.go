package http

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	farmerMocks "github.com/harvesthub/harvesthub/pkg/domain/farmer/mocks"
	productMocks "github.com/harvesthub/harvesthub/pkg/domain/product/mocks"
	"github.com/harvesthub/harvesthub/pkg/models"
)

func TestCreateProductHandler_Success(t *testing.T) {
	products := new(productMocks.Repository)
	farmers := new(farmerMocks.Repository)
	handler := NewCreateProductHandler(newTestBase(), products, farmers)

	userID := uuid.New()
	farmID := uuid.New()

	app := fiber.New()
	app.Use(sessionAs(userID, models.RoleFarmer))
	app.Post("/api/v2/products", handler.Handle)

	farmers.On("GetByUserID", mock.Anything, userID).Return(&models.Farmer{ID: farmID, UserID: userID}, nil)
	products.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
		return p.FarmerID == farmID && p.Name == "Heirloom Tomatoes" && p.Stock == 40
	})).Return(nil)

	body, err := json.Marshal(ProductRequest{
		Name:       "Heirloom Tomatoes",
		Category:   "vegetables",
		PriceCents: 450,
		Unit:       "lb",
		Stock:      40,
		Organic:    true,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, "/api/v2/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	products.AssertExpectations(t)
}

func TestCreateProductHandler_CustomerForbidden(t *testing.T) {
	products := new(productMocks.Repository)
	farmers := new(farmerMocks.Repository)
	handler := NewCreateProductHandler(newTestBase(), products, farmers)

	app := fiber.New()
	app.Use(sessionAs(uuid.New(), models.RoleCustomer))
	app.Post("/api/v2/products", handler.Handle)

	body, _ := json.Marshal(ProductRequest{Name: "Eggs", PriceCents: 600, Unit: "dozen"})
	req := httptest.NewRequest(fiber.MethodPost, "/api/v2/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateProductHandler_AnonymousUnauthorized(t *testing.T) {
	handler := NewCreateProductHandler(newTestBase(), new(productMocks.Repository), new(farmerMocks.Repository))

	app := fiber.New()
	app.Post("/api/v2/products", handler.Handle)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/api/v2/products", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCreateProductHandler_RejectsNonPositivePrice(t *testing.T) {
	handler := NewCreateProductHandler(newTestBase(), new(productMocks.Repository), new(farmerMocks.Repository))

	app := fiber.New()
	app.Use(sessionAs(uuid.New(), models.RoleFarmer))
	app.Post("/api/v2/products", handler.Handle)

	body, _ := json.Marshal(ProductRequest{Name: "Kale", PriceCents: 0, Unit: "bunch"})
	req := httptest.NewRequest(fiber.MethodPost, "/api/v2/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	parsed := decodeError(t, resp.Body)
	assert.Equal(t, "price_cents", parsed.Error.Field)
}
