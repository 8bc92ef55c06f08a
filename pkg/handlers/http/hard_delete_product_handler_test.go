package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	productMocks "github.com/harvesthub/harvesthub/pkg/domain/product/mocks"
	"github.com/harvesthub/harvesthub/pkg/models"
)

func TestHardDeleteProductHandler_AdminOnly(t *testing.T) {
	products := new(productMocks.Repository)
	handler := NewHardDeleteProductHandler(newTestBase(), products)

	productID := uuid.New()

	app := fiber.New()
	app.Use(sessionAs(uuid.New(), models.RoleFarmer))
	app.Delete("/api/v2/admin/products/:product_id", handler.Handle)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodDelete, "/api/v2/admin/products/"+productID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	products.AssertNotCalled(t, "HardDelete", mock.Anything, mock.Anything, mock.Anything)
}

func TestHardDeleteProductHandler_RecordsActor(t *testing.T) {
	products := new(productMocks.Repository)
	handler := NewHardDeleteProductHandler(newTestBase(), products)

	adminID := uuid.New()
	productID := uuid.New()

	app := fiber.New()
	app.Use(sessionAs(adminID, models.RoleAdmin))
	app.Delete("/api/v2/admin/products/:product_id", handler.Handle)

	products.On("HardDelete", mock.Anything, productID, adminID.String()).Return(nil)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodDelete, "/api/v2/admin/products/"+productID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	products.AssertExpectations(t)
}
