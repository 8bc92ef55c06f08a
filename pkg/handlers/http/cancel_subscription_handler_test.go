package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	subscriptionMocks "github.com/harvesthub/harvesthub/pkg/domain/subscription/mocks"
	"github.com/harvesthub/harvesthub/pkg/handlers/http/response"
	"github.com/harvesthub/harvesthub/pkg/models"
)

func newCancelSubscriptionApp(userID uuid.UUID, role models.Role, subscriptions *subscriptionMocks.Repository) *fiber.App {
	handler := NewCancelSubscriptionHandler(newTestBase(), subscriptions)
	app := fiber.New()
	app.Use(sessionAs(userID, role))
	app.Post("/api/v2/subscriptions/:subscription_id/cancel", handler.Handle)
	return app
}

func TestCancelSubscriptionHandler_OwnerCancelsActive(t *testing.T) {
	subscriptions := new(subscriptionMocks.Repository)

	userID := uuid.New()
	subscriptionID := uuid.New()

	subscriptions.On("GetByID", mock.Anything, subscriptionID).
		Return(&models.Subscription{ID: subscriptionID, UserID: userID, Status: models.SubscriptionActive}, nil)
	subscriptions.On("UpdateStatus", mock.Anything, subscriptionID, models.SubscriptionCancelled).Return(nil)

	app := newCancelSubscriptionApp(userID, models.RoleCustomer, subscriptions)
	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/api/v2/subscriptions/"+subscriptionID.String()+"/cancel", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	subscriptions.AssertExpectations(t)
}

func TestCancelSubscriptionHandler_AlreadyCancelledConflicts(t *testing.T) {
	subscriptions := new(subscriptionMocks.Repository)

	userID := uuid.New()
	subscriptionID := uuid.New()

	subscriptions.On("GetByID", mock.Anything, subscriptionID).
		Return(&models.Subscription{ID: subscriptionID, UserID: userID, Status: models.SubscriptionCancelled}, nil)

	app := newCancelSubscriptionApp(userID, models.RoleCustomer, subscriptions)
	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/api/v2/subscriptions/"+subscriptionID.String()+"/cancel", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	body := decodeError(t, resp.Body)
	assert.Equal(t, response.CodeConflict, body.Error.Code)
	subscriptions.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelSubscriptionHandler_OtherUserForbidden(t *testing.T) {
	subscriptions := new(subscriptionMocks.Repository)

	subscriptionID := uuid.New()

	subscriptions.On("GetByID", mock.Anything, subscriptionID).
		Return(&models.Subscription{ID: subscriptionID, UserID: uuid.New(), Status: models.SubscriptionActive}, nil)

	app := newCancelSubscriptionApp(uuid.New(), models.RoleCustomer, subscriptions)
	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/api/v2/subscriptions/"+subscriptionID.String()+"/cancel", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	subscriptions.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
