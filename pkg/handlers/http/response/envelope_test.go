package response_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harvesthub/harvesthub/pkg/handlers/http/response"
)

func newTestWriter(production bool) *response.Writer {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return response.NewWriter(logger, production)
}

func performRequest(t *testing.T, handler fiber.Handler) (*http.Response, []byte) {
	t.Helper()
	app := fiber.New()
	app.Get("/t", handler)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/t", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestStatusFor_ClosedTaxonomy(t *testing.T) {
	cases := map[response.ErrorCode]int{
		response.CodeUnauthorized:         401,
		response.CodeValidation:           400,
		response.CodeNotFound:             404,
		response.CodeConflict:             409,
		response.CodeRateLimited:          429,
		response.CodeCsrfMissing:          403,
		response.CodeCsrfInvalid:          403,
		response.CodeVersionUnsupported:   400,
		response.CodeVersionUnimplemented: 501,
		response.CodeDatabase:             500,
		response.CodeInternal:             500,
		response.CodeExternalService:      503,
	}
	for code, want := range cases {
		assert.Equal(t, want, response.StatusFor(code), "code %s", code)
	}
}

func TestStatusFor_UnknownCodeFallsBackTo500(t *testing.T) {
	assert.Equal(t, 500, response.StatusFor(response.ErrorCode("made_up")))
}

func TestOK_WrapsDataInEnvelope(t *testing.T) {
	w := newTestWriter(false)
	resp, body := performRequest(t, func(c *fiber.Ctx) error {
		return w.OK(c, map[string]string{"name": "beets"})
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var envelope response.SuccessBody
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.True(t, envelope.Success)
}

func TestError_InternalMessageMaskedInProduction(t *testing.T) {
	w := newTestWriter(true)
	resp, body := performRequest(t, func(c *fiber.Ctx) error {
		return w.Error(c, response.CodeDatabase, `pq: duplicate key value violates unique constraint "users_pkey"`)
	})

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var envelope response.ErrorBody
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.False(t, envelope.Success)
	assert.NotContains(t, envelope.Error.Message, "pq:")
}

func TestError_InternalMessageKeptInDevelopment(t *testing.T) {
	w := newTestWriter(false)
	_, body := performRequest(t, func(c *fiber.Ctx) error {
		return w.Error(c, response.CodeDatabase, "pq: connection reset")
	})

	var envelope response.ErrorBody
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, "pq: connection reset", envelope.Error.Message)
}

func TestDetailedError_VersionUnimplementedKeptInProduction(t *testing.T) {
	w := newTestWriter(true)
	resp, body := performRequest(t, func(c *fiber.Ctx) error {
		return w.DetailedError(c, response.CodeVersionUnimplemented,
			"this endpoint is not implemented for API version v1",
			fiber.Map{"endpoint_versions": []string{"v2"}})
	})

	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
	var envelope response.ErrorBody
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, "this endpoint is not implemented for API version v1", envelope.Error.Message)
	details, ok := envelope.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"v2"}, details["endpoint_versions"])
}

func TestError_ClientFaultMessageNeverMasked(t *testing.T) {
	w := newTestWriter(true)
	resp, body := performRequest(t, func(c *fiber.Ctx) error {
		return w.FieldError(c, response.CodeValidation, "price must be positive", "price_cents")
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var envelope response.ErrorBody
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, "price must be positive", envelope.Error.Message)
	assert.Equal(t, "price_cents", envelope.Error.Field)
}
