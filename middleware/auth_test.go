package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"swiftship-backend/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, permissions []string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"uuid":        "3f1c0a44-1111-2222-3333-444455556666",
		"email":       "customer@example.com",
		"permissions": permissions,
		"exp":         time.Now().Add(time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/protected", handler, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestIsAuthenticatedAllowsMatchingPermission(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")

	app := protectedApp(RequirePermissions(constants.PermCustomerFull))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "unit-test-secret", []string{constants.PermCustomerFull}))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestIsAuthenticatedRejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")

	app := protectedApp(RequirePermissions(constants.PermCustomerFull))

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestIsAuthenticatedRejectsWrongPermission(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")

	app := protectedApp(RequireOperator())

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "unit-test-secret", []string{constants.PermCustomerFull}))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestIsAuthenticatedRejectsBadSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")

	app := protectedApp(RequireAnyPermission())

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "some-other-secret", []string{constants.PermCustomerFull}))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
