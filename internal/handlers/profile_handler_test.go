package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/foundlyhq/foundly-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authedApp injects a parsed token for userID, the way the JWT middleware
// would after verification.
func authedApp(userID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": userID.String(),
		})
		c.Locals("user", token)
		return c.Next()
	})
	return app
}

func TestChangePasswordValidation(t *testing.T) {
	app := authedApp(uuid.New())
	h := NewProfileHandler(services.NewProfileService(nil), nil)
	app.Post("/profile/password", h.ChangePassword)

	tests := []struct {
		name string
		body string
	}{
		{"mismatched confirmation", `{"current_password":"oldpass123","new_password":"newpass123","confirm_password":"different1"}`},
		{"too short", `{"current_password":"oldpass123","new_password":"short","confirm_password":"short"}`},
		{"empty", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/profile/password", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}
