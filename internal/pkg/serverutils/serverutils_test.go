package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"urban-assistant-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Question string `json:"question" validate:"required"`
	ChunkNum int    `json:"chunk_num" validate:"gte=0,lte=20"`
}

func TestValidateRequest(t *testing.T) {
	require.NoError(t, ValidateRequest(sampleRequest{Question: "q", ChunkNum: 4}))

	err := ValidateRequest(sampleRequest{ChunkNum: 50})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "required", verr.Fields["Question"])
	assert.Equal(t, "lte", verr.Fields["ChunkNum"])
}

func TestErrorHandlerMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"validation", &ValidationError{Fields: map[string]string{"Question": "required"}}, 400, "Invalid request"},
		{"upstream", fmt.Errorf("answer: %w", llm.ErrUpstreamGeneration), 502, "Answer generation failed"},
		{"fiber", fiber.NewError(fiber.StatusNotFound, "Log not found"), 404, "Log not found"},
		{"internal", errors.New("pq: relation does not exist"), 500, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(ErrorHandlerMiddleware())
			app.Get("/", func(*fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.code, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			var got map[string]any
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Equal(t, tt.message, got["message"])
			assert.NotContains(t, string(body), "pq:")
		})
	}
}

func TestJwtMiddleware(t *testing.T) {
	const secret = "s3cret"
	app := fiber.New()
	app.Get("/admin", JwtMiddleware(secret), func(c *fiber.Ctx) error {
		return c.SendString(fmt.Sprint(c.Locals("subject")))
	})

	sign := func(claims jwt.MapClaims, key string) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"missing", "", 401},
		{"wrong secret", "Bearer " + sign(jwt.MapClaims{"sub": "ops", "role": "admin"}, "other"), 401},
		{"not admin", "Bearer " + sign(jwt.MapClaims{"sub": "ops", "role": "viewer"}, secret), 403},
		{"admin", "Bearer " + sign(jwt.MapClaims{"sub": "ops", "role": "admin"}, secret), 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.code, resp.StatusCode)
		})
	}
}
