package controller

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"urban-assistant-be/internal/dto"
	"urban-assistant-be/internal/pkg/logger"
	"urban-assistant-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLogService struct {
	detailErr error
}

func (f *fakeLogService) GetSystemLogs(context.Context, int, int, string) ([]dto.LogListResponse, error) {
	return []dto.LogListResponse{}, nil
}

func (f *fakeLogService) GetLogDetail(_ context.Context, id string) (*dto.LogDetailResponse, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	return &dto.LogDetailResponse{LogListResponse: dto.LogListResponse{Id: id}}, nil
}

func (f *fakeLogService) GetQuestionLogs(context.Context, int, int) ([]dto.QuestionLogResponse, error) {
	return []dto.QuestionLogResponse{}, nil
}

func (f *fakeLogService) GetQuestionLog(context.Context, string) (*dto.QuestionLogResponse, error) {
	return nil, nil
}

func TestGetLogDetailStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"found", nil, fiber.StatusOK},
		{"missing log", logger.ErrLogNotFound, fiber.StatusNotFound},
		{"unreadable log file", errors.New("permission denied"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(serverutils.ErrorHandlerMiddleware())
			allow := func(c *fiber.Ctx) error { return c.Next() }
			NewAdminController(&fakeLogService{detailErr: tt.err}).RegisterRoutes(app.Group("/api"), allow)

			resp, err := app.Test(httptest.NewRequest("GET", "/api/admin/logs/abc", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
