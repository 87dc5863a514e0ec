package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	apperrors "timegrid/pkg/errors"
	httputil "timegrid/pkg/http"
	"timegrid/pkg/logger"
	"timegrid/pkg/model"
)

// Mock service for testing
type mockTimeBlockService struct {
	previewFunc  func(ctx context.Context, cfg *model.BlockConfig) (*model.SchedulePreview, error)
	generateFunc func(ctx context.Context, cfg *model.BlockConfig) (*model.GenerationOutcome, error)
}

func (m *mockTimeBlockService) Preview(ctx context.Context, cfg *model.BlockConfig) (*model.SchedulePreview, error) {
	if m.previewFunc != nil {
		return m.previewFunc(ctx, cfg)
	}
	return &model.SchedulePreview{}, nil
}

func (m *mockTimeBlockService) Generate(ctx context.Context, cfg *model.BlockConfig) (*model.GenerationOutcome, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, cfg)
	}
	return &model.GenerationOutcome{}, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func newRouter(svc *mockTimeBlockService) *httprouter.Router {
	router := httprouter.New()
	NewTimeBlockHandler(svc, testLogger()).RegisterRoutes(router)
	return router
}

func TestPreview_ReturnsReconciledGrid(t *testing.T) {
	svc := &mockTimeBlockService{
		previewFunc: func(_ context.Context, cfg *model.BlockConfig) (*model.SchedulePreview, error) {
			if cfg.StartTime != "08:00" {
				t.Errorf("handler passed start_time %q", cfg.StartTime)
			}
			return &model.SchedulePreview{TotalBlocks: 20, DuplicateBlocks: 1, NewBlocks: 19}, nil
		},
	}

	body := `{"start_time":"08:00","block_duration_min":90,"blocks_per_day":4}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/timeblocks/preview", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Data model.SchedulePreview `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.NewBlocks != 19 {
		t.Errorf("NewBlocks = %d, want 19", resp.Data.NewBlocks)
	}
}

func TestPreview_RejectsMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/timeblocks/preview", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	newRouter(&mockTimeBlockService{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGenerate_ReturnsOutcome(t *testing.T) {
	svc := &mockTimeBlockService{
		generateFunc: func(context.Context, *model.BlockConfig) (*model.GenerationOutcome, error) {
			return &model.GenerationOutcome{
				RunID:   "run-1",
				Counts:  model.GenerationCounts{Created: 20},
				Summary: "20 time blocks created.",
			}, nil
		},
	}

	body := `{"start_time":"08:00","block_duration_min":90,"blocks_per_day":4}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/timeblocks/generate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var resp struct {
		Data model.GenerationOutcome `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.Summary != "20 time blocks created." {
		t.Errorf("summary = %q", resp.Data.Summary)
	}
}

func TestGenerate_ErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "validation failure",
			err:        apperrors.Validation("Block configuration validation failed", nil),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "run in progress",
			err:        apperrors.Conflict("A generation run is already in progress"),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "upstream failure",
			err:        apperrors.Upstream("Failed to create timeslots", nil),
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockTimeBlockService{
				generateFunc: func(context.Context, *model.BlockConfig) (*model.GenerationOutcome, error) {
					return nil, tt.err
				},
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/timeblocks/generate", strings.NewReader(`{}`))
			rec := httptest.NewRecorder()
			newRouter(svc).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var resp httputil.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if resp.Error == "" {
				t.Error("error response has no message")
			}
		})
	}
}
