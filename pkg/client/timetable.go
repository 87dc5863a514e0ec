package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"timegrid/pkg/model"
)

// TimetableClient talks to the timetable persistence service that owns the
// timeslot records. This service never touches its storage directly.
type TimetableClient struct {
	httpClient *HttpClient
}

func NewTimetableClient(baseURL string, timeout time.Duration) *TimetableClient {
	return &TimetableClient{
		httpClient: NewHttpClient(baseURL, timeout),
	}
}

// ListTimeslots fetches every persisted timeslot. The result is the
// reconciliation baseline, so callers must refetch after each successful
// bulk creation rather than reuse a stale list.
func (c *TimetableClient) ListTimeslots(ctx context.Context) ([]model.TimeslotRecord, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/timeslots")
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, upstreamError(resp, "failed to list timeslots")
	}

	var records []model.TimeslotRecord
	if err := resp.DecodeJSON(&records); err != nil {
		return nil, fmt.Errorf("failed to decode timeslot list: %w", err)
	}

	return records, nil
}

// BulkCreateTimeslots submits the generated grid. Every counter in the
// response is optional; the caller applies its own fallbacks.
func (c *TimetableClient) BulkCreateTimeslots(ctx context.Context, req model.BulkGenerationRequest) (*model.BulkGenerationResult, error) {
	resp, err := c.httpClient.POST(ctx, "/api/v1/timeslots/bulk", req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, upstreamError(resp, "failed to create timeslots")
	}

	var result model.BulkGenerationResult
	if err := resp.DecodeJSON(&result); err != nil {
		return nil, fmt.Errorf("failed to decode bulk creation result: %w", err)
	}

	return &result, nil
}

// Ping checks the upstream health endpoint; used by the readiness probe.
func (c *TimetableClient) Ping(ctx context.Context) error {
	resp, err := c.httpClient.GET(ctx, "/health")
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("timetable service unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

// upstreamError surfaces the server's own detail message verbatim when the
// body carries one, falling back to a generic message with the status code.
func upstreamError(resp *Response, fallback string) error {
	if msg := ErrorMessage(resp); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	return fmt.Errorf("%s: upstream returned status %d", fallback, resp.StatusCode)
}
