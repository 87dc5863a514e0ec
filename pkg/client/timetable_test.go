package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timegrid/pkg/model"
)

func TestListTimeslots(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/timeslots", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"ts-1","day_of_week":0,"start_time":"08:00:00","end_time":"09:30:00"},
			{"id":"ts-2","day_of_week":4,"start_time":"14:00:00","end_time":"15:30:00"}
		]`))
	}))
	defer server.Close()

	c := NewTimetableClient(server.URL, 2*time.Second)

	records, err := c.ListTimeslots(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 0, records[0].DayOfWeek)
	assert.Equal(t, "08:00:00", records[0].StartTime)
	assert.Equal(t, "0|08:00:00|09:30:00", records[0].Key())
}

func TestBulkCreateTimeslots_PartialResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/timeslots/bulk", r.URL.Path)

		// Only created is present; every other counter stays nil for the
		// caller's fallback logic.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"created": 7}`))
	}))
	defer server.Close()

	c := NewTimetableClient(server.URL, 2*time.Second)

	result, err := c.BulkCreateTimeslots(context.Background(), model.BulkGenerationRequest{
		ReplaceExisting: false,
		Slots: []model.TimeslotRecord{
			{DayOfWeek: 0, StartTime: "08:00:00", EndTime: "09:30:00"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result.Created)
	assert.Equal(t, 7, *result.Created)
	assert.Nil(t, result.Skipped)
	assert.Nil(t, result.RemovedTimeslots)
	assert.Nil(t, result.RemovedCourseSchedules)
}

func TestBulkCreateTimeslots_UpstreamDetailSurfacedVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"detail":"timeslot grid is locked for the current term"}`))
	}))
	defer server.Close()

	c := NewTimetableClient(server.URL, 2*time.Second)

	_, err := c.BulkCreateTimeslots(context.Background(), model.BulkGenerationRequest{
		Slots: []model.TimeslotRecord{{DayOfWeek: 0, StartTime: "08:00:00", EndTime: "09:30:00"}},
	})
	require.Error(t, err)
	assert.Equal(t, "timeslot grid is locked for the current term", err.Error())
}

func TestBulkCreateTimeslots_GenericFallbackMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewTimetableClient(server.URL, 2*time.Second)

	_, err := c.BulkCreateTimeslots(context.Background(), model.BulkGenerationRequest{
		Slots: []model.TimeslotRecord{{DayOfWeek: 0, StartTime: "08:00:00", EndTime: "09:30:00"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream returned status 500")
}
