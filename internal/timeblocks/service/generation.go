package service

import (
	"context"
	"errors"
	"sync/atomic"

	"timegrid/internal/timeblocks/engine"
	"timegrid/internal/timeblocks/validator"
	"timegrid/pkg/config"
	apperrors "timegrid/pkg/errors"
	"timegrid/pkg/kafka"
	"timegrid/pkg/middleware"
	"timegrid/pkg/model"

	"github.com/google/uuid"
)

const generatedEventType = "timeblocks.generated"

// TimetableAPI is the slice of the timetable service this package depends on.
type TimetableAPI interface {
	ListTimeslots(ctx context.Context) ([]model.TimeslotRecord, error)
	BulkCreateTimeslots(ctx context.Context, req model.BulkGenerationRequest) (*model.BulkGenerationResult, error)
}

// EventPublisher publishes generation outcome events. May be absent.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type TimeBlockService interface {
	Preview(ctx context.Context, blockCfg *model.BlockConfig) (*model.SchedulePreview, error)
	Generate(ctx context.Context, blockCfg *model.BlockConfig) (*model.GenerationOutcome, error)
}

type timeBlockService struct {
	timetable TimetableAPI
	validator *validator.BlockConfigValidator
	cfg       *config.Config
	events    EventPublisher

	// generating is the single-flight guard: while one generation run is
	// outstanding, further runs are refused rather than queued, so a retried
	// request cannot double-create blocks.
	generating atomic.Bool
}

func NewTimeBlockService(
	timetable TimetableAPI,
	v *validator.BlockConfigValidator,
	cfg *config.Config,
	events EventPublisher,
) TimeBlockService {
	return &timeBlockService{
		timetable: timetable,
		validator: v,
		cfg:       cfg,
		events:    events,
	}
}

// Preview computes and reconciles the weekly grid without submitting
// anything. Safe to call concurrently and repeatedly.
func (s *timeBlockService) Preview(ctx context.Context, blockCfg *model.BlockConfig) (*model.SchedulePreview, error) {
	s.applyDefaults(blockCfg)

	if err := s.validator.Validate(blockCfg); err != nil {
		s.cfg.Log.Warn("Block configuration validation failed", "error", err)
		return nil, apperrors.Validation("Block configuration validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	existing, err := s.timetable.ListTimeslots(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch existing timeslots", "error", err)
		return nil, apperrors.Upstream("Failed to fetch existing timeslots", err)
	}

	preview := engine.Reconcile(engine.BuildPreview(blockCfg), engine.ExistingIndex(existing))
	return &preview, nil
}

// Generate runs the full pipeline: validate, place, reconcile, plan, submit,
// interpret. The existing-slot set is refetched on every call so the
// reconciliation never runs against a baseline from a previous run.
func (s *timeBlockService) Generate(ctx context.Context, blockCfg *model.BlockConfig) (*model.GenerationOutcome, error) {
	if !s.generating.CompareAndSwap(false, true) {
		return nil, apperrors.Conflict("A generation run is already in progress")
	}
	defer s.generating.Store(false)

	s.applyDefaults(blockCfg)

	if err := s.validator.Validate(blockCfg); err != nil {
		s.cfg.Log.Warn("Block configuration validation failed", "error", err)
		return nil, apperrors.Validation("Block configuration validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	existing, err := s.timetable.ListTimeslots(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch existing timeslots", "error", err)
		return nil, apperrors.Upstream("Failed to fetch existing timeslots", err)
	}

	preview := engine.Reconcile(engine.BuildPreview(blockCfg), engine.ExistingIndex(existing))

	if preview.Overflow {
		s.cfg.Log.Warn("Generation refused: schedule overflows past midnight",
			"start_time", blockCfg.StartTime,
			"blocks_per_day", blockCfg.BlocksPerDay,
		)
		return nil, apperrors.Conflict("The configured blocks do not fit before midnight; adjust the configuration and retry")
	}

	req, err := engine.PlanSubmission(preview, blockCfg.ReplaceExisting)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrNoBlocks):
			return nil, apperrors.Conflict("No blocks to generate with the current configuration")
		case errors.Is(err, engine.ErrAllBlocksExist):
			return nil, apperrors.Conflict("All computed blocks already exist")
		}
		return nil, apperrors.Internal("Failed to plan the submission", err)
	}

	result, err := s.timetable.BulkCreateTimeslots(ctx, *req)
	if err != nil {
		s.cfg.Log.Error("Bulk creation failed",
			"submitted", len(req.Slots),
			"replace_existing", req.ReplaceExisting,
			"error", err,
		)
		return nil, apperrors.Upstream("Failed to create timeslots", err)
	}

	counts := engine.ApplyFallbacks(result, engine.FallbackContext{
		SubmittedCount:  len(req.Slots),
		DuplicateBlocks: preview.DuplicateBlocks,
		PriorCount:      len(existing),
		ReplaceExisting: blockCfg.ReplaceExisting,
	})

	outcome := &model.GenerationOutcome{
		RunID:   uuid.New().String(),
		Counts:  counts,
		Summary: engine.Summarize(counts),
		Preview: preview,
	}

	s.cfg.Log.Info("Time block generation completed",
		"run_id", outcome.RunID,
		"created", counts.Created,
		"skipped", counts.Skipped,
		"removed_timeslots", counts.RemovedTimeslots,
		"removed_course_schedules", counts.RemovedCourseSchedules,
	)

	s.publishOutcome(ctx, outcome, blockCfg.ReplaceExisting)

	return outcome, nil
}

// applyDefaults fills unset core fields from the deployment configuration so
// a minimal request still yields a usable grid. Negative values are left for
// the validator to reject.
func (s *timeBlockService) applyDefaults(blockCfg *model.BlockConfig) {
	if blockCfg.StartTime == "" {
		blockCfg.StartTime = s.cfg.DefaultStartOfDay
	}
	if blockCfg.BlockDurationMin == 0 {
		blockCfg.BlockDurationMin = s.cfg.DefaultBlockMinutes
	}
	if blockCfg.BlocksPerDay == 0 {
		blockCfg.BlocksPerDay = s.cfg.DefaultBlocksPerDay
	}
}

// generationEvent is the payload of a generated outcome event.
type generationEvent struct {
	RunID           string                 `json:"run_id"`
	ReplaceExisting bool                   `json:"replace_existing"`
	Counts          model.GenerationCounts `json:"counts"`
	Summary         string                 `json:"summary"`
}

// publishOutcome emits the outcome event when publishing is configured.
// Failures are logged and swallowed: the generation already happened and the
// caller's response must not depend on the broker.
func (s *timeBlockService) publishOutcome(ctx context.Context, outcome *model.GenerationOutcome, replaceExisting bool) {
	if s.events == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(outcome.RunID).
		WithValue(generationEvent{
			RunID:           outcome.RunID,
			ReplaceExisting: replaceExisting,
			Counts:          outcome.Counts,
			Summary:         outcome.Summary,
		}).
		WithEventType(generatedEventType).
		WithCorrelationID(middleware.RequestID(ctx)).
		WithSource("timeblocks").
		Build()

	if err := s.events.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish generation event",
			"run_id", outcome.RunID,
			"error", err,
		)
	}
}
