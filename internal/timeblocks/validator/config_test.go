package validator

import (
	"errors"
	"strings"
	"testing"

	"timegrid/pkg/logger"
	"timegrid/pkg/model"
)

func newTestValidator() *BlockConfigValidator {
	log := logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return NewBlockConfigValidator(Caps{MaxBlocksPerDay: 48, MaxBlockDuration: 1440}, log)
}

func validConfig() *model.BlockConfig {
	return &model.BlockConfig{
		StartTime:        "08:00",
		BlockDurationMin: 90,
		BlocksPerDay:     4,
	}
}

func TestValidate_AcceptsValidConfigurations(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name   string
		mutate func(*model.BlockConfig)
	}{
		{name: "minimal", mutate: func(*model.BlockConfig) {}},
		{
			name: "all options enabled",
			mutate: func(cfg *model.BlockConfig) {
				cfg.ShortBreak = model.ShortBreakConfig{Enabled: true, Minutes: 15}
				cfg.LongBreak = model.LongBreakConfig{Enabled: true, EveryNBlocks: 2, Minutes: 30}
				cfg.Lunch = model.LunchConfig{Enabled: true, Start: "12:00", DurationMin: 60}
				cfg.IncludeWeekends = true
				cfg.ReplaceExisting = true
			},
		},
		{
			name: "zero-minute short break",
			mutate: func(cfg *model.BlockConfig) {
				cfg.ShortBreak = model.ShortBreakConfig{Enabled: true, Minutes: 0}
			},
		},
		{
			name: "disabled sections ignore their fields",
			mutate: func(cfg *model.BlockConfig) {
				cfg.ShortBreak = model.ShortBreakConfig{Enabled: false, Minutes: -5}
				cfg.LongBreak = model.LongBreakConfig{Enabled: false, EveryNBlocks: 0, Minutes: 0}
				cfg.Lunch = model.LunchConfig{Enabled: false, Start: "garbage", DurationMin: -1}
			},
		},
		{
			name: "lunch ending exactly at midnight",
			mutate: func(cfg *model.BlockConfig) {
				cfg.Lunch = model.LunchConfig{Enabled: true, Start: "23:00", DurationMin: 60}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := v.Validate(cfg); err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestValidate_RejectsInvalidConfigurations(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name        string
		mutate      func(*model.BlockConfig)
		wantMessage string
	}{
		{
			name:        "missing start time",
			mutate:      func(cfg *model.BlockConfig) { cfg.StartTime = "" },
			wantMessage: "is required",
		},
		{
			name:        "malformed start time",
			mutate:      func(cfg *model.BlockConfig) { cfg.StartTime = "8 o'clock" },
			wantMessage: "HH:MM 24-hour format",
		},
		{
			name:        "start hour out of range",
			mutate:      func(cfg *model.BlockConfig) { cfg.StartTime = "25:00" },
			wantMessage: "HH:MM 24-hour format",
		},
		{
			name:        "zero duration",
			mutate:      func(cfg *model.BlockConfig) { cfg.BlockDurationMin = 0 },
			wantMessage: "must be greater than 0",
		},
		{
			name:        "negative blocks per day",
			mutate:      func(cfg *model.BlockConfig) { cfg.BlocksPerDay = -1 },
			wantMessage: "must be greater than 0",
		},
		{
			name: "negative short break",
			mutate: func(cfg *model.BlockConfig) {
				cfg.ShortBreak = model.ShortBreakConfig{Enabled: true, Minutes: -5}
			},
			wantMessage: "short break minutes must not be negative",
		},
		{
			name: "long break interval below one",
			mutate: func(cfg *model.BlockConfig) {
				cfg.LongBreak = model.LongBreakConfig{Enabled: true, EveryNBlocks: 0, Minutes: 30}
			},
			wantMessage: "at least every 1 block",
		},
		{
			name: "long break without minutes",
			mutate: func(cfg *model.BlockConfig) {
				cfg.LongBreak = model.LongBreakConfig{Enabled: true, EveryNBlocks: 2, Minutes: 0}
			},
			wantMessage: "must be greater than 0",
		},
		{
			name: "unparseable lunch start",
			mutate: func(cfg *model.BlockConfig) {
				cfg.Lunch = model.LunchConfig{Enabled: true, Start: "noon", DurationMin: 45}
			},
			wantMessage: "HH:MM 24-hour format",
		},
		{
			name: "lunch before day start",
			mutate: func(cfg *model.BlockConfig) {
				cfg.Lunch = model.LunchConfig{Enabled: true, Start: "07:00", DurationMin: 45}
			},
			wantMessage: "must not start before the start of the day",
		},
		{
			name: "lunch spills past midnight",
			mutate: func(cfg *model.BlockConfig) {
				cfg.Lunch = model.LunchConfig{Enabled: true, Start: "23:30", DurationMin: 45}
			},
			wantMessage: "must end by midnight",
		},
		{
			name:        "blocks per day above cap",
			mutate:      func(cfg *model.BlockConfig) { cfg.BlocksPerDay = 100 },
			wantMessage: "must not exceed 48",
		},
		{
			name:        "duration above cap",
			mutate:      func(cfg *model.BlockConfig) { cfg.BlockDurationMin = 2000 },
			wantMessage: "must not exceed 1440 minutes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := v.Validate(cfg)
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("error type %T, want ValidationErrors", err)
			}
			if len(verrs) == 0 {
				t.Fatal("ValidationErrors is empty")
			}
			if !strings.Contains(verrs[0].Message, tt.wantMessage) {
				t.Errorf("first error %q does not contain %q", verrs[0].Message, tt.wantMessage)
			}
		})
	}
}

func TestValidate_FirstFailureIsDeterministic(t *testing.T) {
	v := newTestValidator()

	// Several rules fail at once; the start-time rule is checked first and
	// must win every run.
	cfg := &model.BlockConfig{
		StartTime:        "bad",
		BlockDurationMin: 0,
		BlocksPerDay:     0,
		Lunch:            model.LunchConfig{Enabled: true, Start: "also bad", DurationMin: 0},
	}

	for i := 0; i < 5; i++ {
		err := v.Validate(cfg)
		var verrs ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("error type %T, want ValidationErrors", err)
		}
		if verrs[0].Field != "StartTime" {
			t.Fatalf("run %d: first failing field = %q, want StartTime", i, verrs[0].Field)
		}
	}
}
