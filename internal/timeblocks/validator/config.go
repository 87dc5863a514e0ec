package validator

import (
	"errors"
	"fmt"
	"strings"

	"timegrid/pkg/logger"
	"timegrid/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ValidationErrors is the ordered list of failed rules. Rules are checked in
// a fixed order, so the first entry is always the same for the same input and
// serves as the blocking reason shown to the caller.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Caps bound the configuration to what the deployment is willing to generate.
type Caps struct {
	MaxBlocksPerDay  int
	MaxBlockDuration int
}

type BlockConfigValidator struct {
	validate *validator.Validate
	caps     Caps
	logger   *logger.Logger
}

func NewBlockConfigValidator(caps Caps, log *logger.Logger) *BlockConfigValidator {
	v := validator.New()

	if err := v.RegisterValidation("clock_time", validateClockTime); err != nil {
		log.Fatal("Failed to register 'clock_time' validator", "error", err)
	}

	bv := &BlockConfigValidator{
		validate: v,
		caps:     caps,
		logger:   log,
	}
	v.RegisterStructValidation(bv.validateConditionalRules, model.BlockConfig{})

	log.Info("Block configuration validator initialized successfully")

	return bv
}

func validateClockTime(fl validator.FieldLevel) bool {
	_, err := model.ParseTimeOfDay(strings.TrimSpace(fl.Field().String()))
	return err == nil
}

// validateConditionalRules covers the rules that depend on more than one
// field. Reports run in a fixed order so the first failure is deterministic:
// short break, long break, then the lunch window rules.
func (bv *BlockConfigValidator) validateConditionalRules(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(model.BlockConfig)

	if cfg.ShortBreak.Enabled && cfg.ShortBreak.Minutes < 0 {
		sl.ReportError(cfg.ShortBreak.Minutes, "short_break.minutes", "Minutes", "gte_zero", "")
	}

	if cfg.LongBreak.Enabled {
		if cfg.LongBreak.EveryNBlocks < 1 {
			sl.ReportError(cfg.LongBreak.EveryNBlocks, "long_break.every_n_blocks", "EveryNBlocks", "break_interval", "")
		}
		if cfg.LongBreak.Minutes <= 0 {
			sl.ReportError(cfg.LongBreak.Minutes, "long_break.minutes", "Minutes", "gt_zero", "")
		}
	}

	if cfg.Lunch.Enabled {
		lunchStart, err := model.ParseTimeOfDay(strings.TrimSpace(cfg.Lunch.Start))
		if err != nil {
			sl.ReportError(cfg.Lunch.Start, "lunch.start", "Start", "clock_time", "")
		}
		if cfg.Lunch.DurationMin <= 0 {
			sl.ReportError(cfg.Lunch.DurationMin, "lunch.duration_min", "DurationMin", "gt_zero", "")
		}
		if err == nil && cfg.Lunch.DurationMin > 0 {
			if start, serr := model.ParseTimeOfDay(cfg.StartTime); serr == nil && lunchStart < start {
				sl.ReportError(cfg.Lunch.Start, "lunch.start", "Start", "after_day_start", "")
			}
			if lunchStart.AddMinutes(cfg.Lunch.DurationMin) > model.MinutesPerDay {
				sl.ReportError(cfg.Lunch.DurationMin, "lunch.duration_min", "DurationMin", "within_day", "")
			}
		}
	}

	if bv.caps.MaxBlocksPerDay > 0 && cfg.BlocksPerDay > bv.caps.MaxBlocksPerDay {
		sl.ReportError(cfg.BlocksPerDay, "blocks_per_day", "BlocksPerDay", "max_blocks", "")
	}
	if bv.caps.MaxBlockDuration > 0 && cfg.BlockDurationMin > bv.caps.MaxBlockDuration {
		sl.ReportError(cfg.BlockDurationMin, "block_duration_min", "BlockDurationMin", "max_duration", "")
	}
}

func (bv *BlockConfigValidator) Validate(cfg *model.BlockConfig) error {
	if err := bv.validate.Struct(cfg); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return bv.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (bv *BlockConfigValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "clock_time":
			message = fmt.Sprintf("%s must be a valid time in HH:MM 24-hour format", err.Field())
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
		case "gte_zero":
			message = "short break minutes must not be negative"
		case "break_interval":
			message = "long break must recur at least every 1 block"
		case "gt_zero":
			message = fmt.Sprintf("%s must be greater than 0", err.Field())
		case "after_day_start":
			message = "lunch must not start before the start of the day"
		case "within_day":
			message = "lunch must end by midnight"
		case "max_blocks":
			message = fmt.Sprintf("blocks per day must not exceed %d", bv.caps.MaxBlocksPerDay)
		case "max_duration":
			message = fmt.Sprintf("block duration must not exceed %d minutes", bv.caps.MaxBlockDuration)
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
