package validation

import (
	"fmt"
	"strings"

	"github.com/habitloop/habitloop-backend/internal/types"
)

const (
	DescriptionMaxLength = 120
	DurationMin          = 30
	DurationMax          = 120
	DifficultyMin        = 1
	DifficultyMax        = 5
	TitleMinLength       = 3
	TitleMaxLength       = 100
)

var ValidCategories = []string{
	types.TaskCategoryLearn,
	types.TaskCategoryMove,
	types.TaskCategoryReflect,
	types.TaskCategoryFun,
	types.TaskCategorySkill,
	types.TaskCategoryChallenge,
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Result struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors"`
}

func resultOf(errs []FieldError) Result {
	return Result{Valid: len(errs) == 0, Errors: errs}
}

func ValidateTitle(title string) Result {
	var errs []FieldError
	switch {
	case strings.TrimSpace(title) == "":
		errs = append(errs, FieldError{Field: "title", Message: "title is required"})
	case len(title) < TitleMinLength:
		errs = append(errs, FieldError{Field: "title", Message: fmt.Sprintf("title must be at least %d characters", TitleMinLength)})
	case len(title) > TitleMaxLength:
		errs = append(errs, FieldError{Field: "title", Message: fmt.Sprintf("title must be at most %d characters", TitleMaxLength)})
	}
	return resultOf(errs)
}

func ValidateDescription(description string) Result {
	var errs []FieldError
	switch {
	case strings.TrimSpace(description) == "":
		errs = append(errs, FieldError{Field: "description", Message: "description is required"})
	case len(description) > DescriptionMaxLength:
		errs = append(errs, FieldError{
			Field:   "description",
			Message: fmt.Sprintf("description must be %d characters or less (currently %d)", DescriptionMaxLength, len(description)),
		})
	}
	return resultOf(errs)
}

func ValidateDuration(durationSeconds int) Result {
	var errs []FieldError
	switch {
	case durationSeconds < DurationMin:
		errs = append(errs, FieldError{Field: "duration_seconds", Message: fmt.Sprintf("duration must be at least %d seconds", DurationMin)})
	case durationSeconds > DurationMax:
		errs = append(errs, FieldError{Field: "duration_seconds", Message: fmt.Sprintf("duration must be at most %d seconds", DurationMax)})
	}
	return resultOf(errs)
}

func ValidateDifficulty(difficulty int) Result {
	var errs []FieldError
	if difficulty < DifficultyMin || difficulty > DifficultyMax {
		errs = append(errs, FieldError{
			Field:   "difficulty",
			Message: fmt.Sprintf("difficulty must be between %d and %d", DifficultyMin, DifficultyMax),
		})
	}
	return resultOf(errs)
}

func IsValidCategory(value string) bool {
	for _, c := range ValidCategories {
		if c == value {
			return true
		}
	}
	return false
}

func ValidateCategory(field, value string) Result {
	var errs []FieldError
	switch {
	case strings.TrimSpace(value) == "":
		errs = append(errs, FieldError{Field: field, Message: field + " is required"})
	case !IsValidCategory(value):
		errs = append(errs, FieldError{
			Field:   field,
			Message: fmt.Sprintf("%s must be one of: %s", field, strings.Join(ValidCategories, ", ")),
		})
	}
	return resultOf(errs)
}

func ValidateTags(tags []string) Result {
	var errs []FieldError
	if len(tags) == 0 {
		errs = append(errs, FieldError{Field: "tags", Message: "at least one tag is required"})
		return resultOf(errs)
	}
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			errs = append(errs, FieldError{Field: "tags", Message: "all tags must be non-empty strings"})
			break
		}
	}
	return resultOf(errs)
}

// ValidateTask runs every field check and additionally requires category and
// type to agree.
func ValidateTask(task *types.Task) Result {
	var errs []FieldError
	for _, r := range []Result{
		ValidateTitle(task.Title),
		ValidateDescription(task.Description),
		ValidateDuration(task.DurationSeconds),
		ValidateDifficulty(task.Difficulty),
		ValidateCategory("category", task.Category),
		ValidateCategory("type", task.Type),
		ValidateTags(task.Tags),
	} {
		errs = append(errs, r.Errors...)
	}
	if task.Type != "" && task.Category != "" && task.Type != task.Category {
		errs = append(errs, FieldError{Field: "type", Message: "type must match category"})
	}
	return resultOf(errs)
}

// FormatErrors flattens field errors into one display string.
func FormatErrors(errs []FieldError) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Message
	}
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Message)
	}
	return strings.Join(parts, "; ")
}
