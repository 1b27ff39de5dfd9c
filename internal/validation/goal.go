package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/templui/eternalquest/internal/model"
)

var ErrInvalidGoalText = errors.New("invalid goal text")

// ValidateGoalText rejects text that would break the quest file layout:
// the field delimiter and line breaks. Anything else is accepted.
func ValidateGoalText(field, text string) error {
	if strings.Contains(text, model.FieldDelimiter) {
		return fmt.Errorf("%w: %s must not contain %q", ErrInvalidGoalText, field, model.FieldDelimiter)
	}

	if strings.ContainsAny(text, "\r\n") {
		return fmt.Errorf("%w: %s must be a single line", ErrInvalidGoalText, field)
	}

	return nil
}

// ValidateGoalParams checks the free-text fields of a goal before creation.
func ValidateGoalParams(p model.GoalParams) error {
	err := ValidateGoalText("title", p.Title)
	if err != nil {
		return err
	}
	return ValidateGoalText("description", p.Description)
}
