package record

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	MinSeverity = 0
	MaxSeverity = 5
)

// Record is one entry in a user's headache log.
type Record struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profileId" validate:"required"`
	Timestamp time.Time `json:"timestamp"`
	Severity  int       `json:"severity" validate:"min=0,max=5"`
	Symptoms  []string  `json:"symptoms"`
	Notes     string    `json:"notes,omitempty"`
}

// ErrEmptyRecord is returned for a record with no severity and no symptoms.
var ErrEmptyRecord = errors.New("record needs a severity or at least one symptom")

// ValidationError reports a record field that failed validation.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid record: %s violates %s", e.Field, e.Rule)
}

var validate = validator.New()

// Normalize trims notes and drops blank or repeated symptoms.
func Normalize(r Record) Record {
	r.Notes = strings.TrimSpace(r.Notes)

	seen := make(map[string]struct{}, len(r.Symptoms))
	symptoms := make([]string, 0, len(r.Symptoms))
	for _, s := range r.Symptoms {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		symptoms = append(symptoms, s)
	}
	r.Symptoms = symptoms
	return r
}

// Validate checks field ranges, then that the record carries something.
func Validate(r Record) error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &ValidationError{Field: verrs[0].Field(), Rule: verrs[0].Tag()}
		}
		return fmt.Errorf("validate record: %w", err)
	}
	if r.Severity == 0 && len(r.Symptoms) == 0 {
		return ErrEmptyRecord
	}
	return nil
}
