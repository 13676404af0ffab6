package domain

import (
	"time"

	"github.com/google/uuid"
)

// Headword maps a reconstructed headword form to the article file it was
// extracted from.
type Headword struct {
	ID             uuid.UUID `db:"id"`
	Text           string    `db:"headword"`
	TextNormalized string    `db:"headword_normalized"`
	Source         string    `db:"source"`
	RunID          uuid.UUID `db:"run_id"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// SenseDefinition is one numbered definition of a headword. Position keeps
// document order within the headword.
type SenseDefinition struct {
	Headword   string    `db:"headword"`
	Number     string    `db:"sense_number"`
	Definition string    `db:"definition"`
	Position   int       `db:"position"`
	RunID      uuid.UUID `db:"run_id"`
}

// Root maps an article root to the file that declares it.
type Root struct {
	Text   string    `db:"root"`
	Source string    `db:"source"`
	RunID  uuid.UUID `db:"run_id"`
}

// AuditFinding records a derivation tagged with a subject field that
// lacks a translation into the audited language.
type AuditFinding struct {
	Headword string    `db:"headword"`
	Source   string    `db:"source"`
	Field    string    `db:"field"`
	Lang     string    `db:"lang"`
	RunID    uuid.UUID `db:"run_id"`
}

// Validate checks the fields a stored headword must carry.
func (h Headword) Validate() error {
	var errs []FieldError
	if h.Text == "" {
		errs = append(errs, FieldError{Field: "headword", Message: "required"})
	}
	if h.Source == "" {
		errs = append(errs, FieldError{Field: "source", Message: "required"})
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// Validate checks the fields a stored sense must carry.
func (s SenseDefinition) Validate() error {
	var errs []FieldError
	if s.Headword == "" {
		errs = append(errs, FieldError{Field: "headword", Message: "required"})
	}
	if s.Number == "" {
		errs = append(errs, FieldError{Field: "sense_number", Message: "required"})
	}
	if s.Definition == "" {
		errs = append(errs, FieldError{Field: "definition", Message: "required"})
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
