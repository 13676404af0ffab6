package domain

import (
	"errors"
	"testing"
)

func TestHeadwordValidate(t *testing.T) {
	t.Parallel()

	if err := (Headword{Text: "domo", Source: "dom"}).Validate(); err != nil {
		t.Fatalf("valid headword: %v", err)
	}

	err := Headword{}.Validate()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if len(ve.Errors) != 2 {
		t.Errorf("got %d field errors, want 2", len(ve.Errors))
	}
}

func TestSenseDefinitionValidate(t *testing.T) {
	t.Parallel()

	if err := (SenseDefinition{Headword: "domo", Number: "1", Definition: "Konstruaĵo."}).Validate(); err != nil {
		t.Fatalf("valid sense: %v", err)
	}
	err := SenseDefinition{Headword: "domo", Number: "1"}.Validate()
	if !errors.Is(err, ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}
