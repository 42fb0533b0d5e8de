package validation

import (
	"strings"
	"testing"

	"github.com/fliem/freesurfer-lgi/errors"
)

type sample struct {
	Level string `mapstructure:"analysis_level" validate:"required,oneof=participant"`
	CPUs  int    `mapstructure:"n_cpus" validate:"min=1"`
}

func TestValidateOK(t *testing.T) {
	if err := Validate(sample{Level: "participant", CPUs: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateOneof(t *testing.T) {
	err := Validate(sample{Level: "group", CPUs: 1})
	if err == nil {
		t.Fatal("expected error for bad level")
	}
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
	if !strings.Contains(err.Error(), "analysis_level") {
		t.Fatalf("error should name the mapstructure field: %v", err)
	}
}

func TestValidateMin(t *testing.T) {
	err := Validate(sample{Level: "participant", CPUs: 0})
	if err == nil {
		t.Fatal("expected error for zero cpus")
	}
	if !strings.Contains(err.Error(), "n_cpus") {
		t.Fatalf("error should name n_cpus: %v", err)
	}
}
