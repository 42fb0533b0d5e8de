package main

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/fliem/freesurfer-lgi/errors"
)

func TestSplitLabels(t *testing.T) {
	cases := []struct {
		in   []string
		want []string
	}{
		{nil, nil},
		{[]string{"01"}, []string{"01"}},
		{[]string{"01 02"}, []string{"01", "02"}},
		{[]string{"01", "02"}, []string{"01", "02"}},
		{[]string{"sub-01 02"}, []string{"01", "02"}},
	}
	for _, tc := range cases {
		if got := splitLabels(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("splitLabels(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out.String()) == "" {
		t.Fatal("expected version output")
	}
}

func TestMissingPositionalArgs(t *testing.T) {
	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"/bids", "/out"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for missing analysis_level")
	}
}

func TestMissingLicenseKey(t *testing.T) {
	// make sure an ambient key does not leak into the test
	t.Setenv("FS_LICENSE_KEY", "")
	t.Setenv("SUBJECTS_DIR", t.TempDir())

	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{t.TempDir(), t.TempDir(), "participant"})

	err := cmd.Execute()
	if !errors.HasCode(err, errors.ErrCodeMissingConfig) {
		t.Fatalf("expected MISSING_CONFIG, got %v", err)
	}
}

func TestInvalidAnalysisLevel(t *testing.T) {
	t.Setenv("SUBJECTS_DIR", t.TempDir())

	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{t.TempDir(), t.TempDir(), "group", "--license_key", "abc"})

	err := cmd.Execute()
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}
