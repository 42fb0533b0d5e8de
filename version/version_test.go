package version

import (
	"strings"
	"testing"
)

func saveAndRestore() func() {
	origVersion, origCommit, origBuildTime := Version, GitCommit, BuildTime
	return func() {
		Version = origVersion
		GitCommit = origCommit
		BuildTime = origBuildTime
	}
}

func TestGetDefaults(t *testing.T) {
	defer saveAndRestore()()
	Version = "dev"
	GitCommit = ""
	BuildTime = ""

	info := Get()
	if info.Version != "dev" {
		t.Fatalf("expected dev, got %s", info.Version)
	}
	if info.IsRelease {
		t.Fatal("dev build must not be a release")
	}
}

func TestGetShortVersionWithCommit(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.2.3"
	GitCommit = "abc1234"

	short := GetShortVersion()
	if !strings.HasPrefix(short, "1.2.3-abc1234") {
		t.Fatalf("unexpected short version: %s", short)
	}
}

func TestGetFullVersionContainsVersion(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.2.3"
	GitCommit = ""
	BuildTime = "2026-01-02T03:04:05Z"

	full := GetFullVersion()
	if !strings.Contains(full, "1.2.3") {
		t.Fatalf("full version missing version: %s", full)
	}
	if !strings.Contains(full, "built 2026-01-02") {
		t.Fatalf("full version missing build date: %s", full)
	}
}
