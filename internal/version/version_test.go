package version

import (
	"strings"
	"testing"
)

func TestStringComposesComponents(t *testing.T) {
	origMajor, origMinor, origPatch, origPre := Major, Minor, Patch, Pre
	defer func() { Major, Minor, Patch, Pre = origMajor, origMinor, origPatch, origPre }()

	Major, Minor, Patch, Pre = "1", "2", "3", "rc.1"
	got := String()
	for _, part := range []string{"1", "2", "3", "-rc.1"} {
		if !strings.Contains(got, part) {
			t.Fatalf("String() = %q missing %q", got, part)
		}
	}

	Pre = ""
	if strings.Contains(String(), "-") {
		t.Fatalf("release version should carry no pre-release tag: %q", String())
	}
}

func TestFullIncludesBuildMetadata(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	defer func() { GitCommit, BuildDate = origCommit, origDate }()

	GitCommit, BuildDate = "", ""
	if strings.Contains(Full(), "commit:") {
		t.Fatal("Full() reports a commit when none is set")
	}

	GitCommit = "abc123"
	BuildDate = "2026-08-06T00:00:00Z"
	full := Full()
	if !strings.Contains(full, "commit: abc123") || !strings.Contains(full, "2026-08-06") {
		t.Fatalf("Full() = %q missing build metadata", full)
	}
}
