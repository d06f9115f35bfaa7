package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestApplyBuildSettings(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	defer func() { Version, Commit = oldVersion, oldCommit }()

	Version, Commit = "", ""
	applyBuildSettings([]debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.modified", Value: "true"},
		{Key: "vcs.time", Value: "2024-03-05T10:00:00Z"},
	})

	if Commit != "0123456-dirty" {
		t.Errorf("Commit = %q, want %q", Commit, "0123456-dirty")
	}
	if Version != "dev-20240305" {
		t.Errorf("Version = %q, want %q", Version, "dev-20240305")
	}
}

func TestUserAgent(t *testing.T) {
	if !strings.HasPrefix(UserAgent(), "apsetup/") {
		t.Errorf("UserAgent() = %q, want apsetup/ prefix", UserAgent())
	}
	if !strings.Contains(Full(), Commit) {
		t.Errorf("Full() = %q, want commit %q", Full(), Commit)
	}
}
