package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	defer func(v, c string) { Version, Commit = v, c }(Version, Commit)
	Version, Commit = "v1.2.3", "abc1234"

	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} version v1.2.3\n") {
		t.Errorf("Template() = %q", got)
	}
	if !strings.Contains(String(), "commit: abc1234") {
		t.Errorf("String() = %q, want commit line", String())
	}
}

func TestResolveKeepsLdflags(t *testing.T) {
	defer func(v, c string) { Version, Commit = v, c }(Version, Commit)
	Version, Commit = "v9.9.9", "deadbee"

	Resolve()
	if Version != "v9.9.9" || Commit != "deadbee" {
		t.Errorf("Resolve() overwrote ldflags values: %s %s", Version, Commit)
	}
}
