package version

import (
	"strings"
	"testing"
)

func TestShortCommit(t *testing.T) {
	if got := shortCommit("0123456789abcdef"); got != "0123456789ab" {
		t.Fatalf("got %q", got)
	}
	if got := shortCommit("abc"); got != "abc" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveUsesLdflags(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	Version = "v1.2.3"
	Commit = "0123456789abcdef"
	info := Resolve()
	if info.Version != "v1.2.3" || info.Commit != "0123456789abcdef" || info.GoVersion == "" {
		t.Fatalf("resolve: %+v", info)
	}
	if s := String(); !strings.HasPrefix(s, "v1.2.3 (0123456789ab)") {
		t.Fatalf("string: %q", s)
	}
}
