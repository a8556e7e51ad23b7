package barter

import "testing"

func TestVersion(t *testing.T) {
	defer func(commit string) { GitCommit = commit }(GitCommit)

	GitCommit = ""
	if got := Version(); got != Release {
		t.Fatalf("want %q, got %q", Release, got)
	}
	GitCommit = "68dc04a"
	if got, want := Version(), Release+" 68dc04a"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}
