package barter

// Release is the version of this build. Untagged builds also report
// the commit they were built from, set at link time with
// -ldflags "-X github.com/iov-one/barter.GitCommit=<hash>".
var (
	Release   = "v0.1.0-dev"
	GitCommit = ""
)

// Version is reported to tendermint as the application version.
func Version() string {
	if GitCommit == "" {
		return Release
	}
	return Release + " " + GitCommit
}
