package bartertest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/crypto"
	"github.com/iov-one/barter/store/iavl"
)

// NewCondition returns the signature condition of a fresh ed25519 key.
func NewCondition() barter.Condition {
	return crypto.GenPrivKeyEd25519().PublicKey().Condition()
}

// CommitKVStore returns an iavl store in a temporary directory. Call
// cleanup to close it and remove the directory.
func CommitKVStore(t testing.TB) (db barter.CommitKVStore, cleanup func()) {
	t.Helper()
	dir, err := ioutil.TempDir("", "barter-store-")
	if err != nil {
		t.Fatalf("temp dir: %s", err)
	}
	s, err := iavl.NewCommitStore(dir, "db")
	if err != nil {
		os.RemoveAll(dir)
		t.Fatalf("commit store: %s", err)
	}
	return s, func() {
		s.Close()
		os.RemoveAll(dir)
	}
}
