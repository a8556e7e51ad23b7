package escrow

import "github.com/iov-one/barter/errors"

// ErrMintMismatch is returned when a take message names assets different
// from the ones recorded by the escrow.
var ErrMintMismatch = errors.Register(1010, "asset mismatch")
