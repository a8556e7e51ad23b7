package escrow

import (
	"crypto/sha256"
	"encoding/binary"

	"filippo.io/edwards25519"
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

const (
	// ExtensionName is the condition extension of vault authorities.
	ExtensionName = "escrow"

	authorityType = "pda"
	namespace     = "escrow"
	programID     = "barter/escrow"
	derivedMarker = "ProgramDerivedAddress"
)

// Authority is the signing identity of a vault. Its hash is not a valid
// ed25519 public key, so no private key can ever authorize it.
type Authority struct {
	Hash []byte
	Bump uint8
}

// Condition returns the condition fulfilled only by this extension.
func (a Authority) Condition() barter.Condition {
	return barter.NewCondition(ExtensionName, authorityType, a.Hash)
}

// Address is the vault address. It is also the key of the escrow record.
func (a Authority) Address() barter.Address {
	return a.Condition().Address()
}

// DeriveAuthority returns the vault authority of an escrow opened by maker
// with given seed. The bump is searched from 255 down and the first hash
// that does not decode to a curve point is used.
func DeriveAuthority(maker barter.Address, seed uint64) (Authority, error) {
	if err := maker.Validate(); err != nil {
		return Authority{}, errors.Wrap(err, "maker")
	}
	for bump := 255; bump >= 0; bump-- {
		h := authorityHash(maker, seed, uint8(bump))
		if !onCurve(h) {
			return Authority{Hash: h, Bump: uint8(bump)}, nil
		}
	}
	return Authority{}, errors.Wrap(errors.ErrState, "no viable bump")
}

// VerifyAuthority recomputes the authority for a stored bump. It fails if
// the bump is not the one DeriveAuthority selects.
func VerifyAuthority(maker barter.Address, seed uint64, bump uint32) (Authority, error) {
	if bump > 255 {
		return Authority{}, errors.Wrapf(errors.ErrState, "bump %d out of range", bump)
	}
	want, err := DeriveAuthority(maker, seed)
	if err != nil {
		return Authority{}, err
	}
	if uint8(bump) != want.Bump {
		return Authority{}, errors.Wrapf(errors.ErrUnauthorized, "bump %d is not canonical", bump)
	}
	return want, nil
}

func authorityHash(maker barter.Address, seed uint64, bump uint8) []byte {
	var le [8]byte
	binary.LittleEndian.PutUint64(le[:], seed)

	h := sha256.New()
	h.Write([]byte(namespace))
	h.Write(maker)
	h.Write(le[:])
	h.Write([]byte{bump})
	h.Write([]byte(programID))
	h.Write([]byte(derivedMarker))
	return h.Sum(nil)
}

func onCurve(h []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(h)
	return err == nil
}
