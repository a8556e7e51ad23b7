package sigs

import (
	"crypto/sha512"
	"encoding/binary"
	"io"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/crypto"
	"github.com/iov-one/barter/errors"
)

// SignedTx is a transaction carrying the signatures of its signers.
type SignedTx interface {
	// GetSignBytes returns the canonical bytes of the transaction
	// without its signatures.
	GetSignBytes() ([]byte, error)
	GetSignatures() []*StdSignature
}

func (s *StdSignature) Validate() error {
	switch {
	case s.GetSequence() < 0:
		return errors.Wrap(ErrInvalidSequence, "negative")
	case s.GetPubkey() == nil:
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	case s.GetSignature() == nil:
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

// signPrefix versions the layout of the signed bytes:
//
//	prefix  | len(chain id) | chain id | sequence         | transaction
//	4 bytes | 1 byte        | ascii    | 8 bytes, big end | GetSignBytes
//
// The layout is hashed with sha512 and the digest is signed.
var signPrefix = []byte{0, 0xCA, 0xFE, 0}

// SignBytes returns the digest a signer of tx with given sequence signs.
// It binds the signature to the chain and to the sequence, so it cannot
// be replayed on another chain or twice on the same one.
func SignBytes(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	raw, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return digest(raw, chainID, seq)
}

func digest(raw []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !barter.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}
	h := sha512.New()
	h.Write(signPrefix)
	h.Write([]byte{byte(len(chainID))})
	io.WriteString(h, chainID)
	binary.Write(h, binary.BigEndian, seq)
	h.Write(raw)
	return h.Sum(nil), nil
}

// SignTx signs tx with the next sequence of the signer, as returned by
// NextSequence.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	msg, err := SignBytes(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(msg)
	if err != nil {
		return nil, err
	}
	return &StdSignature{
		Pubkey:    signer.PublicKey(),
		Signature: sig,
		Sequence:  seq,
	}, nil
}

// NextSequence returns the sequence the next signature of the key must
// carry.
func NextSequence(db barter.ReadOnlyKVStore, pubkey *crypto.PublicKey) (int64, error) {
	user, err := NewBucket().GetOrCreate(db, pubkey)
	if err != nil {
		return 0, err
	}
	return user.Sequence, nil
}

// verifySignatures checks every signature of tx and moves the sequence of
// each signer forward. Signers are returned in signature order.
func verifySignatures(db barter.KVStore, tx SignedTx, chainID string) ([]barter.Condition, error) {
	raw, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()
	signers := make([]barter.Condition, 0, len(sigs))
	for i, sig := range sigs {
		signer, err := verifySignature(db, sig, raw, chainID)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signers = append(signers, signer)
	}
	return signers, nil
}

// verifySignature only accepts a signature made with the next sequence of
// its key.
func verifySignature(db barter.KVStore, sig *StdSignature, raw []byte, chainID string) (barter.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	users := NewBucket()
	user, err := users.GetOrCreate(db, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	msg, err := digest(raw, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !user.Pubkey.Verify(msg, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := users.Save(db, user); err != nil {
		return nil, err
	}
	return user.Pubkey.Condition(), nil
}
