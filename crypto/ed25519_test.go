package crypto

import (
	"bytes"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/bartertest/assert"
)

func TestVerify(t *testing.T) {
	maker := GenPrivKeyEd25519()
	taker := GenPrivKeyEd25519()
	makeTx := []byte("make escrow 7")
	takeTx := []byte("take escrow 7")

	makeSig, err := maker.Sign(makeTx)
	assert.Nil(t, err)
	takeSig, err := taker.Sign(takeTx)
	assert.Nil(t, err)

	cases := map[string]struct {
		key  *PublicKey
		msg  []byte
		sig  *Signature
		want bool
	}{
		"own signature":     {key: maker.PublicKey(), msg: makeTx, sig: makeSig, want: true},
		"other signer":      {key: maker.PublicKey(), msg: takeTx, sig: takeSig},
		"other message":     {key: maker.PublicKey(), msg: takeTx, sig: makeSig},
		"empty signature":   {key: maker.PublicKey(), msg: makeTx, sig: &Signature{}},
		"missing signature": {key: maker.PublicKey(), msg: makeTx},
		"empty key":         {key: &PublicKey{}, msg: makeTx, sig: makeSig},
		"truncated signature": {
			key: maker.PublicKey(),
			msg: makeTx,
			sig: &Signature{Ed25519: makeSig.Ed25519[:10]},
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.key.Verify(tc.msg, tc.sig))
		})
	}
}

func TestKeyCondition(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()

	cond := pub.Condition()
	assert.Nil(t, cond.Validate())
	ext, typ, data, err := cond.Parse()
	assert.Nil(t, err)
	assert.Equal(t, "sigs/ed25519", ext+"/"+typ)
	assert.Equal(t, []byte(pub.Ed25519), data)
	assert.Equal(t, cond.Address(), pub.Address())

	if GenPrivKeyEd25519().PublicKey().Address().Equals(pub.Address()) {
		t.Fatal("two keys share an address")
	}

	// The address survives serialization of the key.
	raw, err := barter.Marshal(pub)
	assert.Nil(t, err)
	var read PublicKey
	assert.Nil(t, barter.Unmarshal(raw, &read))
	assert.Equal(t, pub.Address(), read.Address())
}

func TestEmptyKeys(t *testing.T) {
	empty := &PrivateKey{}
	_, err := empty.Sign([]byte("make escrow 7"))
	if err == nil {
		t.Fatal("empty key signed a message")
	}
	assert.Nil(t, empty.PublicKey().Condition())
	assert.Nil(t, empty.PublicKey().Address())
}

func TestPrivKeyFromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	key := PrivKeyEd25519FromSeed(seed)

	assert.Equal(t, seed, key.Ed25519[:32])
	assert.Equal(t, key.Ed25519, PrivKeyEd25519FromSeed(seed).Ed25519)
	sig, err := key.Sign([]byte("take escrow 7"))
	assert.Nil(t, err)
	assert.Equal(t, true, key.PublicKey().Verify([]byte("take escrow 7"), sig))

	for _, size := range []int{0, 1, 31, 33} {
		assert.Panics(t, func() { PrivKeyEd25519FromSeed(make([]byte, size)) })
	}
}
