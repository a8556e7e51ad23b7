package x

import (
	"github.com/iov-one/barter"
)

// Validater is any struct that can be validated.
type Validater interface {
	Validate() error
}

// MustMarshal will succeed or panic
func MustMarshal(obj barter.Persistent) []byte {
	bz, err := barter.Marshal(obj)
	if err != nil {
		panic(err)
	}
	return bz
}

// MustUnmarshal will succeed or panic
func MustUnmarshal(obj barter.Persistent, bz []byte) {
	if err := barter.Unmarshal(bz, obj); err != nil {
		panic(err)
	}
}

// MustValidate panics if the object is not valid
func MustValidate(obj Validater) {
	if err := obj.Validate(); err != nil {
		panic(err)
	}
}

// MustMarshalValid marshals the message, but panics
// if it is not valid or has trouble marshalling
func MustMarshalValid(msg barter.Msg) []byte {
	MustValidate(msg)
	return MustMarshal(msg)
}
