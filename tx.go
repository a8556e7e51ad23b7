package barter

import (
	"reflect"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter/errors"
)

// Persistent is anything that can be stored or sent over the wire.
// All implementations are protobuf messages.
type Persistent interface {
	proto.Message
}

// Marshal serializes given value into its protobuf representation.
func Marshal(p Persistent) ([]byte, error) {
	bz, err := proto.Marshal(p)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrType, "cannot marshal %T: %s", p, err)
	}
	return bz, nil
}

// Unmarshal deserializes the protobuf representation into given destination.
func Unmarshal(bz []byte, dest Persistent) error {
	if err := proto.Unmarshal(bz, dest); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot unmarshal %T: %s", dest, err)
	}
	return nil
}

// Msg is message for the blockchain to take an action
// (Make a state transition). It is just the request, and
// must be validated by the Handlers. All authentication
// information is in the wrapping Tx.
type Msg interface {
	Persistent

	// Path returns the message path.
	// This is used by the Router to locate the proper Handler.
	// Msg should be created alongside the Handler that corresponds to them.
	//
	// Must be alphanumeric [0-9A-Za-z_\-/]+
	Path() string

	// Validate performs a sanity check of the message content, without
	// access to the state.
	Validate() error
}

// Tx represent the data sent from the user to the chain.
// It includes the actual message, along with information needed
// to authenticate the sender (cryptographic signatures),
// and anything else needed to pass through middleware.
type Tx interface {
	// GetMsg returns the action we wish to communicate
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or (missing) if no message
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// TxDecoder can parse bytes into a Tx
type TxDecoder func(txBytes []byte) (Tx, error)

// LoadMsg extracts the message represented by given transaction into given
// destination. Before returning message validation is done.
func LoadMsg(tx Tx, destination Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "no message")
	}

	// Reflection is used to copy the message content into the
	// destination, so that handlers can work with concrete types.
	msgVal := reflect.ValueOf(msg)
	destVal := reflect.ValueOf(destination)
	if msgVal.Type() != destVal.Type() {
		return errors.Wrapf(errors.ErrType, "want %T message, got %T", destination, msg)
	}
	destVal.Elem().Set(msgVal.Elem())

	if err := destination.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}

// Selector is a numeric tag identifying a single operation of a program.
// Transactions carry a program name and a selector instead of relying on
// type names, so the set of operations is closed and versionable.
type Selector uint32

// Dispatcher resolves selectors of a single program into message
// instances. Unknown selectors must be rejected with errors.ErrMsg.
type Dispatcher interface {
	// Msg returns a new, empty message for given selector.
	Msg(Selector) (Msg, error)
}

// DecodeInstruction resolves the selector using given dispatcher and
// deserializes the payload into the returned message.
func DecodeInstruction(d Dispatcher, sel Selector, payload []byte) (Msg, error) {
	msg, err := d.Msg(sel)
	if err != nil {
		return nil, err
	}
	if err := Unmarshal(payload, msg); err != nil {
		return nil, errors.Wrapf(err, "selector %d", sel)
	}
	return msg, nil
}
