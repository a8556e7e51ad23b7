package app

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x/cash"
	"github.com/iov-one/barter/x/escrow"
	"github.com/iov-one/barter/x/sigs"
)

// Program names as used in the Tx program field.
const (
	ProgramCash   = "cash"
	ProgramEscrow = "escrow"
)

// programs maps every supported program to its selector table.
var programs = map[string]barter.Dispatcher{
	ProgramCash:   cash.Instructions{},
	ProgramEscrow: escrow.Instructions{},
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (barter.Tx, error) {
	tx := new(Tx)
	if err := barter.Unmarshal(bz, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// make sure tx fulfills all interfaces
var _ barter.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// NewTx returns an unsigned transaction carrying given message.
func NewTx(program string, sel barter.Selector, msg barter.Msg) (*Tx, error) {
	payload, err := barter.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return &Tx{
		Program:  program,
		Selector: uint32(sel),
		Payload:  payload,
	}, nil
}

// GetMsg resolves the program and selector into a message and decodes the
// payload into it. Unknown programs and selectors result in errors.ErrMsg.
func (tx *Tx) GetMsg() (barter.Msg, error) {
	d, ok := programs[tx.GetProgram()]
	if !ok {
		return nil, errors.Wrapf(errors.ErrMsg, "unknown program %q", tx.GetProgram())
	}
	msg, err := barter.DecodeInstruction(d, barter.Selector(tx.GetSelector()), tx.GetPayload())
	if err != nil {
		return nil, errors.Wrap(err, tx.GetProgram())
	}
	return msg, nil
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	signatures := tx.Signatures
	tx.Signatures = nil

	bz, err := barter.Marshal(tx)

	// reset the signatures after calculating the bytes
	tx.Signatures = signatures
	return bz, err
}
