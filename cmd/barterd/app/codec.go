package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter/x/sigs"
)

// Tx contains a single instruction addressed to a program, along with the
// signatures authorizing it.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	// program is the name of the program the instruction is dispatched to,
	// for example "escrow" or "cash".
	Program string `protobuf:"bytes,2,opt,name=program,proto3" json:"program,omitempty"`
	// selector identifies the operation within the program.
	Selector uint32 `protobuf:"varint,3,opt,name=selector,proto3" json:"selector,omitempty"`
	// payload is the protobuf serialized message of the operation.
	Payload []byte `protobuf:"bytes,4,opt,name=payload,proto3" json:"payload,omitempty"`
}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString(m) }
func (*Tx) ProtoMessage()    {}

func (m *Tx) GetSignatures() []*sigs.StdSignature {
	if m != nil {
		return m.Signatures
	}
	return nil
}

func (m *Tx) GetProgram() string {
	if m != nil {
		return m.Program
	}
	return ""
}

func (m *Tx) GetSelector() uint32 {
	if m != nil {
		return m.Selector
	}
	return 0
}

func (m *Tx) GetPayload() []byte {
	if m != nil {
		return m.Payload
	}
	return nil
}
