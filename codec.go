package barter

import (
	"github.com/gogo/protobuf/proto"
)

// Metadata is carried by every stored model and describes the schema
// version the model was serialized with.
type Metadata struct {
	Schema int32 `protobuf:"varint,1,opt,name=schema,proto3" json:"schema,omitempty"`
}

func (m *Metadata) Reset()         { *m = Metadata{} }
func (m *Metadata) String() string { return proto.CompactTextString(m) }
func (*Metadata) ProtoMessage()    {}

// GetSchema returns the schema version or zero for a nil metadata.
func (m *Metadata) GetSchema() int32 {
	if m != nil {
		return m.Schema
	}
	return 0
}
