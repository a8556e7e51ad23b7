package coin

import (
	"github.com/gogo/protobuf/proto"
)

// Coin is an amount of a single asset. Amounts are counted in the smallest
// unit of the asset.
type Coin struct {
	// Ticker is the asset identifier, 3-4 upper case letters.
	Ticker string `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Amount uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *Coin) Reset()         { *m = Coin{} }
func (m *Coin) String() string { return proto.CompactTextString(m) }
func (*Coin) ProtoMessage()    {}

func (m *Coin) GetTicker() string {
	if m != nil {
		return m.Ticker
	}
	return ""
}

func (m *Coin) GetAmount() uint64 {
	if m != nil {
		return m.Amount
	}
	return 0
}
