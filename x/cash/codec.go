package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
)

// Wallet holds all the coins of a single address.
type Wallet struct {
	Metadata *barter.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Coins    []*coin.Coin     `protobuf:"bytes,2,rep,name=coins,proto3" json:"coins,omitempty"`
}

func (m *Wallet) Reset()         { *m = Wallet{} }
func (m *Wallet) String() string { return proto.CompactTextString(m) }
func (*Wallet) ProtoMessage()    {}

func (m *Wallet) GetMetadata() *barter.Metadata {
	if m != nil {
		return m.Metadata
	}
	return nil
}

func (m *Wallet) GetCoins() []*coin.Coin {
	if m != nil {
		return m.Coins
	}
	return nil
}

// SendMsg is a request to move coins from one account to another.
type SendMsg struct {
	Metadata    *barter.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Source      barter.Address   `protobuf:"bytes,2,opt,name=source,proto3" json:"source,omitempty"`
	Destination barter.Address   `protobuf:"bytes,3,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      *coin.Coin       `protobuf:"bytes,4,opt,name=amount,proto3" json:"amount,omitempty"`
	// max length 128 characters
	Memo string `protobuf:"bytes,5,opt,name=memo,proto3" json:"memo,omitempty"`
}

func (m *SendMsg) Reset()         { *m = SendMsg{} }
func (m *SendMsg) String() string { return proto.CompactTextString(m) }
func (*SendMsg) ProtoMessage()    {}

func (m *SendMsg) GetMetadata() *barter.Metadata {
	if m != nil {
		return m.Metadata
	}
	return nil
}

func (m *SendMsg) GetSource() barter.Address {
	if m != nil {
		return m.Source
	}
	return nil
}

func (m *SendMsg) GetDestination() barter.Address {
	if m != nil {
		return m.Destination
	}
	return nil
}

func (m *SendMsg) GetAmount() *coin.Coin {
	if m != nil {
		return m.Amount
	}
	return nil
}
