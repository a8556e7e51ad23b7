package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter"
)

// Escrow is a live trade offer. It is stored under its derived address and
// never modified.
type Escrow struct {
	Metadata *barter.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Maker deposited the offered asset and receives the requested one.
	Maker barter.Address `protobuf:"bytes,2,opt,name=maker,proto3" json:"maker,omitempty"`
	// Ticker of the asset held by the vault.
	AssetA string `protobuf:"bytes,3,opt,name=asset_a,json=assetA,proto3" json:"asset_a,omitempty"`
	// Ticker of the asset requested in return.
	AssetB          string `protobuf:"bytes,4,opt,name=asset_b,json=assetB,proto3" json:"asset_b,omitempty"`
	RequestedAmount uint64 `protobuf:"varint,5,opt,name=requested_amount,json=requestedAmount,proto3" json:"requested_amount,omitempty"`
	Seed            uint64 `protobuf:"varint,6,opt,name=seed,proto3" json:"seed,omitempty"`
	// Bump used to derive the vault authority. Holds an 8 bit value.
	Bump uint32 `protobuf:"varint,7,opt,name=bump,proto3" json:"bump,omitempty"`
}

func (m *Escrow) Reset()         { *m = Escrow{} }
func (m *Escrow) String() string { return proto.CompactTextString(m) }
func (*Escrow) ProtoMessage()    {}

func (m *Escrow) GetMetadata() *barter.Metadata {
	if m != nil {
		return m.Metadata
	}
	return nil
}

func (m *Escrow) GetMaker() barter.Address {
	if m != nil {
		return m.Maker
	}
	return nil
}

func (m *Escrow) GetAssetA() string {
	if m != nil {
		return m.AssetA
	}
	return ""
}

func (m *Escrow) GetAssetB() string {
	if m != nil {
		return m.AssetB
	}
	return ""
}

func (m *Escrow) GetRequestedAmount() uint64 {
	if m != nil {
		return m.RequestedAmount
	}
	return 0
}

func (m *Escrow) GetSeed() uint64 {
	if m != nil {
		return m.Seed
	}
	return 0
}

func (m *Escrow) GetBump() uint32 {
	if m != nil {
		return m.Bump
	}
	return 0
}

// MakeMsg opens a new escrow, moving the deposit into the vault.
type MakeMsg struct {
	Metadata        *barter.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Maker           barter.Address   `protobuf:"bytes,2,opt,name=maker,proto3" json:"maker,omitempty"`
	Seed            uint64           `protobuf:"varint,3,opt,name=seed,proto3" json:"seed,omitempty"`
	RequestedAmount uint64           `protobuf:"varint,4,opt,name=requested_amount,json=requestedAmount,proto3" json:"requested_amount,omitempty"`
	DepositAmount   uint64           `protobuf:"varint,5,opt,name=deposit_amount,json=depositAmount,proto3" json:"deposit_amount,omitempty"`
	AssetA          string           `protobuf:"bytes,6,opt,name=asset_a,json=assetA,proto3" json:"asset_a,omitempty"`
	AssetB          string           `protobuf:"bytes,7,opt,name=asset_b,json=assetB,proto3" json:"asset_b,omitempty"`
}

func (m *MakeMsg) Reset()         { *m = MakeMsg{} }
func (m *MakeMsg) String() string { return proto.CompactTextString(m) }
func (*MakeMsg) ProtoMessage()    {}

func (m *MakeMsg) GetMetadata() *barter.Metadata {
	if m != nil {
		return m.Metadata
	}
	return nil
}

func (m *MakeMsg) GetMaker() barter.Address {
	if m != nil {
		return m.Maker
	}
	return nil
}

func (m *MakeMsg) GetSeed() uint64 {
	if m != nil {
		return m.Seed
	}
	return 0
}

func (m *MakeMsg) GetRequestedAmount() uint64 {
	if m != nil {
		return m.RequestedAmount
	}
	return 0
}

func (m *MakeMsg) GetDepositAmount() uint64 {
	if m != nil {
		return m.DepositAmount
	}
	return 0
}

func (m *MakeMsg) GetAssetA() string {
	if m != nil {
		return m.AssetA
	}
	return ""
}

func (m *MakeMsg) GetAssetB() string {
	if m != nil {
		return m.AssetB
	}
	return ""
}

// TakeMsg completes the trade. The taker pays the requested amount to the
// maker and receives the vault content.
type TakeMsg struct {
	Metadata *barter.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Maker    barter.Address   `protobuf:"bytes,2,opt,name=maker,proto3" json:"maker,omitempty"`
	Seed     uint64           `protobuf:"varint,3,opt,name=seed,proto3" json:"seed,omitempty"`
	// Taker defaults to the main signer.
	Taker  barter.Address `protobuf:"bytes,4,opt,name=taker,proto3" json:"taker,omitempty"`
	AssetA string         `protobuf:"bytes,5,opt,name=asset_a,json=assetA,proto3" json:"asset_a,omitempty"`
	AssetB string         `protobuf:"bytes,6,opt,name=asset_b,json=assetB,proto3" json:"asset_b,omitempty"`
}

func (m *TakeMsg) Reset()         { *m = TakeMsg{} }
func (m *TakeMsg) String() string { return proto.CompactTextString(m) }
func (*TakeMsg) ProtoMessage()    {}

func (m *TakeMsg) GetMetadata() *barter.Metadata {
	if m != nil {
		return m.Metadata
	}
	return nil
}

func (m *TakeMsg) GetMaker() barter.Address {
	if m != nil {
		return m.Maker
	}
	return nil
}

func (m *TakeMsg) GetSeed() uint64 {
	if m != nil {
		return m.Seed
	}
	return 0
}

func (m *TakeMsg) GetTaker() barter.Address {
	if m != nil {
		return m.Taker
	}
	return nil
}

func (m *TakeMsg) GetAssetA() string {
	if m != nil {
		return m.AssetA
	}
	return ""
}

func (m *TakeMsg) GetAssetB() string {
	if m != nil {
		return m.AssetB
	}
	return ""
}

// RefundMsg cancels the escrow, returning the vault content to the maker.
type RefundMsg struct {
	Metadata *barter.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Maker    barter.Address   `protobuf:"bytes,2,opt,name=maker,proto3" json:"maker,omitempty"`
	Seed     uint64           `protobuf:"varint,3,opt,name=seed,proto3" json:"seed,omitempty"`
}

func (m *RefundMsg) Reset()         { *m = RefundMsg{} }
func (m *RefundMsg) String() string { return proto.CompactTextString(m) }
func (*RefundMsg) ProtoMessage()    {}

func (m *RefundMsg) GetMetadata() *barter.Metadata {
	if m != nil {
		return m.Metadata
	}
	return nil
}

func (m *RefundMsg) GetMaker() barter.Address {
	if m != nil {
		return m.Maker
	}
	return nil
}

func (m *RefundMsg) GetSeed() uint64 {
	if m != nil {
		return m.Seed
	}
	return 0
}
