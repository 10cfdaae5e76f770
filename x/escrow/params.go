package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
)

// Params are the constructor arguments of an escrow instance.
type Params struct {
	// Initiator receives the refund. When empty the constructor caller is
	// the initiator.
	Initiator       htlc.Address `protobuf:"bytes,1,opt,name=initiator,proto3,casttype=github.com/iov-one/htlc.Address" json:"initiator,omitempty"`
	Beneficiary     htlc.Address `protobuf:"bytes,2,opt,name=beneficiary,proto3,casttype=github.com/iov-one/htlc.Address" json:"beneficiary,omitempty"`
	HashedSecret    []byte       `protobuf:"bytes,3,opt,name=hashed_secret,json=hashedSecret,proto3" json:"hashed_secret,omitempty"`
	ExpiryOffset    uint64       `protobuf:"varint,4,opt,name=expiry_offset,json=expiryOffset,proto3" json:"expiry_offset,omitempty"`
	ResolverDeposit uint64       `protobuf:"varint,5,opt,name=resolver_deposit,json=resolverDeposit,proto3" json:"resolver_deposit,omitempty"`
	AssetKind       AssetKind    `protobuf:"varint,6,opt,name=asset_kind,json=assetKind,proto3,casttype=AssetKind" json:"asset_kind,omitempty"`
	// Token and Amount are only used by token escrows.
	Token  htlc.Address `protobuf:"bytes,7,opt,name=token,proto3,casttype=github.com/iov-one/htlc.Address" json:"token,omitempty"`
	Amount uint64       `protobuf:"varint,8,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *Params) Reset()         { *m = Params{} }
func (m *Params) String() string { return proto.CompactTextString(m) }
func (*Params) ProtoMessage()    {}

// EncodeParams serializes constructor arguments.
func EncodeParams(p *Params) ([]byte, error) {
	raw, err := proto.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// DecodeParams deserializes constructor arguments.
func DecodeParams(raw []byte) (*Params, error) {
	var p Params
	if err := proto.Unmarshal(raw, &p); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode escrow params: %s", err)
	}
	return &p, nil
}
