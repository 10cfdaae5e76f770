package token

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/htlc/errors"
)

// CreateParams are the constructor arguments of a token instance. The caller
// of the constructor becomes the owner and receives the initial supply.
type CreateParams struct {
	Name          string `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	Symbol        string `protobuf:"bytes,2,opt,name=symbol,proto3" json:"symbol,omitempty"`
	Decimals      uint32 `protobuf:"varint,3,opt,name=decimals,proto3" json:"decimals,omitempty"`
	InitialSupply uint64 `protobuf:"varint,4,opt,name=initial_supply,json=initialSupply,proto3" json:"initial_supply,omitempty"`
}

func (m *CreateParams) Reset()         { *m = CreateParams{} }
func (m *CreateParams) String() string { return proto.CompactTextString(m) }
func (*CreateParams) ProtoMessage()    {}

// EncodeCreateParams serializes constructor arguments.
func EncodeCreateParams(p *CreateParams) ([]byte, error) {
	raw, err := proto.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// DecodeCreateParams deserializes constructor arguments.
func DecodeCreateParams(raw []byte) (*CreateParams, error) {
	var p CreateParams
	if err := proto.Unmarshal(raw, &p); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode token params: %s", err)
	}
	return &p, nil
}
