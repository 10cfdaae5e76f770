package factory

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/orm"
	"github.com/iov-one/htlc/x/escrow"
)

// Factory is the persisted state of a factory instance. It is written once,
// when the factory is created.
type Factory struct {
	Metadata   *htlc.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	TemplateID []byte         `protobuf:"bytes,2,opt,name=template_id,json=templateId,proto3" json:"template_id,omitempty"`
}

func (m *Factory) Reset()         { *m = Factory{} }
func (m *Factory) String() string { return proto.CompactTextString(m) }
func (*Factory) ProtoMessage()    {}

var _ orm.Model = (*Factory)(nil)

// Validate ensures the factory is well formed.
func (m *Factory) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if len(m.TemplateID) != escrow.HashSize {
		return errors.Wrapf(errors.ErrInput, "template id must be %d bytes", escrow.HashSize)
	}
	return nil
}

// LastEscrow points to the most recently created escrow of a factory.
type LastEscrow struct {
	Metadata *htlc.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Escrow   htlc.Address   `protobuf:"bytes,2,opt,name=escrow,proto3,casttype=github.com/iov-one/htlc.Address" json:"escrow,omitempty"`
}

func (m *LastEscrow) Reset()         { *m = LastEscrow{} }
func (m *LastEscrow) String() string { return proto.CompactTextString(m) }
func (*LastEscrow) ProtoMessage()    {}

var _ orm.Model = (*LastEscrow)(nil)

// Validate ensures the pointer is well formed.
func (m *LastEscrow) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return m.Escrow.Validate()
}

// Params are the constructor arguments of a factory instance.
type Params struct {
	// TemplateID of the escrow template. The default escrow template is
	// used when empty.
	TemplateID []byte `protobuf:"bytes,1,opt,name=template_id,json=templateId,proto3" json:"template_id,omitempty"`
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
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode factory params: %s", err)
	}
	return &p, nil
}

// NewBucket returns a bucket for factories, keyed by factory address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("factory", &Factory{})
}

// NewLastEscrowBucket returns a bucket for the last escrow pointers, keyed by
// factory address.
func NewLastEscrowBucket() orm.ModelBucket {
	return orm.NewModelBucket("factlast", &LastEscrow{})
}
