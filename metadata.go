package htlc

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/htlc/errors"
)

// Metadata is the header of every persisted model. Schema declares the
// version of the binary layout the model was written with, so that external
// indexers can decode the state without executing code.
type Metadata struct {
	Schema uint32 `protobuf:"varint,1,opt,name=schema,proto3" json:"schema,omitempty"`
}

func (m *Metadata) Reset()         { *m = Metadata{} }
func (m *Metadata) String() string { return proto.CompactTextString(m) }
func (*Metadata) ProtoMessage()    {}

// Validate returns an error if the schema version is not declared.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "missing metadata")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "schema version must be a positive number")
	}
	return nil
}

// Copy returns a copy of this object. This method is helpful when implementing
// Copy of the models to make a copy of the header.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}
