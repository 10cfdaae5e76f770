package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet is the native balance of a single account.
type Wallet struct {
	Metadata *htlc.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Balance  uint64         `protobuf:"varint,2,opt,name=balance,proto3" json:"balance,omitempty"`
}

func (m *Wallet) Reset()         { *m = Wallet{} }
func (m *Wallet) String() string { return proto.CompactTextString(m) }
func (*Wallet) ProtoMessage()    {}

var _ orm.Model = (*Wallet)(nil)

// Validate ensures the wallet is well formed.
func (m *Wallet) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return nil
}

// NewBucket returns a bucket for managing wallets, keyed by owner address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{})
}
