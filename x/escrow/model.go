package escrow

import (
	"bytes"
	"fmt"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/orm"
)

// BucketName is where escrows are stored, keyed by escrow address.
const BucketName = "escrow"

// AssetKind tells which payment rail backs an escrow.
type AssetKind int32

const (
	AssetNative AssetKind = 0
	AssetToken  AssetKind = 1
)

func (k AssetKind) String() string {
	switch k {
	case AssetNative:
		return "native"
	case AssetToken:
		return "token"
	default:
		return fmt.Sprintf("AssetKind(%d)", int32(k))
	}
}

// Validate returns an error if the kind is not a known rail.
func (k AssetKind) Validate() error {
	switch k {
	case AssetNative, AssetToken:
		return nil
	default:
		return errors.Wrapf(errors.ErrInput, "unknown asset kind %d", int32(k))
	}
}

// Escrow is the persisted state of a single agreement.
type Escrow struct {
	Metadata        *htlc.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Initiator       htlc.Address   `protobuf:"bytes,2,opt,name=initiator,proto3,casttype=github.com/iov-one/htlc.Address" json:"initiator,omitempty"`
	Beneficiary     htlc.Address   `protobuf:"bytes,3,opt,name=beneficiary,proto3,casttype=github.com/iov-one/htlc.Address" json:"beneficiary,omitempty"`
	HashedSecret    []byte         `protobuf:"bytes,4,opt,name=hashed_secret,json=hashedSecret,proto3" json:"hashed_secret,omitempty"`
	Expiry          int64          `protobuf:"varint,5,opt,name=expiry,proto3" json:"expiry,omitempty"`
	LockedAmount    uint64         `protobuf:"varint,6,opt,name=locked_amount,json=lockedAmount,proto3" json:"locked_amount,omitempty"`
	ResolverDeposit uint64         `protobuf:"varint,7,opt,name=resolver_deposit,json=resolverDeposit,proto3" json:"resolver_deposit,omitempty"`
	AssetKind       AssetKind      `protobuf:"varint,8,opt,name=asset_kind,json=assetKind,proto3,casttype=AssetKind" json:"asset_kind,omitempty"`
	Token           htlc.Address   `protobuf:"bytes,9,opt,name=token,proto3,casttype=github.com/iov-one/htlc.Address" json:"token,omitempty"`
	Claimed         bool           `protobuf:"varint,10,opt,name=claimed,proto3" json:"claimed,omitempty"`
	Refunded        bool           `protobuf:"varint,11,opt,name=refunded,proto3" json:"refunded,omitempty"`
}

func (m *Escrow) Reset()         { *m = Escrow{} }
func (m *Escrow) String() string { return proto.CompactTextString(m) }
func (*Escrow) ProtoMessage()    {}

var _ orm.Model = (*Escrow)(nil)

// Validate ensures the escrow is well formed.
func (m *Escrow) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Initiator.Validate(); err != nil {
		return errors.Wrap(err, "initiator")
	}
	if err := m.Beneficiary.Validate(); err != nil {
		return errors.Wrap(err, "beneficiary")
	}
	if len(m.HashedSecret) != HashSize {
		return errors.Wrapf(errors.ErrInput, "hashed secret must be %d bytes", HashSize)
	}
	if m.Expiry < 0 {
		return errors.Wrap(errors.ErrInput, "negative expiry")
	}
	if m.LockedAmount == 0 {
		return errors.Wrap(errors.ErrAmount, "locked amount must be positive")
	}
	if m.ResolverDeposit == 0 {
		return errors.Wrap(errors.ErrAmount, "resolver deposit must be positive")
	}
	if err := m.AssetKind.Validate(); err != nil {
		return err
	}
	switch m.AssetKind {
	case AssetNative:
		if len(m.Token) != 0 {
			return errors.Wrap(errors.ErrInput, "native escrow cannot reference a token")
		}
	case AssetToken:
		if err := m.Token.Validate(); err != nil {
			return errors.Wrap(err, "token")
		}
	}
	if m.Claimed && m.Refunded {
		return errors.Wrap(errors.ErrState, "escrow cannot be both claimed and refunded")
	}
	return nil
}

// Finalized returns true once the escrow was claimed or refunded.
func (m *Escrow) Finalized() bool {
	return m.Claimed || m.Refunded
}

// VerifySecret returns true if the candidate hashes to the commitment.
func (m *Escrow) VerifySecret(candidate []byte) bool {
	return bytes.Equal(Hash(candidate), m.HashedSecret)
}

// NewBucket returns a bucket for managing escrows.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Escrow{})
}
