package token

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/orm"
)

const maxNameLength = 64

// Token is the configuration of a single token, stored under the token
// address.
type Token struct {
	Metadata    *htlc.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner       htlc.Address   `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/iov-one/htlc.Address" json:"owner,omitempty"`
	Name        string         `protobuf:"bytes,3,opt,name=name,proto3" json:"name,omitempty"`
	Symbol      string         `protobuf:"bytes,4,opt,name=symbol,proto3" json:"symbol,omitempty"`
	Decimals    uint32         `protobuf:"varint,5,opt,name=decimals,proto3" json:"decimals,omitempty"`
	TotalSupply uint64         `protobuf:"varint,6,opt,name=total_supply,json=totalSupply,proto3" json:"total_supply,omitempty"`
}

func (m *Token) Reset()         { *m = Token{} }
func (m *Token) String() string { return proto.CompactTextString(m) }
func (*Token) ProtoMessage()    {}

var _ orm.Model = (*Token)(nil)

// Validate ensures the token is well formed.
func (m *Token) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if len(m.Name) > maxNameLength {
		return errors.Wrap(errors.ErrInput, "name too long")
	}
	if len(m.Symbol) > maxNameLength {
		return errors.Wrap(errors.ErrInput, "symbol too long")
	}
	if m.Decimals > 36 {
		return errors.Wrap(errors.ErrInput, "too many decimals")
	}
	return nil
}

// Amount is a balance or an allowance.
type Amount struct {
	Metadata *htlc.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Value    uint64         `protobuf:"varint,2,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *Amount) Reset()         { *m = Amount{} }
func (m *Amount) String() string { return proto.CompactTextString(m) }
func (*Amount) ProtoMessage()    {}

var _ orm.Model = (*Amount)(nil)

// Validate ensures the amount is well formed.
func (m *Amount) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return nil
}

// NewTokenBucket returns a bucket for token configurations, keyed by token
// address.
func NewTokenBucket() orm.ModelBucket {
	return orm.NewModelBucket("token", &Token{})
}

// NewBalanceBucket returns a bucket for holder balances, keyed by token and
// holder address.
func NewBalanceBucket() orm.ModelBucket {
	return orm.NewModelBucket("tokbal", &Amount{})
}

// NewAllowanceBucket returns a bucket for allowances, keyed by token, owner
// and spender address.
func NewAllowanceBucket() orm.ModelBucket {
	return orm.NewModelBucket("tokallow", &Amount{})
}

func balanceKey(token, holder htlc.Address) []byte {
	return joinKey(token, holder)
}

func allowanceKey(token, owner, spender htlc.Address) []byte {
	return joinKey(token, owner, spender)
}

// joinKey concatenates fixed length addresses. Each part is prefixed with its
// length so that keys of different shape never collide.
func joinKey(parts ...htlc.Address) []byte {
	var key []byte
	for _, p := range parts {
		key = append(key, byte(len(p)))
		key = append(key, p...)
	}
	return key
}
