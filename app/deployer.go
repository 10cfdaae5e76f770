package app

import (
	"context"
	"encoding/binary"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/orm"
	"github.com/iov-one/htlc/x/cash"
	"golang.org/x/crypto/blake2b"
)

// SaltLength is the required length of an instantiation salt.
const SaltLength = 32

// Instance records which template lives at an address.
type Instance struct {
	Metadata   *htlc.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	TemplateID []byte         `protobuf:"bytes,2,opt,name=template_id,json=templateId,proto3" json:"template_id,omitempty"`
	Creator    htlc.Address   `protobuf:"bytes,3,opt,name=creator,proto3,casttype=github.com/iov-one/htlc.Address" json:"creator,omitempty"`
}

func (m *Instance) Reset()         { *m = Instance{} }
func (m *Instance) String() string { return proto.CompactTextString(m) }
func (*Instance) ProtoMessage()    {}

var _ orm.Model = (*Instance)(nil)

// Validate ensures the instance is well formed.
func (m *Instance) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if len(m.TemplateID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "template id")
	}
	return nil
}

// Deployer instantiates registered templates at deterministic addresses.
type Deployer struct {
	templates map[string]htlc.Template
	instances orm.ModelBucket
	nonce     orm.Sequence
	cash      cash.Controller
}

var _ htlc.Deployer = (*Deployer)(nil)

// NewDeployer returns a deployer that funds new instances using given
// controller.
func NewDeployer(ctrl cash.Controller) *Deployer {
	return &Deployer{
		templates: make(map[string]htlc.Template),
		instances: orm.NewModelBucket("instance", &Instance{}),
		nonce:     orm.NewSequence("instance", "nonce"),
		cash:      ctrl,
	}
}

// Register adds a template to the registry. It panics if a template with the
// same identifier is already registered.
func (d *Deployer) Register(t htlc.Template) {
	key := string(t.ID())
	if _, ok := d.templates[key]; ok {
		panic("template already registered")
	}
	d.templates[key] = t
}

// Instantiate implements htlc.Deployer. The address depends on the template,
// the constructor arguments and the salt. Neither the deploying account nor
// the value take part in it. Without a salt the host nonce is used instead,
// which makes the address unique but not predictable.
func (d *Deployer) Instantiate(ctx context.Context, db htlc.KVStore, from htlc.Address, templateID, args []byte, value uint64, salt []byte) (htlc.Address, error) {
	tmpl, ok := d.templates[string(templateID)]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "template %X", templateID)
	}

	var addr htlc.Address
	switch len(salt) {
	case 0:
		nonce, err := d.nonce.NextVal(db)
		if err != nil {
			return nil, errors.Wrap(err, "nonce")
		}
		addr = nonceAddress(templateID, args, nonce)
	case SaltLength:
		addr = InstanceAddress(templateID, args, salt)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "salt must be %d bytes", SaltLength)
	}

	switch err := d.instances.Has(db, addr); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "instance %s", addr)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	inst := &Instance{
		Metadata:   &htlc.Metadata{Schema: 1},
		TemplateID: templateID,
		Creator:    from,
	}
	if err := d.instances.Put(db, addr, inst); err != nil {
		return nil, err
	}

	if value > 0 {
		if err := d.cash.MoveCoins(db, from, addr, value); err != nil {
			return nil, errors.Wrap(err, "endowment")
		}
	}
	if err := tmpl.Construct(htlc.WithCaller(ctx, from), db, addr, args, value); err != nil {
		return nil, err
	}
	htlc.GetLogger(ctx).Debug("instantiated", "address", addr, "template", htlc.Address(templateID))
	return addr, nil
}

// Instance returns what was deployed at given address.
func (d *Deployer) Instance(db htlc.ReadOnlyKVStore, addr htlc.Address) (*Instance, error) {
	var inst Instance
	if err := d.instances.One(db, addr, &inst); err != nil {
		return nil, errors.Wrapf(err, "instance %s", addr)
	}
	return &inst, nil
}

// InstanceAddress returns the address of a salted instantiation. It lets a
// counterpart compute the address of an instance before it exists.
func InstanceAddress(templateID, args, salt []byte) htlc.Address {
	return deriveAddress("salt", templateID, args, salt)
}

func nonceAddress(templateID, args, nonce []byte) htlc.Address {
	return deriveAddress("nonce", templateID, args, nonce)
}

func deriveAddress(kind string, parts ...[]byte) htlc.Address {
	var data []byte
	for _, p := range parts {
		var n [4]byte
		binary.BigEndian.PutUint32(n[:], uint32(len(p)))
		data = append(data, n[:]...)
		data = append(data, p...)
	}
	sum := blake2b.Sum256(data)
	return htlc.NewCondition("inst", kind, sum[:]).Address()
}
