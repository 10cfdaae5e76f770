package escrow

import (
	"context"

	"github.com/iov-one/htlc"
)

// TemplateID identifies the escrow template in the host ledger registry.
var TemplateID = htlc.NewTemplateID("htlc/escrow/v1")

// Template allows the host ledger to instantiate escrows.
type Template struct {
	ctrl *Controller
}

var _ htlc.Template = Template{}

// NewTemplate returns a template creating escrows with given controller.
func NewTemplate(ctrl *Controller) Template {
	return Template{ctrl: ctrl}
}

// ID implements htlc.Template.
func (Template) ID() []byte { return TemplateID }

// Construct implements htlc.Template.
func (t Template) Construct(ctx context.Context, db htlc.KVStore, addr htlc.Address, args []byte, value uint64) error {
	p, err := DecodeParams(args)
	if err != nil {
		return err
	}
	_, err = t.ctrl.Create(ctx, db, addr, p, value)
	return err
}
