package factory

import (
	"context"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/x/escrow"
)

// TemplateID identifies the factory template in the host ledger registry.
var TemplateID = htlc.NewTemplateID("htlc/factory/v1")

// Template allows the host ledger to instantiate factories.
type Template struct {
	ctrl *Controller
}

var _ htlc.Template = Template{}

// NewTemplate returns a template creating factories with given controller.
func NewTemplate(ctrl *Controller) Template {
	return Template{ctrl: ctrl}
}

// ID implements htlc.Template.
func (Template) ID() []byte { return TemplateID }

// Construct implements htlc.Template. Factories do not accept value.
func (t Template) Construct(ctx context.Context, db htlc.KVStore, addr htlc.Address, args []byte, value uint64) error {
	if value != 0 {
		return errors.Wrap(errors.ErrAmount, "factory does not accept value")
	}
	p, err := DecodeParams(args)
	if err != nil {
		return err
	}
	templateID := p.TemplateID
	if len(templateID) == 0 {
		templateID = escrow.TemplateID
	}
	return t.ctrl.Create(ctx, db, addr, templateID)
}
