package token

import (
	"context"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
)

// TemplateID identifies the token template in the host ledger registry.
var TemplateID = htlc.NewTemplateID("htlc/token/v1")

// Template allows the host ledger to instantiate tokens.
type Template struct {
	ctrl *Controller
}

var _ htlc.Template = Template{}

// NewTemplate returns a template creating tokens with given controller.
func NewTemplate(ctrl *Controller) Template {
	return Template{ctrl: ctrl}
}

// ID implements htlc.Template.
func (Template) ID() []byte { return TemplateID }

// Construct implements htlc.Template. Tokens do not accept value.
func (t Template) Construct(ctx context.Context, db htlc.KVStore, addr htlc.Address, args []byte, value uint64) error {
	if value != 0 {
		return errors.Wrap(errors.ErrAmount, "token does not accept value")
	}
	owner, ok := htlc.GetCaller(ctx)
	if !ok {
		return errors.Wrap(errors.ErrUnauthorized, "missing caller")
	}
	p, err := DecodeCreateParams(args)
	if err != nil {
		return err
	}
	return t.ctrl.Create(ctx, db, addr, owner, p)
}
