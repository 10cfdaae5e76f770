package app

import (
	"context"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/x/escrow"
	"github.com/iov-one/htlc/x/factory"
	"github.com/iov-one/htlc/x/token"
)

// DeployFactory instantiates a new escrow factory. An empty templateID
// deploys the default escrow template.
func (c *Chain) DeployFactory(caller htlc.Address, templateID, salt []byte) (htlc.Address, error) {
	args, err := factory.EncodeParams(&factory.Params{TemplateID: templateID})
	if err != nil {
		return nil, err
	}
	return c.deploy(caller, factory.TemplateID, args, salt)
}

// DeployToken instantiates a new token owned by the caller. The caller
// receives the initial supply.
func (c *Chain) DeployToken(caller htlc.Address, p *token.CreateParams, salt []byte) (htlc.Address, error) {
	args, err := token.EncodeCreateParams(p)
	if err != nil {
		return nil, err
	}
	return c.deploy(caller, token.TemplateID, args, salt)
}

func (c *Chain) deploy(caller htlc.Address, templateID, args, salt []byte) (htlc.Address, error) {
	var addr htlc.Address
	_, err := c.Exec(caller, nil, 0, func(ctx context.Context, db htlc.KVStore) error {
		var err error
		addr, err = c.Deployer.Instantiate(ctx, db, caller, templateID, args, 0, salt)
		return err
	})
	if err != nil {
		return nil, err
	}
	return addr, nil
}

// Approve allows spender to move up to amount of the caller's tokens.
func (c *Chain) Approve(caller, tok, spender htlc.Address, amount uint64) error {
	_, err := c.Exec(caller, tok, 0, func(ctx context.Context, db htlc.KVStore) error {
		return c.Tokens.Approve(ctx, db, tok, caller, spender, amount)
	})
	return err
}

// TransferToken moves tokens from the caller to another account.
func (c *Chain) TransferToken(caller, tok, to htlc.Address, amount uint64) error {
	_, err := c.Exec(caller, tok, 0, func(ctx context.Context, db htlc.KVStore) error {
		return c.Tokens.Transfer(ctx, db, tok, caller, to, amount)
	})
	return err
}

// CreateNativeEscrow calls the factory with value attached.
func (c *Chain) CreateNativeEscrow(caller, fact htlc.Address, req factory.NativeRequest, value uint64) (htlc.Address, error) {
	var addr htlc.Address
	_, err := c.Exec(caller, fact, value, func(ctx context.Context, db htlc.KVStore) error {
		var err error
		addr, err = c.Factories.CreateNativeEscrow(ctx, db, fact, req, value)
		return err
	})
	if err != nil {
		return nil, err
	}
	return addr, nil
}

// CreateTokenEscrow calls the factory with the resolver deposit attached.
func (c *Chain) CreateTokenEscrow(caller, fact htlc.Address, req factory.TokenRequest, value uint64) (htlc.Address, error) {
	var addr htlc.Address
	_, err := c.Exec(caller, fact, value, func(ctx context.Context, db htlc.KVStore) error {
		var err error
		addr, err = c.Factories.CreateTokenEscrow(ctx, db, fact, req, value)
		return err
	})
	if err != nil {
		return nil, err
	}
	return addr, nil
}

// Claim reveals the secret and settles the escrow to its beneficiary.
func (c *Chain) Claim(caller, esc htlc.Address, secret []byte) ([]htlc.Record, error) {
	return c.Exec(caller, esc, 0, func(ctx context.Context, db htlc.KVStore) error {
		return c.Escrows.Claim(ctx, db, esc, secret)
	})
}

// Refund settles an expired escrow back to its initiator.
func (c *Chain) Refund(caller, esc htlc.Address) ([]htlc.Record, error) {
	return c.Exec(caller, esc, 0, func(ctx context.Context, db htlc.KVStore) error {
		return c.Escrows.Refund(ctx, db, esc)
	})
}

// EscrowInfo returns a snapshot of an escrow.
func (c *Chain) EscrowInfo(esc htlc.Address) (*escrow.Info, error) {
	var info *escrow.Info
	err := c.Query(func(ctx context.Context, db htlc.KVStore) error {
		var err error
		info, err = c.Escrows.Info(ctx, db, esc)
		return err
	})
	return info, err
}

// VerifySecret checks a candidate secret against an escrow commitment.
func (c *Chain) VerifySecret(esc htlc.Address, candidate []byte) (bool, error) {
	var ok bool
	err := c.Query(func(ctx context.Context, db htlc.KVStore) error {
		var err error
		ok, err = c.Escrows.VerifySecret(db, esc, candidate)
		return err
	})
	return ok, err
}

// TemplateID returns the template a factory deploys.
func (c *Chain) TemplateID(fact htlc.Address) ([]byte, error) {
	var id []byte
	err := c.Query(func(ctx context.Context, db htlc.KVStore) error {
		var err error
		id, err = c.Factories.TemplateID(db, fact)
		return err
	})
	return id, err
}

// LastEscrow returns the most recent escrow created by a factory.
func (c *Chain) LastEscrow(fact htlc.Address) (htlc.Address, error) {
	var addr htlc.Address
	err := c.Query(func(ctx context.Context, db htlc.KVStore) error {
		var err error
		addr, err = c.Factories.LastEscrow(db, fact)
		return err
	})
	return addr, err
}

// Balance returns the native balance of an account.
func (c *Chain) Balance(addr htlc.Address) (uint64, error) {
	var amount uint64
	err := c.Query(func(ctx context.Context, db htlc.KVStore) error {
		var err error
		amount, err = c.Cash.Balance(db, addr)
		return err
	})
	return amount, err
}

// TokenBalance returns the token balance of an account.
func (c *Chain) TokenBalance(tok, holder htlc.Address) (uint64, error) {
	var amount uint64
	err := c.Query(func(ctx context.Context, db htlc.KVStore) error {
		var err error
		amount, err = c.Tokens.BalanceOf(db, tok, holder)
		return err
	})
	return amount, err
}
